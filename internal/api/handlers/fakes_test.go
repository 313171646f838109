package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/wonny/divlens/backend/internal/contracts"
)

type fakeDividendService struct {
	reports    map[string]*contracts.TickerReport
	err        error
	lastWindow contracts.DateRange
}

func (f *fakeDividendService) Run(ctx context.Context, ticker string, window contracts.DateRange) (*contracts.TickerReport, error) {
	f.lastWindow = window
	if f.err != nil {
		return nil, f.err
	}
	report, ok := f.reports[ticker]
	if !ok {
		return nil, &contracts.GatewayError{Ticker: ticker, Op: "fetch currency", Err: errors.New("no data found")}
	}
	return report, nil
}

func (f *fakeDividendService) RunBulk(ctx context.Context, tickers []string, window contracts.DateRange) *contracts.BulkReport {
	bulk := &contracts.BulkReport{}
	for _, t := range tickers {
		report, err := f.Run(ctx, t, window)
		if err != nil {
			bulk.Errors = append(bulk.Errors, contracts.TickerError{Ticker: t, Detail: err.Error()})
			continue
		}
		bulk.Results = append(bulk.Results, *report)
	}
	return bulk
}

type memoryEvaluations struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*contracts.Evaluation
}

func newMemoryEvaluations() *memoryEvaluations {
	return &memoryEvaluations{rows: make(map[int64]*contracts.Evaluation)}
}

func (m *memoryEvaluations) Create(ctx context.Context, in *contracts.EvaluationCreate) (*contracts.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	status := in.Status
	if status == "" {
		status = contracts.DefaultEvaluationStatus
	}
	e := &contracts.Evaluation{
		ID:           m.nextID,
		Name:         in.Name,
		Instructions: in.Instructions,
		Criteria:     orDefault(in.Criteria, `[]`),
		ColumnRoles:  orDefault(in.ColumnRoles, `{}`),
		Data:         orDefault(in.Data, `[]`),
		Context:      in.Context,
		Status:       status,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	m.rows[e.ID] = e
	return e, nil
}

func (m *memoryEvaluations) List(ctx context.Context) ([]*contracts.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*contracts.Evaluation{}
	for _, e := range m.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryEvaluations) Get(ctx context.Context, id int64) (*contracts.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	return e, nil
}

func (m *memoryEvaluations) Update(ctx context.Context, id int64, in *contracts.EvaluationUpdate) (*contracts.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Criteria != nil {
		e.Criteria = in.Criteria
	}
	return e, nil
}

func (m *memoryEvaluations) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return contracts.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memoryResults struct {
	mu          sync.Mutex
	nextID      int64
	rows        map[int64]*contracts.Result
	evaluations *memoryEvaluations
	listErr     error
}

func newMemoryResults(evaluations *memoryEvaluations) *memoryResults {
	return &memoryResults{rows: make(map[int64]*contracts.Result), evaluations: evaluations}
}

func (m *memoryResults) Create(ctx context.Context, in *contracts.ResultCreate) (*contracts.Result, error) {
	if _, err := m.evaluations.Get(ctx, in.EvaluationID); err != nil {
		return nil, contracts.ErrInvalidReference
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	res := &contracts.Result{
		ID:           m.nextID,
		EvaluationID: in.EvaluationID,
		ItemID:       in.ItemID,
		ReviewerName: in.ReviewerName,
		Responses:    in.Responses,
		OriginalData: in.OriginalData,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	m.rows[res.ID] = res
	return res, nil
}

func (m *memoryResults) List(ctx context.Context) ([]*contracts.Result, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*contracts.Result{}
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryResults) Get(ctx context.Context, id int64) (*contracts.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	return r, nil
}

func (m *memoryResults) Update(ctx context.Context, id int64, in *contracts.ResultUpdate) (*contracts.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	if in.ReviewerName != nil {
		r.ReviewerName = in.ReviewerName
	}
	if in.Responses != nil {
		r.Responses = in.Responses
	}
	return r, nil
}

func (m *memoryResults) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return contracts.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func orDefault(raw json.RawMessage, def string) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(def)
	}
	return raw
}
