package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by repositories when no row matches the id
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference is returned when a foreign key points nowhere
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// DefaultEvaluationStatus is applied when a create request omits status
const DefaultEvaluationStatus = "draft"

// Evaluation is a reviewer task definition
type Evaluation struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Instructions         *string         `json:"instructions"`
	Criteria             json.RawMessage `json:"criteria"`
	ColumnRoles          json.RawMessage `json:"columnRoles"`
	Data                 json.RawMessage `json:"data"`
	Context              json.RawMessage `json:"context"`
	TotalItems           *int            `json:"totalItems"`
	RandomizationEnabled *bool           `json:"randomizationEnabled"`
	Status               string          `json:"status"`
	GroupBy              *string         `json:"groupBy"`
	CreatedAt            time.Time       `json:"createdAt"`
	CompletedAt          *time.Time      `json:"completedAt"`
}

// EvaluationCreate is the POST /evaluations body
type EvaluationCreate struct {
	Name                 string          `json:"name" validate:"required,max=255"`
	Instructions         *string         `json:"instructions"`
	Criteria             json.RawMessage `json:"criteria"`
	ColumnRoles          json.RawMessage `json:"columnRoles"`
	Data                 json.RawMessage `json:"data"`
	Context              json.RawMessage `json:"context"`
	TotalItems           *int            `json:"totalItems" validate:"omitempty,min=0"`
	RandomizationEnabled *bool           `json:"randomizationEnabled"`
	Status               string          `json:"status" validate:"omitempty,max=64"`
	GroupBy              *string         `json:"groupBy" validate:"omitempty,max=255"`
	CompletedAt          *time.Time      `json:"completedAt"`
}

// EvaluationUpdate is the PUT /evaluations/{id} body; nil fields are left unchanged
type EvaluationUpdate struct {
	Name                 *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Instructions         *string         `json:"instructions"`
	Criteria             json.RawMessage `json:"criteria"`
	ColumnRoles          json.RawMessage `json:"columnRoles"`
	Data                 json.RawMessage `json:"data"`
	Context              json.RawMessage `json:"context"`
	TotalItems           *int            `json:"totalItems" validate:"omitempty,min=0"`
	RandomizationEnabled *bool           `json:"randomizationEnabled"`
	Status               *string         `json:"status" validate:"omitempty,min=1,max=64"`
	GroupBy              *string         `json:"groupBy" validate:"omitempty,max=255"`
	CompletedAt          *time.Time      `json:"completedAt"`
}

// Result is one reviewer's response to one evaluation item
type Result struct {
	ID             int64           `json:"id"`
	EvaluationID   int64           `json:"evaluationId"`
	EvaluationName *string         `json:"evaluationName"`
	ItemID         *string         `json:"itemId"`
	ReviewerID     *string         `json:"reviewerId"`
	ReviewerName   *string         `json:"reviewerName"`
	SubmittedAt    *time.Time      `json:"submittedAt"`
	TimeSpent      *int            `json:"timeSpent"`
	Responses      json.RawMessage `json:"responses"`
	OriginalData   json.RawMessage `json:"originalData"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ResultCreate is the POST /results body
type ResultCreate struct {
	EvaluationID   int64           `json:"evaluationId" validate:"required,gt=0"`
	EvaluationName *string         `json:"evaluationName"`
	ItemID         *string         `json:"itemId"`
	ReviewerID     *string         `json:"reviewerId"`
	ReviewerName   *string         `json:"reviewerName"`
	SubmittedAt    *time.Time      `json:"submittedAt"`
	TimeSpent      *int            `json:"timeSpent" validate:"omitempty,min=0"`
	Responses      json.RawMessage `json:"responses" validate:"required"`
	OriginalData   json.RawMessage `json:"originalData" validate:"required"`
}

// ResultUpdate is the PUT /results/{id} body; the owning evaluation cannot change
type ResultUpdate struct {
	EvaluationName *string         `json:"evaluationName"`
	ItemID         *string         `json:"itemId"`
	ReviewerID     *string         `json:"reviewerId"`
	ReviewerName   *string         `json:"reviewerName"`
	SubmittedAt    *time.Time      `json:"submittedAt"`
	TimeSpent      *int            `json:"timeSpent" validate:"omitempty,min=0"`
	Responses      json.RawMessage `json:"responses"`
	OriginalData   json.RawMessage `json:"originalData"`
}

// EvaluationRepository persists evaluations
// ⭐ SSOT: 평가 저장소 인터페이스
type EvaluationRepository interface {
	Create(ctx context.Context, in *EvaluationCreate) (*Evaluation, error)
	List(ctx context.Context) ([]*Evaluation, error)
	Get(ctx context.Context, id int64) (*Evaluation, error)
	Update(ctx context.Context, id int64, in *EvaluationUpdate) (*Evaluation, error)
	Delete(ctx context.Context, id int64) error
}

// ResultRepository persists results
type ResultRepository interface {
	Create(ctx context.Context, in *ResultCreate) (*Result, error)
	List(ctx context.Context) ([]*Result, error)
	Get(ctx context.Context, id int64) (*Result, error)
	Update(ctx context.Context, id int64, in *ResultUpdate) (*Result, error)
	Delete(ctx context.Context, id int64) error
}
