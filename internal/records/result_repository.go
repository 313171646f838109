package records

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/divlens/backend/internal/contracts"
)

const resultColumns = `
	id, evaluation_id, evaluation_name, item_id, reviewer_id, reviewer_name,
	submitted_at, time_spent, responses, original_data, created_at`

// ResultRepository implements contracts.ResultRepository
type ResultRepository struct {
	db DBTX
}

var _ contracts.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a new result repository
func NewResultRepository(db DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a result. An unknown evaluation id yields ErrInvalidReference.
func (r *ResultRepository) Create(ctx context.Context, in *contracts.ResultCreate) (*contracts.Result, error) {
	query := `
		INSERT INTO results (
			evaluation_id, evaluation_name, item_id, reviewer_id, reviewer_name,
			submitted_at, time_spent, responses, original_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb)
		RETURNING` + resultColumns

	row := r.db.QueryRow(ctx, query,
		in.EvaluationID, in.EvaluationName, in.ItemID, in.ReviewerID, in.ReviewerName,
		in.SubmittedAt, in.TimeSpent, jsonParam(in.Responses), jsonParam(in.OriginalData),
	)

	res, err := scanResult(row)
	if err != nil {
		return nil, fmt.Errorf("create result: %w", translate(err))
	}
	return res, nil
}

// List returns every result, newest first
func (r *ResultRepository) List(ctx context.Context) ([]*contracts.Result, error) {
	query := `SELECT` + resultColumns + `
		FROM results
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := []*contracts.Result{}
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Get retrieves one result
func (r *ResultRepository) Get(ctx context.Context, id int64) (*contracts.Result, error) {
	query := `SELECT` + resultColumns + `
		FROM results
		WHERE id = $1`

	res, err := scanResult(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// Update applies the non-nil fields of in
func (r *ResultRepository) Update(ctx context.Context, id int64, in *contracts.ResultUpdate) (*contracts.Result, error) {
	query := `
		UPDATE results SET
			evaluation_name = COALESCE($2, evaluation_name),
			item_id         = COALESCE($3, item_id),
			reviewer_id     = COALESCE($4, reviewer_id),
			reviewer_name   = COALESCE($5, reviewer_name),
			submitted_at    = COALESCE($6, submitted_at),
			time_spent      = COALESCE($7, time_spent),
			responses       = COALESCE($8::jsonb, responses),
			original_data   = COALESCE($9::jsonb, original_data)
		WHERE id = $1
		RETURNING` + resultColumns

	row := r.db.QueryRow(ctx, query, id,
		in.EvaluationName, in.ItemID, in.ReviewerID, in.ReviewerName,
		in.SubmittedAt, in.TimeSpent, jsonParam(in.Responses), jsonParam(in.OriginalData),
	)

	res, err := scanResult(row)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// Delete removes a result
func (r *ResultRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

func scanResult(row pgx.Row) (*contracts.Result, error) {
	var res contracts.Result
	var responses, originalData []byte

	err := row.Scan(
		&res.ID, &res.EvaluationID, &res.EvaluationName, &res.ItemID, &res.ReviewerID, &res.ReviewerName,
		&res.SubmittedAt, &res.TimeSpent, &responses, &originalData, &res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Responses = rawJSON(responses)
	res.OriginalData = rawJSON(originalData)
	return &res, nil
}
