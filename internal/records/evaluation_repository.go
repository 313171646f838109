package records

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/divlens/backend/internal/contracts"
)

const evaluationColumns = `
	id, name, instructions, criteria, column_roles, data, context,
	total_items, randomization_enabled, status, group_by, created_at, completed_at`

// EvaluationRepository implements contracts.EvaluationRepository
// ⭐ SSOT: 평가 저장소는 여기서만
type EvaluationRepository struct {
	db DBTX
}

var _ contracts.EvaluationRepository = (*EvaluationRepository)(nil)

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db DBTX) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Create inserts an evaluation. Omitted JSON collections take the column
// defaults and an omitted status becomes "draft".
func (r *EvaluationRepository) Create(ctx context.Context, in *contracts.EvaluationCreate) (*contracts.Evaluation, error) {
	status := in.Status
	if status == "" {
		status = contracts.DefaultEvaluationStatus
	}

	query := `
		INSERT INTO evaluations (
			name, instructions, criteria, column_roles, data, context,
			total_items, randomization_enabled, status, group_by, completed_at
		)
		VALUES (
			$1, $2,
			COALESCE($3::jsonb, '[]'::jsonb),
			COALESCE($4::jsonb, '{}'::jsonb),
			COALESCE($5::jsonb, '[]'::jsonb),
			$6::jsonb,
			$7, $8, $9, $10, $11
		)
		RETURNING` + evaluationColumns

	row := r.db.QueryRow(ctx, query,
		in.Name, in.Instructions,
		jsonParam(in.Criteria), jsonParam(in.ColumnRoles), jsonParam(in.Data), jsonParam(in.Context),
		in.TotalItems, in.RandomizationEnabled, status, in.GroupBy, in.CompletedAt,
	)

	e, err := scanEvaluation(row)
	if err != nil {
		return nil, fmt.Errorf("create evaluation: %w", translate(err))
	}
	return e, nil
}

// List returns every evaluation, newest first
func (r *EvaluationRepository) List(ctx context.Context) ([]*contracts.Evaluation, error) {
	query := `SELECT` + evaluationColumns + `
		FROM evaluations
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []*contracts.Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// Get retrieves one evaluation
func (r *EvaluationRepository) Get(ctx context.Context, id int64) (*contracts.Evaluation, error) {
	query := `SELECT` + evaluationColumns + `
		FROM evaluations
		WHERE id = $1`

	e, err := scanEvaluation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Update applies the non-nil fields of in
func (r *EvaluationRepository) Update(ctx context.Context, id int64, in *contracts.EvaluationUpdate) (*contracts.Evaluation, error) {
	query := `
		UPDATE evaluations SET
			name                  = COALESCE($2, name),
			instructions          = COALESCE($3, instructions),
			criteria              = COALESCE($4::jsonb, criteria),
			column_roles          = COALESCE($5::jsonb, column_roles),
			data                  = COALESCE($6::jsonb, data),
			context               = COALESCE($7::jsonb, context),
			total_items           = COALESCE($8, total_items),
			randomization_enabled = COALESCE($9, randomization_enabled),
			status                = COALESCE($10, status),
			group_by              = COALESCE($11, group_by),
			completed_at          = COALESCE($12, completed_at)
		WHERE id = $1
		RETURNING` + evaluationColumns

	row := r.db.QueryRow(ctx, query, id,
		in.Name, in.Instructions,
		jsonParam(in.Criteria), jsonParam(in.ColumnRoles), jsonParam(in.Data), jsonParam(in.Context),
		in.TotalItems, in.RandomizationEnabled, in.Status, in.GroupBy, in.CompletedAt,
	)

	e, err := scanEvaluation(row)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Delete removes an evaluation together with its results
func (r *EvaluationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

func scanEvaluation(row pgx.Row) (*contracts.Evaluation, error) {
	var e contracts.Evaluation
	var criteria, columnRoles, data, evalContext []byte

	err := row.Scan(
		&e.ID, &e.Name, &e.Instructions, &criteria, &columnRoles, &data, &evalContext,
		&e.TotalItems, &e.RandomizationEnabled, &e.Status, &e.GroupBy, &e.CreatedAt, &e.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Criteria = rawJSON(criteria)
	e.ColumnRoles = rawJSON(columnRoles)
	e.Data = rawJSON(data)
	e.Context = rawJSON(evalContext)
	return &e, nil
}
