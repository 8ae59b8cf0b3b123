package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

const activityColumns = `id, business_account_id, type, subject, notes, due_date, done, company_id, opportunity_id, assigned_user_id, created_at, updated_at`

// ActivityRepo implementación de ActivityRepository sobre PostgreSQL (usable con pool o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste una nueva actividad.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.BusinessAccountID, a.Type, a.Subject, a.Notes, a.DueDate, a.Done,
		a.CompanyID, a.OpportunityID, a.AssignedUserID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GetByID obtiene una actividad por ID (nil si no existe).
func (r *ActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	query := `
		SELECT id, business_account_id, type, subject, notes, due_date, done,
		       COALESCE(company_id, ''), COALESCE(opportunity_id, ''), assigned_user_id, created_at, updated_at
		FROM activities WHERE id = $1`
	var a entity.Activity
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.BusinessAccountID, &a.Type, &a.Subject, &a.Notes, &a.DueDate, &a.Done,
		&a.CompanyID, &a.OpportunityID, &a.AssignedUserID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return &a, nil
}

// Update actualiza una actividad existente.
func (r *ActivityRepo) Update(ctx context.Context, a *entity.Activity) error {
	query := `
		UPDATE activities
		SET subject = $2, notes = $3, due_date = $4, done = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Subject, a.Notes, a.DueDate, a.Done, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// ListByAccount lista actividades de la cuenta; pendingOnly filtra done=false.
func (r *ActivityRepo) ListByAccount(ctx context.Context, accountID string, pendingOnly bool, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT id, business_account_id, type, subject, notes, due_date, done,
		       COALESCE(company_id, ''), COALESCE(opportunity_id, ''), assigned_user_id, created_at, updated_at
		FROM activities
		WHERE business_account_id = $1 AND ($2 = false OR done = false)
		ORDER BY due_date ASC NULLS LAST, created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, accountID, pendingOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.BusinessAccountID, &a.Type, &a.Subject, &a.Notes, &a.DueDate, &a.Done,
			&a.CompanyID, &a.OpportunityID, &a.AssignedUserID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina una actividad por ID.
func (r *ActivityRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
