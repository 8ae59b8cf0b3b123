package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// Asegura que BusinessAccountRepo implementa el puerto.
var _ repository.BusinessAccountRepository = (*BusinessAccountRepo)(nil)

// BusinessAccountRepo implementación del puerto sobre PostgreSQL (usable con pool o tx).
type BusinessAccountRepo struct {
	q Querier
}

// NewBusinessAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessAccountRepository(q Querier) *BusinessAccountRepo {
	return &BusinessAccountRepo{q: q}
}

// Create persiste una nueva cuenta.
func (r *BusinessAccountRepo) Create(ctx context.Context, a *entity.BusinessAccount) error {
	query := `
		INSERT INTO business_accounts (id, name, plan_id, status, is_active, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.PlanID, a.Status, a.IsActive, a.DeletedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID (nil si no existe).
func (r *BusinessAccountRepo) GetByID(ctx context.Context, id string) (*entity.BusinessAccount, error) {
	query := `
		SELECT id, name, plan_id, status, is_active, deleted_at, created_at, updated_at
		FROM business_accounts WHERE id = $1`
	var a entity.BusinessAccount
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.PlanID, &a.Status, &a.IsActive, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business account: %w", err)
	}
	return &a, nil
}

// Update actualiza una cuenta existente.
func (r *BusinessAccountRepo) Update(ctx context.Context, a *entity.BusinessAccount) error {
	query := `
		UPDATE business_accounts
		SET name = $2, plan_id = $3, status = $4, is_active = $5, deleted_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.PlanID, a.Status, a.IsActive, a.DeletedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business account: %w", err)
	}
	return nil
}

// List devuelve cuentas con paginación.
func (r *BusinessAccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.BusinessAccount, error) {
	query := `
		SELECT id, name, plan_id, status, is_active, deleted_at, created_at, updated_at
		FROM business_accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list business accounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.BusinessAccount
	for rows.Next() {
		var a entity.BusinessAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.PlanID, &a.Status, &a.IsActive, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// SetPlan cambia el plan de la cuenta. No toca ningún cache: las decisiones
// de permisos se resuelven en vivo.
func (r *BusinessAccountRepo) SetPlan(ctx context.Context, id, planID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE business_accounts SET plan_id = $2, updated_at = now() WHERE id = $1`,
		id, planID,
	)
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// Deactivate hace soft delete de la cuenta.
func (r *BusinessAccountRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE business_accounts
		 SET status = 'suspended', is_active = false, deleted_at = now(), updated_at = now()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate business account: %w", err)
	}
	return nil
}

// Reactivate limpia el soft delete.
func (r *BusinessAccountRepo) Reactivate(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE business_accounts
		 SET status = 'active', is_active = true, deleted_at = NULL, updated_at = now()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("reactivate business account: %w", err)
	}
	return nil
}
