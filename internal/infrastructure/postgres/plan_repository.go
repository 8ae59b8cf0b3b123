package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

const planModuleColumns = `id, plan_id, module_type, is_included, item_limit, can_create, can_edit, can_delete, can_view, created_at, updated_at`

// PlanRepo implementación del catálogo de planes sobre PostgreSQL (usable con pool o tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// GetByID obtiene un plan por ID (nil si no existe).
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	return r.getOne(ctx, `SELECT id, name, description, created_at, updated_at FROM plans WHERE id = $1`, id)
}

// GetByName obtiene un plan por nombre (nil si no existe).
func (r *PlanRepo) GetByName(ctx context.Context, name string) (*entity.Plan, error) {
	return r.getOne(ctx, `SELECT id, name, description, created_at, updated_at FROM plans WHERE name = $1`, name)
}

// List devuelve el catálogo completo de planes.
func (r *PlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM plans ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetModule devuelve la fila PlanModule de (plan, módulo), o nil si el plan
// no ofrece el módulo — que el resolver trata como sin entitlement.
func (r *PlanRepo) GetModule(ctx context.Context, planID string, module entity.ModuleType) (*entity.PlanModule, error) {
	query := `SELECT ` + planModuleColumns + ` FROM plan_modules WHERE plan_id = $1 AND module_type = $2`
	var pm entity.PlanModule
	err := r.q.QueryRow(ctx, query, planID, string(module)).Scan(
		&pm.ID, &pm.PlanID, &pm.ModuleType, &pm.IsIncluded, &pm.ItemLimit,
		&pm.CanCreate, &pm.CanEdit, &pm.CanDelete, &pm.CanView, &pm.CreatedAt, &pm.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan module: %w", err)
	}
	return &pm, nil
}

// ListModules devuelve todas las filas PlanModule de un plan.
func (r *PlanRepo) ListModules(ctx context.Context, planID string) ([]*entity.PlanModule, error) {
	query := `SELECT ` + planModuleColumns + ` FROM plan_modules WHERE plan_id = $1 ORDER BY module_type`
	rows, err := r.q.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("list plan modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.PlanModule
	for rows.Next() {
		var pm entity.PlanModule
		if err := rows.Scan(&pm.ID, &pm.PlanID, &pm.ModuleType, &pm.IsIncluded, &pm.ItemLimit,
			&pm.CanCreate, &pm.CanEdit, &pm.CanDelete, &pm.CanView, &pm.CreatedAt, &pm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan module: %w", err)
		}
		list = append(list, &pm)
	}
	return list, rows.Err()
}

// UpsertPlan inserta o actualiza un plan del catálogo (seed/admin).
func (r *PlanRepo) UpsertPlan(ctx context.Context, p *entity.Plan) error {
	query := `
		INSERT INTO plans (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name)
		DO UPDATE SET description = EXCLUDED.description, updated_at = now()`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}

// UpsertModule inserta o actualiza la fila PlanModule (única por plan y módulo).
func (r *PlanRepo) UpsertModule(ctx context.Context, pm *entity.PlanModule) error {
	query := `
		INSERT INTO plan_modules (` + planModuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (plan_id, module_type)
		DO UPDATE SET is_included = EXCLUDED.is_included, item_limit = EXCLUDED.item_limit,
		              can_create = EXCLUDED.can_create, can_edit = EXCLUDED.can_edit,
		              can_delete = EXCLUDED.can_delete, can_view = EXCLUDED.can_view,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		pm.ID, pm.PlanID, string(pm.ModuleType), pm.IsIncluded, pm.ItemLimit,
		pm.CanCreate, pm.CanEdit, pm.CanDelete, pm.CanView, pm.CreatedAt, pm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert plan module: %w", err)
	}
	return nil
}

func (r *PlanRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Plan, error) {
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}
