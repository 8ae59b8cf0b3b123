package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.OverrideRepository = (*OverrideRepo)(nil)

// OverrideRepo implementación de las dos capas de excepciones sobre
// PostgreSQL (usable con pool o tx).
type OverrideRepo struct {
	q Querier
}

// NewOverrideRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOverrideRepository(q Querier) *OverrideRepo {
	return &OverrideRepo{q: q}
}

// GetAccountOverride obtiene la excepción por tenant de (cuenta, módulo),
// o nil si no existe fila (sin excepción).
func (r *OverrideRepo) GetAccountOverride(ctx context.Context, accountID string, module entity.ModuleType) (*entity.BusinessAccountModuleOverride, error) {
	query := `
		SELECT id, business_account_id, module_type, is_disabled, item_limit, created_at, updated_at
		FROM business_account_module_overrides
		WHERE business_account_id = $1 AND module_type = $2`
	var ov entity.BusinessAccountModuleOverride
	err := r.q.QueryRow(ctx, query, accountID, string(module)).Scan(
		&ov.ID, &ov.BusinessAccountID, &ov.ModuleType, &ov.IsDisabled, &ov.ItemLimit,
		&ov.CreatedAt, &ov.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account override: %w", err)
	}
	return &ov, nil
}

// UpsertAccountOverride inserta o actualiza la excepción por tenant
// (única por cuenta y módulo).
func (r *OverrideRepo) UpsertAccountOverride(ctx context.Context, ov *entity.BusinessAccountModuleOverride) error {
	query := `
		INSERT INTO business_account_module_overrides
			(id, business_account_id, module_type, is_disabled, item_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (business_account_id, module_type)
		DO UPDATE SET is_disabled = EXCLUDED.is_disabled, item_limit = EXCLUDED.item_limit,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		ov.ID, ov.BusinessAccountID, string(ov.ModuleType), ov.IsDisabled, ov.ItemLimit,
		ov.CreatedAt, ov.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert account override: %w", err)
	}
	return nil
}

// GetUserPermission obtiene la fila de permisos por usuario de (usuario,
// módulo), o nil si no existe (rige el default del plan).
func (r *OverrideRepo) GetUserPermission(ctx context.Context, userID string, module entity.ModuleType) (*entity.UserModulePermission, error) {
	query := `
		SELECT id, business_account_id, user_id, module_type,
		       can_view, can_create, can_edit, can_delete, granted_by, created_at, updated_at
		FROM user_module_permissions
		WHERE user_id = $1 AND module_type = $2`
	var perm entity.UserModulePermission
	err := r.q.QueryRow(ctx, query, userID, string(module)).Scan(
		&perm.ID, &perm.BusinessAccountID, &perm.UserID, &perm.ModuleType,
		&perm.CanView, &perm.CanCreate, &perm.CanEdit, &perm.CanDelete,
		&perm.GrantedBy, &perm.CreatedAt, &perm.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user permission: %w", err)
	}
	return &perm, nil
}

// UpsertUserPermission inserta o actualiza la fila de permisos por usuario
// (única por usuario y módulo). La fila completa se escribe en una sola
// sentencia: no hay estados parciales visibles.
func (r *OverrideRepo) UpsertUserPermission(ctx context.Context, perm *entity.UserModulePermission) error {
	query := `
		INSERT INTO user_module_permissions
			(id, business_account_id, user_id, module_type,
			 can_view, can_create, can_edit, can_delete, granted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, module_type)
		DO UPDATE SET can_view = EXCLUDED.can_view, can_create = EXCLUDED.can_create,
		              can_edit = EXCLUDED.can_edit, can_delete = EXCLUDED.can_delete,
		              granted_by = EXCLUDED.granted_by, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		perm.ID, perm.BusinessAccountID, perm.UserID, string(perm.ModuleType),
		perm.CanView, perm.CanCreate, perm.CanEdit, perm.CanDelete,
		perm.GrantedBy, perm.CreatedAt, perm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user permission: %w", err)
	}
	return nil
}

// DeleteUserPermissions borra en bloque todas las filas de un usuario dentro
// de su cuenta. El usuario vuelve a los defaults del plan.
func (r *OverrideRepo) DeleteUserPermissions(ctx context.Context, accountID, userID string) error {
	query := `DELETE FROM user_module_permissions WHERE business_account_id = $1 AND user_id = $2`
	_, err := r.q.Exec(ctx, query, accountID, userID)
	if err != nil {
		return fmt.Errorf("delete user permissions: %w", err)
	}
	return nil
}
