package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// OverrideRepository define el puerto de las dos capas de excepciones:
// por tenant (deshabilitar módulo / límite más estricto) y por usuario
// (capacidades individuales). Ambas son upserts con clave única; ausencia de
// fila significa "sin excepción".
type OverrideRepository interface {
	GetAccountOverride(ctx context.Context, accountID string, module entity.ModuleType) (*entity.BusinessAccountModuleOverride, error)
	UpsertAccountOverride(ctx context.Context, ov *entity.BusinessAccountModuleOverride) error

	GetUserPermission(ctx context.Context, userID string, module entity.ModuleType) (*entity.UserModulePermission, error)
	UpsertUserPermission(ctx context.Context, perm *entity.UserModulePermission) error
	// DeleteUserPermissions borra en bloque las filas de un usuario (reset
	// administrativo de permisos).
	DeleteUserPermissions(ctx context.Context, accountID, userID string) error
}
