package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// BusinessAccountRepository define el puerto de persistencia para el tenant (DIP).
// La implementación vive en infrastructure.
type BusinessAccountRepository interface {
	Create(ctx context.Context, account *entity.BusinessAccount) error
	GetByID(ctx context.Context, id string) (*entity.BusinessAccount, error)
	Update(ctx context.Context, account *entity.BusinessAccount) error
	List(ctx context.Context, limit, offset int) ([]*entity.BusinessAccount, error)
	// SetPlan cambia el plan de la cuenta; las decisiones de permisos se
	// re-evalúan solas en el siguiente Resolve (no hay cache de decisiones).
	SetPlan(ctx context.Context, id, planID string) error
	// Deactivate hace soft delete (deleted_at = now, is_active = false);
	// Reactivate lo revierte. Nunca hay hard delete en flujos ordinarios.
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
}
