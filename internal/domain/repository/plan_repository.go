package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// PlanRepository define el puerto del catálogo de planes (DIP).
// Es data casi estática: la escriben los seeds y acciones administrativas.
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	GetByName(ctx context.Context, name string) (*entity.Plan, error)
	List(ctx context.Context) ([]*entity.Plan, error)
	// GetModule devuelve la fila PlanModule de (plan, módulo), o nil si el
	// plan no la tiene (lo que el resolver trata como sin entitlement).
	GetModule(ctx context.Context, planID string, module entity.ModuleType) (*entity.PlanModule, error)
	ListModules(ctx context.Context, planID string) ([]*entity.PlanModule, error)
	// Upserts para el seed del catálogo.
	UpsertPlan(ctx context.Context, plan *entity.Plan) error
	UpsertModule(ctx context.Context, pm *entity.PlanModule) error
}
