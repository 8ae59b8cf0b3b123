package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// ActivityRepository define el puerto de persistencia para actividades (DIP).
type ActivityRepository interface {
	Create(ctx context.Context, act *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	Update(ctx context.Context, act *entity.Activity) error
	ListByAccount(ctx context.Context, accountID string, pendingOnly bool, limit, offset int) ([]*entity.Activity, error)
	Delete(ctx context.Context, id string) error
}
