package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// OpportunityRepository define el puerto de persistencia para oportunidades (DIP).
type OpportunityRepository interface {
	Create(ctx context.Context, opp *entity.Opportunity) error
	GetByID(ctx context.Context, id string) (*entity.Opportunity, error)
	Update(ctx context.Context, opp *entity.Opportunity) error
	ListByAccount(ctx context.Context, accountID, stage string, limit, offset int) ([]*entity.Opportunity, error)
	Delete(ctx context.Context, id string) error
}
