package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndAccount(ctx context.Context, email, accountID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
