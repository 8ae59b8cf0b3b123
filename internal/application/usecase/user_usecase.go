package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios de una cuenta. El alta
// pasa por el guard del módulo USERS: es el caso clásico de límite de
// asientos del plan.
type UserUseCase struct {
	repo  repository.UserRepository
	guard *permission.LimitGuard
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y el guard.
func NewUserUseCase(repo repository.UserRepository, guard *permission.LimitGuard) *UserUseCase {
	return &UserUseCase{repo: repo, guard: guard}
}

// Register crea un usuario dentro de la cuenta vía guard atómico: el insert y
// la verificación de cupo ocurren en la misma transacción. Devuelve
// *domain.LimitDeniedError si los asientos están agotados.
func (uc *UserUseCase) Register(ctx context.Context, accountID string, actor permission.Actor, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleMember
	}
	if role != entity.RoleAdmin && role != entity.RoleMember {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmailAndAccount(ctx, in.Email, accountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:                uuid.New().String(),
		BusinessAccountID: accountID,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Name:              name,
		Role:              role,
		Status:            "active",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.guard.GuardedCreate(ctx, accountID, entity.ModuleUsers, actor, func(ctx context.Context, repos permission.TxRepos) error {
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID, restringido a la cuenta del solicitante.
func (uc *UserUseCase) GetByID(ctx context.Context, accountID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.BusinessAccountID != accountID {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// ListByAccount lista los usuarios de la cuenta con paginación.
func (uc *UserUseCase) ListByAccount(ctx context.Context, accountID string, page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.ListByAccount(ctx, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario de la cuenta. El borrado libera un asiento del
// módulo USERS; no necesita guard (quitar ítems nunca excede un límite).
func (uc *UserUseCase) Delete(ctx context.Context, accountID, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.BusinessAccountID != accountID {
		return domain.ErrNotFound
	}
	if user.Role == entity.RoleOwner {
		return domain.ErrForbidden // la cuenta no puede quedarse sin owner
	}
	return uc.repo.Delete(ctx, id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                u.ID,
		BusinessAccountID: u.BusinessAccountID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		Status:            u.Status,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
