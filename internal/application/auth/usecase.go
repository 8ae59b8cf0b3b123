package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
	"github.com/jhoicas/crm-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: signup (cuenta + owner) y login.
type AuthUseCase struct {
	users    repository.UserRepository
	accounts repository.BusinessAccountRepository
	plans    repository.PlanRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, accounts repository.BusinessAccountRepository, plans repository.PlanRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, accounts: accounts, plans: plans, jwtCfg: jwtCfg}
}

// Signup crea la BusinessAccount y su usuario owner. El plan por nombre
// (vacío = gratis) debe existir en el catálogo. El owner no pasa por el guard
// del módulo USERS: todavía no hay cuenta contra la cual resolver.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	if in.AccountName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	planName := in.PlanName
	if planName == "" {
		planName = "gratis"
	}
	plan, err := uc.plans.GetByName(ctx, planName)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &entity.BusinessAccount{
		ID:        uuid.New().String(),
		Name:      in.AccountName,
		PlanID:    plan.ID,
		Status:    entity.AccountStatusActive,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = in.Email
	}
	owner := &entity.User{
		ID:                uuid.New().String(),
		BusinessAccountID: account.ID,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Name:              name,
		Role:              entity.RoleOwner,
		Status:            "active",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.users.Create(ctx, owner); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, owner.ID, account.ID, owner.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SignupResponse{
		Account: toAccountResponse(account),
		User:    *toUserResponse(owner),
		Token:   token,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// La cuenta suspendida o borrada también bloquea el login.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	account, err := uc.accounts.GetByID(ctx, user.BusinessAccountID)
	if err != nil {
		return nil, err
	}
	if !account.Alive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.BusinessAccountID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
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

func toAccountResponse(a *entity.BusinessAccount) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		PlanID:    a.PlanID,
		Status:    a.Status,
		IsActive:  a.IsActive,
		DeletedAt: a.DeletedAt,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
