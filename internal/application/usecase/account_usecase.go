package usecase

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// AccountUseCase acciones administrativas sobre la BusinessAccount: plan,
// suspensión (soft delete) y reactivación.
type AccountUseCase struct {
	repo  repository.BusinessAccountRepository
	plans repository.PlanRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.BusinessAccountRepository, plans repository.PlanRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo, plans: plans}
}

// GetByID obtiene la cuenta.
func (uc *AccountUseCase) GetByID(ctx context.Context, id string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	out := toAccountResponse(account)
	return &out, nil
}

// ChangePlan cambia el plan por nombre. No invalida nada: el siguiente
// Resolve ya decide con el plan nuevo.
func (uc *AccountUseCase) ChangePlan(ctx context.Context, accountID string, in dto.ChangePlanRequest) (*dto.AccountResponse, error) {
	if in.PlanName == "" {
		return nil, domain.ErrInvalidInput
	}
	plan, err := uc.plans.GetByName(ctx, in.PlanName)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetPlan(ctx, accountID, plan.ID); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, accountID)
}

// Deactivate suspende la cuenta (soft delete). Todos los Resolve posteriores
// devuelven denegado hasta reactivar.
func (uc *AccountUseCase) Deactivate(ctx context.Context, accountID string) error {
	account, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(ctx, accountID)
}

// Reactivate limpia el soft delete y vuelve la cuenta operativa.
func (uc *AccountUseCase) Reactivate(ctx context.Context, accountID string) error {
	account, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Reactivate(ctx, accountID)
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
