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
)

// ActivityUseCase aplica reglas de negocio para actividades comerciales
// (módulo ACTIVITIES, sin entidad contable).
type ActivityUseCase struct {
	repo  repository.ActivityRepository
	guard *permission.LimitGuard
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, guard *permission.LimitGuard) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, guard: guard}
}

// Create registra una actividad asignada al actor.
func (uc *ActivityUseCase) Create(ctx context.Context, accountID string, actor permission.Actor, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if in.Subject == "" || !entity.ValidActivityType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	act := &entity.Activity{
		ID:                uuid.New().String(),
		BusinessAccountID: accountID,
		Type:              in.Type,
		Subject:           in.Subject,
		Notes:             in.Notes,
		DueDate:           in.DueDate,
		CompanyID:         in.CompanyID,
		OpportunityID:     in.OpportunityID,
		AssignedUserID:    actor.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := uc.guard.GuardedCreate(ctx, accountID, entity.ModuleActivities, actor, func(ctx context.Context, repos permission.TxRepos) error {
		return repos.Activities.Create(ctx, act)
	})
	if err != nil {
		return nil, err
	}
	return toActivityResponse(act), nil
}

// Update edita una actividad (incluido marcarla como hecha).
func (uc *ActivityUseCase) Update(ctx context.Context, accountID, id string, in dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	act, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if act == nil || act.BusinessAccountID != accountID {
		return nil, domain.ErrNotFound
	}
	if in.Subject != "" {
		act.Subject = in.Subject
	}
	if in.Notes != "" {
		act.Notes = in.Notes
	}
	if in.DueDate != nil {
		act.DueDate = in.DueDate
	}
	if in.Done != nil {
		act.Done = *in.Done
	}
	act.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, act); err != nil {
		return nil, err
	}
	return toActivityResponse(act), nil
}

// List lista actividades de la cuenta; pendingOnly filtra las no hechas.
func (uc *ActivityUseCase) List(ctx context.Context, accountID string, pendingOnly bool, page dto.PageRequest) ([]*dto.ActivityResponse, error) {
	page.DefaultPage()
	acts, err := uc.repo.ListByAccount(ctx, accountID, pendingOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ActivityResponse, 0, len(acts))
	for _, a := range acts {
		out = append(out, toActivityResponse(a))
	}
	return out, nil
}

// Delete elimina una actividad de la cuenta.
func (uc *ActivityUseCase) Delete(ctx context.Context, accountID, id string) error {
	act, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if act == nil || act.BusinessAccountID != accountID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivityResponse{
		ID:             a.ID,
		Type:           a.Type,
		Subject:        a.Subject,
		Notes:          a.Notes,
		DueDate:        a.DueDate,
		Done:           a.Done,
		CompanyID:      a.CompanyID,
		OpportunityID:  a.OpportunityID,
		AssignedUserID: a.AssignedUserID,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
