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
	"github.com/shopspring/decimal"
)

// OpportunityUseCase aplica reglas de negocio para oportunidades (módulo CRM,
// sin entidad contable: el guard verifica permisos pero no bloquea filas).
type OpportunityUseCase struct {
	repo      repository.OpportunityRepository
	companies repository.CompanyRepository
	guard     *permission.LimitGuard
}

// NewOpportunityUseCase construye el caso de uso.
func NewOpportunityUseCase(repo repository.OpportunityRepository, companies repository.CompanyRepository, guard *permission.LimitGuard) *OpportunityUseCase {
	return &OpportunityUseCase{repo: repo, companies: companies, guard: guard}
}

// Create da de alta una oportunidad ligada a una empresa de la cuenta.
func (uc *OpportunityUseCase) Create(ctx context.Context, accountID string, actor permission.Actor, in dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	if in.Name == "" || in.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	stage := in.Stage
	if stage == "" {
		stage = entity.StageLead
	}
	if !entity.ValidStage(stage) {
		return nil, domain.ErrInvalidInput
	}
	if in.EstimatedValue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.BusinessAccountID != accountID || company.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	opp := &entity.Opportunity{
		ID:                uuid.New().String(),
		BusinessAccountID: accountID,
		CompanyID:         in.CompanyID,
		Name:              in.Name,
		Stage:             stage,
		EstimatedValue:    in.EstimatedValue,
		CloseDate:         in.CloseDate,
		OwnerUserID:       actor.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.guard.GuardedCreate(ctx, accountID, entity.ModuleCRM, actor, func(ctx context.Context, repos permission.TxRepos) error {
		return repos.Opportunities.Create(ctx, opp)
	})
	if err != nil {
		return nil, err
	}
	return toOpportunityResponse(opp), nil
}

// GetByID obtiene una oportunidad de la cuenta.
func (uc *OpportunityUseCase) GetByID(ctx context.Context, accountID, id string) (*dto.OpportunityResponse, error) {
	opp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil || opp.BusinessAccountID != accountID {
		return nil, nil
	}
	return toOpportunityResponse(opp), nil
}

// Update edita una oportunidad (etapa, valor, fecha de cierre).
func (uc *OpportunityUseCase) Update(ctx context.Context, accountID, id string, in dto.UpdateOpportunityRequest) (*dto.OpportunityResponse, error) {
	opp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil || opp.BusinessAccountID != accountID {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		opp.Name = in.Name
	}
	if in.Stage != "" {
		if !entity.ValidStage(in.Stage) {
			return nil, domain.ErrInvalidInput
		}
		opp.Stage = in.Stage
	}
	if !in.EstimatedValue.IsZero() {
		if in.EstimatedValue.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		opp.EstimatedValue = in.EstimatedValue
	}
	if in.CloseDate != nil {
		opp.CloseDate = in.CloseDate
	}
	opp.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, opp); err != nil {
		return nil, err
	}
	return toOpportunityResponse(opp), nil
}

// List lista oportunidades de la cuenta, opcionalmente filtradas por etapa.
func (uc *OpportunityUseCase) List(ctx context.Context, accountID, stage string, page dto.PageRequest) ([]*dto.OpportunityResponse, error) {
	if stage != "" && !entity.ValidStage(stage) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	opps, err := uc.repo.ListByAccount(ctx, accountID, stage, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OpportunityResponse, 0, len(opps))
	for _, o := range opps {
		out = append(out, toOpportunityResponse(o))
	}
	return out, nil
}

// Delete elimina una oportunidad de la cuenta.
func (uc *OpportunityUseCase) Delete(ctx context.Context, accountID, id string) error {
	opp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if opp == nil || opp.BusinessAccountID != accountID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toOpportunityResponse(o *entity.Opportunity) *dto.OpportunityResponse {
	if o == nil {
		return nil
	}
	return &dto.OpportunityResponse{
		ID:             o.ID,
		CompanyID:      o.CompanyID,
		Name:           o.Name,
		Stage:          o.Stage,
		EstimatedValue: o.EstimatedValue,
		CloseDate:      o.CloseDate,
		OwnerUserID:    o.OwnerUserID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
