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
	"github.com/jhoicas/crm-pro/pkg/normalize"
)

// CompanyUseCase aplica reglas de negocio para empresas/contactos CRM
// (módulo CONTACTS, contable: el alta pasa por el guard).
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	guard *permission.LimitGuard
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, guard *permission.LimitGuard) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, guard: guard}
}

// Create da de alta una empresa vía guard atómico del módulo CONTACTS.
func (uc *CompanyUseCase) Create(ctx context.Context, accountID string, actor permission.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:                uuid.New().String(),
		BusinessAccountID: accountID,
		Name:              in.Name,
		NameNormalized:    normalize.Text(in.Name),
		NIT:               in.NIT,
		ContactName:       in.ContactName,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		City:              in.City,
		Status:            "active",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := uc.guard.GuardedCreate(ctx, accountID, entity.ModuleContacts, actor, func(ctx context.Context, repos permission.TxRepos) error {
		return repos.Companies.Create(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa de la cuenta.
func (uc *CompanyUseCase) GetByID(ctx context.Context, accountID, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil || company.BusinessAccountID != accountID || company.DeletedAt != nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

// Update edita una empresa existente (el middleware ya validó canEdit).
func (uc *CompanyUseCase) Update(ctx context.Context, accountID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil || company.BusinessAccountID != accountID || company.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		company.Name = in.Name
		company.NameNormalized = normalize.Text(in.Name)
	}
	if in.ContactName != "" {
		company.ContactName = in.ContactName
	}
	if in.Email != "" {
		company.Email = in.Email
	}
	if in.Phone != "" {
		company.Phone = in.Phone
	}
	if in.Address != "" {
		company.Address = in.Address
	}
	if in.City != "" {
		company.City = in.City
	}
	if in.Status != "" {
		company.Status = in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista empresas vivas de la cuenta; search busca sin distinguir tildes
// ni mayúsculas (name_normalized).
func (uc *CompanyUseCase) List(ctx context.Context, accountID, search string, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.repo.ListByAccount(ctx, accountID, normalize.Text(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Delete hace soft delete: la empresa deja de contar para el límite del
// módulo CONTACTS, liberando cupo.
func (uc *CompanyUseCase) Delete(ctx context.Context, accountID, id string) error {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil || company.BusinessAccountID != accountID || company.DeletedAt != nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		NIT:         c.NIT,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
