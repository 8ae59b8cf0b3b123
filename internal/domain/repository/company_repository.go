package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para empresas/contactos CRM (DIP).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// ListByAccount lista empresas vivas del tenant; search filtra por
	// name_normalized (ver pkg/normalize).
	ListByAccount(ctx context.Context, accountID, search string, limit, offset int) ([]*entity.Company, error)
	// SoftDelete marca deleted_at; las empresas borradas dejan de contar para
	// el límite del módulo CONTACTS.
	SoftDelete(ctx context.Context, id string) error
}
