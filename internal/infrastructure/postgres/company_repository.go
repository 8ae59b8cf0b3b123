package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, business_account_id, name, name_normalized, nit, contact_name, email, phone, address, city, status, deleted_at, created_at, updated_at`

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa CRM.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.BusinessAccountID, c.Name, c.NameNormalized, c.NIT, c.ContactName,
		c.Email, c.Phone, c.Address, c.City, c.Status, c.DeletedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID (nil si no existe).
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.BusinessAccountID, &c.Name, &c.NameNormalized, &c.NIT, &c.ContactName,
		&c.Email, &c.Phone, &c.Address, &c.City, &c.Status, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, name_normalized = $3, nit = $4, contact_name = $5, email = $6,
		    phone = $7, address = $8, city = $9, status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.NameNormalized, c.NIT, c.ContactName, c.Email,
		c.Phone, c.Address, c.City, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// ListByAccount lista empresas vivas del tenant. search (ya normalizado)
// filtra por prefijo/contención sobre name_normalized.
func (r *CompanyRepo) ListByAccount(ctx context.Context, accountID, search string, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE business_account_id = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR name_normalized LIKE '%' || $2 || '%')
		ORDER BY name ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, accountID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.BusinessAccountID, &c.Name, &c.NameNormalized, &c.NIT, &c.ContactName,
			&c.Email, &c.Phone, &c.Address, &c.City, &c.Status, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SoftDelete marca deleted_at; la empresa deja de contar para el límite de CONTACTS.
func (r *CompanyRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE companies SET deleted_at = now(), status = 'inactive', updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete company: %w", err)
	}
	return nil
}
