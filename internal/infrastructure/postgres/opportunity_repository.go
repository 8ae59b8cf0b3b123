package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.OpportunityRepository = (*OpportunityRepo)(nil)

const opportunityColumns = `id, business_account_id, company_id, name, stage, estimated_value, close_date, owner_user_id, created_at, updated_at`

// OpportunityRepo implementación de OpportunityRepository sobre PostgreSQL (usable con pool o tx).
type OpportunityRepo struct {
	q Querier
}

// NewOpportunityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

// Create persiste una nueva oportunidad.
func (r *OpportunityRepo) Create(ctx context.Context, o *entity.Opportunity) error {
	query := `
		INSERT INTO opportunities (` + opportunityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.BusinessAccountID, o.CompanyID, o.Name, o.Stage, o.EstimatedValue,
		o.CloseDate, o.OwnerUserID, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}
	return nil
}

// GetByID obtiene una oportunidad por ID (nil si no existe).
func (r *OpportunityRepo) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`
	var o entity.Opportunity
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.BusinessAccountID, &o.CompanyID, &o.Name, &o.Stage, &o.EstimatedValue,
		&o.CloseDate, &o.OwnerUserID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return &o, nil
}

// Update actualiza una oportunidad existente.
func (r *OpportunityRepo) Update(ctx context.Context, o *entity.Opportunity) error {
	query := `
		UPDATE opportunities
		SET name = $2, stage = $3, estimated_value = $4, close_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Name, o.Stage, o.EstimatedValue, o.CloseDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	return nil
}

// ListByAccount lista oportunidades de la cuenta, opcionalmente por etapa.
func (r *OpportunityRepo) ListByAccount(ctx context.Context, accountID, stage string, limit, offset int) ([]*entity.Opportunity, error) {
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE business_account_id = $1 AND ($2 = '' OR stage = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, accountID, stage, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Opportunity
	for rows.Next() {
		var o entity.Opportunity
		if err := rows.Scan(&o.ID, &o.BusinessAccountID, &o.CompanyID, &o.Name, &o.Stage, &o.EstimatedValue,
			&o.CloseDate, &o.OwnerUserID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Delete elimina una oportunidad por ID.
func (r *OpportunityRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	return nil
}
