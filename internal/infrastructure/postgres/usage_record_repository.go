package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.UsageRecordRepository = (*UsageRecordRepo)(nil)

// UsageRecordRepo implementación del cache informativo de uso sobre
// PostgreSQL (usable con pool o tx).
type UsageRecordRepo struct {
	q Querier
}

// NewUsageRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsageRecordRepository(q Querier) *UsageRecordRepo {
	return &UsageRecordRepo{q: q}
}

// Get obtiene el registro de uso de (cuenta, módulo), o nil si aún no existe.
func (r *UsageRecordRepo) Get(ctx context.Context, accountID string, module entity.ModuleType) (*entity.UsageRecord, error) {
	query := `
		SELECT id, business_account_id, module_type, current_count, last_calculated
		FROM usage_records
		WHERE business_account_id = $1 AND module_type = $2`
	var rec entity.UsageRecord
	err := r.q.QueryRow(ctx, query, accountID, string(module)).Scan(
		&rec.ID, &rec.BusinessAccountID, &rec.ModuleType, &rec.CurrentCount, &rec.LastCalculated,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usage record: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza el registro de uso (único por cuenta y módulo).
func (r *UsageRecordRepo) Upsert(ctx context.Context, rec *entity.UsageRecord) error {
	query := `
		INSERT INTO usage_records (id, business_account_id, module_type, current_count, last_calculated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (business_account_id, module_type)
		DO UPDATE SET current_count = EXCLUDED.current_count, last_calculated = EXCLUDED.last_calculated`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.BusinessAccountID, string(rec.ModuleType), rec.CurrentCount, rec.LastCalculated,
	)
	if err != nil {
		return fmt.Errorf("upsert usage record: %w", err)
	}
	return nil
}
