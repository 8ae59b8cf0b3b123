package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

var _ repository.UsageCounter = (*UsageCounterRepo)(nil)

// UsageCounterRepo cuenta ítems vivos contra la tabla de la entidad que
// gobierna cada módulo. Los módulos sin entidad contable devuelven 0.
type UsageCounterRepo struct {
	q Querier
}

// NewUsageCounter construye el contador. Pasar pool o tx (Querier).
func NewUsageCounter(q Querier) *UsageCounterRepo {
	return &UsageCounterRepo{q: q}
}

// Count devuelve el conteo vivo de (cuenta, módulo). No bloquea filas.
func (r *UsageCounterRepo) Count(ctx context.Context, accountID string, module entity.ModuleType) (int, error) {
	query, ok := countQuery(module)
	if !ok {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, query, accountID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", module, err)
	}
	return n, nil
}

// CountForUpdate bloquea las filas contadas del tenant con SELECT … FOR
// UPDATE y devuelve el conteo. COUNT(*) no admite FOR UPDATE, así que se
// seleccionan los ids bloqueados y se cuentan al vuelo. Solo tiene sentido
// dentro de una transacción.
func (r *UsageCounterRepo) CountForUpdate(ctx context.Context, accountID string, module entity.ModuleType) (int, error) {
	query, ok := lockQuery(module)
	if !ok {
		return 0, nil
	}
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return 0, fmt.Errorf("count for update %s: %w", module, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scan locked row: %w", err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("count for update %s: %w", module, err)
	}
	return n, nil
}

func countQuery(module entity.ModuleType) (string, bool) {
	switch module {
	case entity.ModuleUsers:
		return `SELECT COUNT(*) FROM users WHERE business_account_id = $1 AND status = 'active'`, true
	case entity.ModuleContacts:
		return `SELECT COUNT(*) FROM companies WHERE business_account_id = $1 AND deleted_at IS NULL`, true
	default:
		return "", false
	}
}

func lockQuery(module entity.ModuleType) (string, bool) {
	switch module {
	case entity.ModuleUsers:
		return `SELECT id FROM users WHERE business_account_id = $1 AND status = 'active' FOR UPDATE`, true
	case entity.ModuleContacts:
		return `SELECT id FROM companies WHERE business_account_id = $1 AND deleted_at IS NULL FOR UPDATE`, true
	default:
		return "", false
	}
}
