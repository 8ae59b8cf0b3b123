package repository

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// UsageCounter define el puerto del contador vivo de ítems por (cuenta,
// módulo). No escribe nada: es seguro llamarlo fuera de transacción (para
// mostrar uso) o dentro de una (para el guard atómico).
type UsageCounter interface {
	// Count consulta el conteo vivo contra la tabla de la entidad que
	// gobierna el módulo. Módulos sin entidad contable devuelven 0.
	Count(ctx context.Context, accountID string, module entity.ModuleType) (int, error)
	// CountForUpdate bloquea las filas contadas del tenant (SELECT … FOR
	// UPDATE) y devuelve el conteo. Solo tiene sentido dentro de una
	// transacción: es lo que serializa a los creadores concurrentes.
	CountForUpdate(ctx context.Context, accountID string, module entity.ModuleType) (int, error)
}

// UsageRecordRepository define el puerto del cache informativo de uso.
// Nunca es fuente de verdad para una decisión de límite.
type UsageRecordRepository interface {
	Get(ctx context.Context, accountID string, module entity.ModuleType) (*entity.UsageRecord, error)
	Upsert(ctx context.Context, rec *entity.UsageRecord) error
}
