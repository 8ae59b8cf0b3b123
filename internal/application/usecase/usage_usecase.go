package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// UsageUseCase arma el resumen de uso/permisos por módulo para la UI y de
// paso refresca el cache UsageRecord. El resumen es informativo: un chequeo
// sin bloqueo puede ver un conteo que una creación concurrente está por
// exceder, así que nunca autoriza una escritura (eso es del guard).
type UsageUseCase struct {
	resolver *permission.Resolver
	records  repository.UsageRecordRepository
}

// NewUsageUseCase construye el caso de uso.
func NewUsageUseCase(resolver *permission.Resolver, records repository.UsageRecordRepository) *UsageUseCase {
	return &UsageUseCase{resolver: resolver, records: records}
}

// Summary resuelve cada módulo conocido para el actor y devuelve el detalle.
// Los fallos de store se propagan (el handler responde 503, no un denegado
// engañoso).
func (uc *UsageUseCase) Summary(ctx context.Context, accountID string, actor permission.Actor) (*dto.UsageSummaryResponse, error) {
	now := time.Now()
	out := &dto.UsageSummaryResponse{CalculatedAt: now}

	for _, module := range entity.AllModules() {
		dec, err := uc.resolver.Resolve(ctx, accountID, module, actor)
		if err != nil {
			return nil, err
		}
		out.Modules = append(out.Modules, dto.ModuleUsageResponse{
			Module:       string(module),
			HasAccess:    dec.HasAccess,
			CanCreate:    dec.Permissions.CanCreate,
			CanEdit:      dec.Permissions.CanEdit,
			CanDelete:    dec.Permissions.CanDelete,
			CanView:      dec.Permissions.CanView,
			ItemLimit:    dec.Permissions.ItemLimit,
			CurrentCount: dec.Permissions.CurrentCount,
			IsAtLimit:    dec.Permissions.IsAtLimit,
			IsNearLimit:  dec.Permissions.IsNearLimit,
			Source:       string(dec.Source),
		})

		// Refresco oportunista del cache; un fallo aquí no daña el resumen.
		if dec.HasAccess && module.Countable() {
			_ = uc.records.Upsert(ctx, &entity.UsageRecord{
				ID:                uuid.New().String(),
				BusinessAccountID: accountID,
				ModuleType:        module,
				CurrentCount:      dec.Permissions.CurrentCount,
				LastCalculated:    now,
			})
		}
	}
	return out, nil
}
