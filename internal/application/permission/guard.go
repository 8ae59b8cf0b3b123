package permission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// CreateFn ejecuta el insert real dentro de la transacción del guard, usando
// los repositorios atados a ella.
type CreateFn func(ctx context.Context, repos TxRepos) error

// LimitGuard hace atómica la secuencia "verificar cupo, luego insertar" para
// que dos creadores concurrentes del mismo (cuenta, módulo) no puedan pasar
// ambos cuando queda un solo cupo. Las ediciones y borrados no pasan por
// aquí: un ítem existente no puede exceder un límite, basta el Resolve plano.
type LimitGuard struct {
	tx TxRunner
}

// NewLimitGuard construye el guard con el runner transaccional.
func NewLimitGuard(tx TxRunner) *LimitGuard {
	return &LimitGuard{tx: tx}
}

// GuardedCreate abre una transacción y dentro de ella:
//
//  1. Resuelve permisos (capas plan/tenant/usuario) con repos de la tx.
//  2. Si hay límite numérico, bloquea las filas contadas del tenant
//     (SELECT … FOR UPDATE) y re-verifica el conteo bloqueado. Módulos sin
//     límite no bloquean nada: no hay contención posible.
//  3. Deniega con *domain.LimitDeniedError (rollback, sin insert) o ejecuta
//     create dentro de la misma tx.
//  4. Refresca el UsageRecord informativo y hace Commit.
//
// Cualquier error de create o de store hace rollback completo: sin estado
// parcial ni drift del cache de uso. Quien reciba LimitDeniedError no debe
// reintentar sin que cambie algo (plan, override, borrados); un error de
// store sí es reintentable porque no hubo commit parcial.
func (g *LimitGuard) GuardedCreate(ctx context.Context, accountID string, module entity.ModuleType, actor Actor, create CreateFn) error {
	if !module.Valid() {
		return domain.ErrInvalidInput
	}
	return g.tx.Run(ctx, func(repos TxRepos) error {
		resolver := NewResolver(repos.Accounts, repos.Plans, repos.Overrides, repos.Usage)
		dec, err := resolver.Resolve(ctx, accountID, module, actor)
		if err != nil {
			// Fallo de infraestructura: rollback y propagar, que el caller
			// decida reintentar.
			return err
		}
		if !dec.HasAccess {
			return domain.ErrForbidden
		}
		if !dec.Permissions.CanCreate {
			if dec.Permissions.IsAtLimit && dec.Permissions.ItemLimit != nil {
				return &domain.LimitDeniedError{
					Module:       module,
					CurrentCount: dec.Permissions.CurrentCount,
					Limit:        *dec.Permissions.ItemLimit,
				}
			}
			return domain.ErrForbidden
		}

		count := dec.Permissions.CurrentCount
		if dec.Permissions.ItemLimit != nil {
			// Serializa a los creadores concurrentes: el primero que toma el
			// bloqueo ve el conteo pre-insert; el segundo espera el commit y
			// ve el conteo actualizado.
			locked, err := repos.Usage.CountForUpdate(ctx, accountID, module)
			if err != nil {
				return err
			}
			count = locked
			if locked >= *dec.Permissions.ItemLimit {
				return &domain.LimitDeniedError{
					Module:       module,
					CurrentCount: locked,
					Limit:        *dec.Permissions.ItemLimit,
				}
			}
		}

		if err := create(ctx, repos); err != nil {
			return err
		}

		if module.Countable() {
			if err := repos.UsageRecords.Upsert(ctx, &entity.UsageRecord{
				ID:                uuid.New().String(),
				BusinessAccountID: accountID,
				ModuleType:        module,
				CurrentCount:      count + 1,
				LastCalculated:    time.Now(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
