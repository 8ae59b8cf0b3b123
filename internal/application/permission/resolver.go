package permission

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// Source indica qué capa produjo la decisión final.
type Source string

const (
	SourcePlan           Source = "PLAN"
	SourceTenantOverride Source = "TENANT_OVERRIDE"
	SourceUserOverride   Source = "USER_OVERRIDE"
	SourceDenied         Source = "DENIED"
)

// Reason clasifica una denegación con un código estable para que el HTTP
// layer y el cliente puedan ramificar (upsell solo en límite, etc.).
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonAccountInactive Reason = "ACCOUNT_INACTIVE"
	ReasonNoEntitlement   Reason = "MODULE_NOT_INCLUDED"
	ReasonTenantDisabled  Reason = "MODULE_DISABLED"
	ReasonUserOverride    Reason = "PERMISSION_DENIED"
	ReasonStoreError      Reason = "PERMISSION_CHECK_FAILED"
)

// NearLimitFraction fracción del límite a partir de la cual IsNearLimit se
// enciende (aviso de UI, no bloquea nada).
const NearLimitFraction = 0.8

// Actor es quien ejecuta la operación. Los roles privilegiados (owner/admin)
// nunca pasan por la capa de permisos por usuario: resuelven con los derechos
// plenos del plan. El bypass vive aquí, no repartido por los handlers.
type Actor struct {
	UserID string
	Role   string
}

// Privileged informa si el actor omite la capa de permisos por usuario.
func (a Actor) Privileged() bool {
	return entity.PrivilegedRole(a.Role)
}

// Capabilities es el detalle de derechos y uso de la decisión.
type Capabilities struct {
	CanCreate    bool `json:"canCreate"`
	CanEdit      bool `json:"canEdit"`
	CanDelete    bool `json:"canDelete"`
	CanView      bool `json:"canView"`
	ItemLimit    *int `json:"itemLimit"` // nil = ilimitado
	CurrentCount int  `json:"currentCount"`
	IsAtLimit    bool `json:"isAtLimit"`
	IsNearLimit  bool `json:"isNearLimit"`
}

// Decision es el resultado autoritativo de Resolve. Una denegación ordinaria
// es un valor normal (HasAccess=false), no un error: los llamadores solo
// reciben error ante fallos de infraestructura.
type Decision struct {
	HasAccess   bool         `json:"hasAccess"`
	Permissions Capabilities `json:"permissions"`
	Source      Source       `json:"source"`
	Reason      Reason       `json:"reason,omitempty"`
}

// AllDenied es la decisión cerrada: sin acceso, sin capacidades, límite 0 y
// at-limit encendido para que ningún caller pueda crear por accidente.
func AllDenied(source Source, reason Reason) Decision {
	zero := 0
	return Decision{
		HasAccess: false,
		Permissions: Capabilities{
			ItemLimit: &zero,
			IsAtLimit: true,
		},
		Source: source,
		Reason: reason,
	}
}

// Resolver combina las cuatro capas (plan, override de tenant, override de
// usuario, contador de uso) en una sola decisión. Es stateless: todas sus
// dependencias son explícitas y puede construirse atado al pool (chequeos de
// lectura) o a una transacción (dentro del guard atómico).
type Resolver struct {
	accounts  repository.BusinessAccountRepository
	plans     repository.PlanRepository
	overrides repository.OverrideRepository
	usage     repository.UsageCounter
}

// NewResolver construye el resolver con sus puertos.
func NewResolver(
	accounts repository.BusinessAccountRepository,
	plans repository.PlanRepository,
	overrides repository.OverrideRepository,
	usage repository.UsageCounter,
) *Resolver {
	return &Resolver{accounts: accounts, plans: plans, overrides: overrides, usage: usage}
}

// Resolve decide si (cuenta, módulo, actor) puede ver/crear/editar/borrar.
//
// Orden estricto de precedencia (la primera regla terminal gana):
//  0. cuenta inexistente, suspendida o con soft delete → todo denegado.
//  1. el plan no incluye el módulo → todo denegado (fuente DENIED).
//  2. override de tenant con IsDisabled → todo denegado (fuente
//     TENANT_OVERRIDE), aunque el plan lo incluya y haya grants de usuario.
//  3. conteo de uso + límite efectivo (override si define límite, si no el
//     del plan).
//  4. fila de permisos del usuario (solo actores ordinarios): sus booleanos
//     son autoritativos, salvo que el límite fuerce CanCreate=false.
//  5. derechos por defecto del plan (fuente PLAN).
//
// Falla cerrado: ante cualquier error de store la Decision devuelta es
// AllDenied y el error se retorna aparte, para que el HTTP layer responda 503
// en lugar de confundir el fallo con un permiso.
func (r *Resolver) Resolve(ctx context.Context, accountID string, module entity.ModuleType, actor Actor) (Decision, error) {
	if accountID == "" || !module.Valid() {
		return AllDenied(SourceDenied, ReasonNoEntitlement), nil
	}

	account, err := r.accounts.GetByID(ctx, accountID)
	if err != nil {
		return AllDenied(SourceDenied, ReasonStoreError), err
	}
	if !account.Alive() {
		return AllDenied(SourceDenied, ReasonAccountInactive), nil
	}

	// Paso 1: inclusión en el plan.
	pm, err := r.plans.GetModule(ctx, account.PlanID, module)
	if err != nil {
		return AllDenied(SourceDenied, ReasonStoreError), err
	}
	if pm == nil || !pm.IsIncluded {
		return AllDenied(SourceDenied, ReasonNoEntitlement), nil
	}

	// Paso 2: apagado por tenant. Gana sobre el plan y sobre cualquier grant
	// de usuario.
	override, err := r.overrides.GetAccountOverride(ctx, accountID, module)
	if err != nil {
		return AllDenied(SourceDenied, ReasonStoreError), err
	}
	if override != nil && override.IsDisabled {
		return AllDenied(SourceTenantOverride, ReasonTenantDisabled), nil
	}

	// Paso 3: uso y límite efectivo. El límite del override (incluido 0,
	// cuota cero dura) manda sobre el del plan.
	count, err := r.usage.Count(ctx, accountID, module)
	if err != nil {
		return AllDenied(SourceDenied, ReasonStoreError), err
	}
	limit := pm.ItemLimit
	if override != nil && override.ItemLimit != nil {
		limit = override.ItemLimit
	}
	atLimit, nearLimit := limitFlags(count, limit)

	// Paso 4: permisos por usuario (solo roles ordinarios). La fila, si
	// existe, es autoritativa; el límite numérico sigue forzando
	// CanCreate=false aunque la fila diga true.
	if actor.UserID != "" && !actor.Privileged() {
		row, err := r.overrides.GetUserPermission(ctx, actor.UserID, module)
		if err != nil {
			return AllDenied(SourceDenied, ReasonStoreError), err
		}
		if row != nil {
			reason := ReasonNone
			if !row.CanView {
				reason = ReasonUserOverride
			}
			return Decision{
				HasAccess: row.CanView,
				Permissions: Capabilities{
					CanCreate:    row.CanCreate && !atLimit,
					CanEdit:      row.CanEdit,
					CanDelete:    row.CanDelete,
					CanView:      row.CanView,
					ItemLimit:    limit,
					CurrentCount: count,
					IsAtLimit:    atLimit,
					IsNearLimit:  nearLimit,
				},
				Source: SourceUserOverride,
				Reason: reason,
			}, nil
		}
	}

	// Paso 5: derechos por defecto del plan.
	return Decision{
		HasAccess: true,
		Permissions: Capabilities{
			CanCreate:    pm.CanCreate && !atLimit,
			CanEdit:      pm.CanEdit,
			CanDelete:    pm.CanDelete,
			CanView:      pm.CanView,
			ItemLimit:    limit,
			CurrentCount: count,
			IsAtLimit:    atLimit,
			IsNearLimit:  nearLimit,
		},
		Source: SourcePlan,
	}, nil
}

// limitFlags calcula at-limit y near-limit. Límite nil = ilimitado: ambos
// apagados. Con límite 0 el módulo está siempre at-limit pero no near-limit
// (no hay fracción de cero que avisar).
func limitFlags(count int, limit *int) (atLimit, nearLimit bool) {
	if limit == nil {
		return false, false
	}
	atLimit = count >= *limit
	nearLimit = *limit > 0 && float64(count) >= NearLimitFraction*float64(*limit)
	return atLimit, nearLimit
}
