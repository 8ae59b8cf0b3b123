package entity

import "time"

// BusinessAccountModuleOverride es la excepción por tenant: puede apagar un
// módulo (IsDisabled gana sobre el plan) o imponer un límite más estricto.
// ItemLimit = 0 es cuota cero dura, distinto de IsDisabled: con cuota cero el
// módulo sigue visible pero no admite creaciones. Única por (cuenta, módulo);
// la ausencia de fila significa "sin excepción", no "deshabilitado".
type BusinessAccountModuleOverride struct {
	ID                string
	BusinessAccountID string
	ModuleType        ModuleType
	IsDisabled        bool
	ItemLimit         *int // nil = sin límite propio, rige el del plan
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserModulePermission es la capa por usuario: si la fila existe, sus
// booleanos son autoritativos para ese usuario en ese módulo (no un AND con
// el plan), salvo que el límite numérico fuerce CanCreate=false. Solo los
// roles ordinarios llevan filas; owner/admin nunca pasan por esta capa.
// Única por (usuario, módulo).
type UserModulePermission struct {
	ID                string
	BusinessAccountID string
	UserID            string
	ModuleType        ModuleType
	CanView           bool
	CanCreate         bool
	CanEdit           bool
	CanDelete         bool
	GrantedBy         string // user ID del admin que otorgó
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
