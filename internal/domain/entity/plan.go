package entity

import "time"

// Plan representa un tier de suscripción del catálogo. La relación con los
// módulos que incluye vive en PlanModule (única por plan y módulo).
type Plan struct {
	ID          string
	Name        string // gratis, estandar, profesional
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlanModule define qué ofrece un plan para un módulo: inclusión, límite de
// ítems y capacidades por defecto. ItemLimit nil significa ilimitado.
// Invariante: a lo sumo una fila por (plan, módulo).
type PlanModule struct {
	ID         string
	PlanID     string
	ModuleType ModuleType
	IsIncluded bool
	ItemLimit  *int // nil = ilimitado; nunca negativo
	CanCreate  bool
	CanEdit    bool
	CanDelete  bool
	CanView    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
