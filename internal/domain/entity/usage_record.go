package entity

import "time"

// UsageRecord es el cache denormalizado del conteo vivo de un módulo en una
// cuenta. Es solo informativo (UI, dashboards): el guard atómico recalcula el
// conteo dentro de su transacción y nunca decide con este valor.
// Único por (cuenta, módulo).
type UsageRecord struct {
	ID                string
	BusinessAccountID string
	ModuleType        ModuleType
	CurrentCount      int
	LastCalculated    time.Time
}
