package entity

import "time"

// Estados válidos para BusinessAccount.
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
)

// BusinessAccount es el tenant: toda entidad de negocio cuelga de una cuenta
// y todo permiso se resuelve contra su plan. La suspensión es soft delete
// (deleted_at); nunca hay hard delete en flujos ordinarios.
type BusinessAccount struct {
	ID        string
	Name      string
	PlanID    string
	Status    string // active, suspended
	IsActive  bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Alive informa si la cuenta puede operar. Una cuenta nil, suspendida o con
// soft delete resuelve todo a denegado.
func (a *BusinessAccount) Alive() bool {
	return a != nil && a.IsActive && a.Status == AccountStatusActive && a.DeletedAt == nil
}
