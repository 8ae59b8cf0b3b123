package entity

import "time"

// Tipos válidos para Activity.
const (
	ActivityCall    = "call"
	ActivityMeeting = "meeting"
	ActivityEmail   = "email"
	ActivityTask    = "task"
)

// ValidActivityType informa si el tipo de actividad es conocido.
func ValidActivityType(s string) bool {
	switch s {
	case ActivityCall, ActivityMeeting, ActivityEmail, ActivityTask:
		return true
	}
	return false
}

// Activity representa una actividad comercial (llamada, reunión, email,
// tarea) opcionalmente ligada a una empresa u oportunidad del tenant.
type Activity struct {
	ID                string
	BusinessAccountID string
	Type              string // call, meeting, email, task
	Subject           string
	Notes             string
	DueDate           *time.Time
	Done              bool
	CompanyID         string // opcional
	OpportunityID     string // opcional
	AssignedUserID    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
