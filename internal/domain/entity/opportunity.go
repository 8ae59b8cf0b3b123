package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas válidas para Opportunity.
const (
	StageLead      = "lead"
	StageQualified = "qualified"
	StageProposal  = "proposal"
	StageWon       = "won"
	StageLost      = "lost"
)

// ValidStage informa si la etapa es una de las conocidas.
func ValidStage(s string) bool {
	switch s {
	case StageLead, StageQualified, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

// Opportunity representa una oportunidad de venta (módulo CRM) ligada a una
// empresa del tenant.
type Opportunity struct {
	ID                string
	BusinessAccountID string
	CompanyID         string
	Name              string
	Stage             string // lead, qualified, proposal, won, lost
	EstimatedValue    decimal.Decimal
	CloseDate         *time.Time
	OwnerUserID       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
