package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOpportunityRequest alta de oportunidad de venta.
type CreateOpportunityRequest struct {
	CompanyID      string          `json:"companyId"`
	Name           string          `json:"name"`
	Stage          string          `json:"stage"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	CloseDate      *time.Time      `json:"closeDate"`
}

// UpdateOpportunityRequest edición de oportunidad.
type UpdateOpportunityRequest struct {
	Name           string          `json:"name"`
	Stage          string          `json:"stage"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	CloseDate      *time.Time      `json:"closeDate"`
}

// OpportunityResponse representación pública de una oportunidad.
type OpportunityResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"companyId"`
	Name           string          `json:"name"`
	Stage          string          `json:"stage"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	CloseDate      *time.Time      `json:"closeDate,omitempty"`
	OwnerUserID    string          `json:"ownerUserId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OpportunityListResponse listado paginado.
type OpportunityListResponse struct {
	Items []OpportunityResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CreateActivityRequest alta de actividad comercial.
type CreateActivityRequest struct {
	Type          string     `json:"type"`
	Subject       string     `json:"subject"`
	Notes         string     `json:"notes"`
	DueDate       *time.Time `json:"dueDate"`
	CompanyID     string     `json:"companyId"`
	OpportunityID string     `json:"opportunityId"`
}

// UpdateActivityRequest edición de actividad.
type UpdateActivityRequest struct {
	Subject string     `json:"subject"`
	Notes   string     `json:"notes"`
	DueDate *time.Time `json:"dueDate"`
	Done    *bool      `json:"done"`
}

// ActivityResponse representación pública de una actividad.
type ActivityResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Subject        string     `json:"subject"`
	Notes          string     `json:"notes,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Done           bool       `json:"done"`
	CompanyID      string     `json:"companyId,omitempty"`
	OpportunityID  string     `json:"opportunityId,omitempty"`
	AssignedUserID string     `json:"assignedUserId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ActivityListResponse listado paginado.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
