package dto

import "time"

// AccountResponse representación pública de la BusinessAccount.
type AccountResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	PlanID    string     `json:"planId"`
	Status    string     `json:"status"`
	IsActive  bool       `json:"isActive"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ChangePlanRequest cambio de plan de una cuenta (acción administrativa).
type ChangePlanRequest struct {
	PlanName string `json:"planName"`
}

// AccountListResponse listado paginado de cuentas.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
