package dto

import "time"

// CreateCompanyRequest alta de empresa/contacto CRM.
type CreateCompanyRequest struct {
	Name        string `json:"name"`
	NIT         string `json:"nit"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

// UpdateCompanyRequest edición de empresa.
type UpdateCompanyRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Status      string `json:"status"`
}

// CompanyResponse representación pública de una empresa CRM.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NIT         string    `json:"nit"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanyListResponse listado paginado.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
