package entity

import "time"

// Company representa una empresa/contacto CRM dentro de una BusinessAccount
// (no confundir con el tenant: la cuenta es BusinessAccount, esto es un
// registro comercial suyo).
type Company struct {
	ID                string
	BusinessAccountID string
	Name              string
	NameNormalized    string // nombre sin tildes y en minúsculas, para búsqueda
	NIT               string // NIT colombiano (con o sin dígito de verificación)
	ContactName       string
	Email             string
	Phone             string
	Address           string
	City              string
	Status            string     // active, inactive
	DeletedAt         *time.Time // soft delete; las empresas borradas no cuentan para el límite
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
