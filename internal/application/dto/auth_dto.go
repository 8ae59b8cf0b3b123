package dto

import "time"

// SignupRequest alta de cuenta: crea la BusinessAccount y su usuario owner en
// un solo flujo.
type SignupRequest struct {
	AccountName string `json:"accountName"`
	PlanName    string `json:"planName"` // vacío = plan gratis
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
}

// SignupResponse resultado del alta.
type SignupResponse struct {
	Account AccountResponse `json:"account"`
	User    UserResponse    `json:"user"`
	Token   string          `json:"token"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterUserRequest alta de un usuario dentro de una cuenta existente
// (pasa por el guard del módulo USERS).
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin o member; el owner solo nace en signup
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID                string    `json:"id"`
	BusinessAccountID string    `json:"businessAccountId"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
