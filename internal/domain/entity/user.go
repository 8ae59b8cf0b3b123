package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// PrivilegedRole informa si el rol resuelve siempre con los derechos plenos
// del plan (omite la capa de permisos por usuario). Solo los roles ordinarios
// (member) llevan filas en user_module_permissions.
func PrivilegedRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}

// User representa un usuario del sistema (pertenece a una BusinessAccount).
type User struct {
	ID                string
	BusinessAccountID string
	Email             string
	PasswordHash      string // bcrypt hash, nunca plano en dominio después de persistir
	Name              string
	Role              string // owner, admin, member
	Status            string // active, inactive, suspended
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
