package domain

import (
	"errors"
	"fmt"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores de validación de la capa de overrides (escrituras rechazadas,
	// nunca upsert parcial).
	ErrModuleNotEntitled = errors.New("la cuenta no tiene acceso al módulo")
	ErrUserNotInAccount  = errors.New("el usuario no pertenece a la cuenta")
)

// LimitDeniedError indica que una creación fue rechazada por límite numérico
// del plan u override. El handler HTTP lo traduce a un 403 con cuerpo
// estructurado {error: <código>, currentCount, limit} para que el cliente
// ofrezca el upgrade de plan en lugar de un 403 plano.
type LimitDeniedError struct {
	Module       entity.ModuleType
	CurrentCount int
	Limit        int
}

// Error implementa error.
func (e *LimitDeniedError) Error() string {
	return fmt.Sprintf("límite del módulo %s alcanzado (%d/%d)", e.Module, e.CurrentCount, e.Limit)
}

// Code devuelve el código estable por módulo (ej. USER_LIMIT_REACHED).
func (e *LimitDeniedError) Code() string {
	return e.Module.LimitCode()
}

// AsLimitDenied extrae un *LimitDeniedError de la cadena de errores, si existe.
func AsLimitDenied(err error) (*LimitDeniedError, bool) {
	var lde *LimitDeniedError
	if errors.As(err, &lde) {
		return lde, true
	}
	return nil, false
}
