package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// Action es la capacidad que una ruta exige sobre su módulo.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// RequirePermission devuelve un middleware Fiber que resuelve permisos de
// (cuenta, módulo, actor) y exige la capacidad de la acción. Debe usarse
// DESPUÉS de AuthMiddleware (necesita los Locals del token).
//
// Comportamiento:
//   - 401 Unauthorized → sin account_id en el contexto.
//   - 503 Service Unavailable → fallo de infraestructura al resolver. Un
//     fallo de DB jamás se responde como 403: sería indistinguible de una
//     denegación real.
//   - 403 Forbidden → denegación, con código según la razón. El choque con
//     límite numérico lleva cuerpo estructurado {error, currentCount, limit}
//     para que el cliente ofrezca el upgrade de plan.
func RequirePermission(module entity.ModuleType, action Action, resolver *permission.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID := GetAccountID(c)
		if accountID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "account_id no encontrado en el token",
			})
		}

		dec, err := resolver.Resolve(c.Context(), accountID, module, GetActor(c))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    string(permission.ReasonStoreError),
				Message: "no se pudo verificar permisos, intente más tarde",
			})
		}

		if !dec.HasAccess {
			code := string(dec.Reason)
			if code == "" {
				code = "FORBIDDEN"
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    code,
				Message: fmt.Sprintf("sin acceso al módulo %s", module),
			})
		}

		if !allowed(dec, action) {
			// Creación bloqueada por cupo: respuesta de upsell, no un 403 plano.
			if action == ActionCreate && dec.Permissions.IsAtLimit && dec.Permissions.ItemLimit != nil {
				return c.Status(fiber.StatusForbidden).JSON(dto.LimitErrorResponse{
					Error:        module.LimitCode(),
					CurrentCount: dec.Permissions.CurrentCount,
					Limit:        *dec.Permissions.ItemLimit,
					Message:      "límite del plan alcanzado, actualice su plan para continuar",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    string(permission.ReasonUserOverride),
				Message: fmt.Sprintf("sin permiso de %s en el módulo %s", action, module),
			})
		}

		return c.Next()
	}
}

// RequireAdmin exige rol owner o admin (acciones administrativas de la cuenta).
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !entity.PrivilegedRole(GetRole(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere rol owner o admin",
			})
		}
		return c.Next()
	}
}

func allowed(dec permission.Decision, action Action) bool {
	switch action {
	case ActionView:
		return dec.Permissions.CanView
	case ActionCreate:
		return dec.Permissions.CanCreate
	case ActionEdit:
		return dec.Permissions.CanEdit
	case ActionDelete:
		return dec.Permissions.CanDelete
	default:
		return false
	}
}
