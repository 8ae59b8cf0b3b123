package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-pro/internal/application/admin"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/usecase"
	"github.com/jhoicas/crm-pro/internal/domain"
)

// AdminHandler acciones administrativas de la cuenta: overrides de módulos,
// permisos por usuario, plan y suspensión. Todas las rutas van detrás de
// RequireAdmin (owner o admin).
type AdminHandler struct {
	overrides *admin.OverrideUseCase
	accounts  *usecase.AccountUseCase
}

// NewAdminHandler construye el handler administrativo.
func NewAdminHandler(overrides *admin.OverrideUseCase, accounts *usecase.AccountUseCase) *AdminHandler {
	return &AdminHandler{overrides: overrides, accounts: accounts}
}

// SetAccountOverride godoc
// @Summary      Apagar un módulo o imponer un límite más estricto a la cuenta
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetAccountOverrideRequest  true  "module, isDisabled, itemLimit"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/overrides [put]
func (h *AdminHandler) SetAccountOverride(c *fiber.Ctx) error {
	var in dto.SetAccountOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ov, err := h.overrides.SetAccountOverride(c.Context(), GetAccountID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "module válido requerido; itemLimit no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"module":     string(ov.ModuleType),
		"isDisabled": ov.IsDisabled,
		"itemLimit":  ov.ItemLimit,
		"updatedAt":  ov.UpdatedAt,
	})
}

// SetUserPermission godoc
// @Summary      Otorgar o ajustar permisos de un usuario en un módulo
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetUserPermissionRequest  true  "userId, module, capacidades"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/permissions [put]
func (h *AdminHandler) SetUserPermission(c *fiber.Ctx) error {
	var in dto.SetUserPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	perm, err := h.overrides.SetUserPermission(c.Context(), GetAccountID(c), in, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrModuleNotEntitled) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MODULE_NOT_INCLUDED", Message: "la cuenta no tiene acceso al módulo, no se puede otorgar"})
		}
		if errors.Is(err, domain.ErrUserNotInAccount) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_IN_ACCOUNT", Message: "el usuario no pertenece a esta cuenta"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "module inválido o el destinatario es owner/admin"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"userId":    perm.UserID,
		"module":    string(perm.ModuleType),
		"canView":   perm.CanView,
		"canCreate": perm.CanCreate,
		"canEdit":   perm.CanEdit,
		"canDelete": perm.CanDelete,
		"grantedBy": perm.GrantedBy,
		"updatedAt": perm.UpdatedAt,
	})
}

// ResetUserPermissions godoc
// @Summary      Borrar todos los grants de un usuario (vuelve a defaults del plan)
// @Tags         admin
// @Param        userId  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/permissions/{userId} [delete]
func (h *AdminHandler) ResetUserPermissions(c *fiber.Ctx) error {
	err := h.overrides.ResetUserPermissions(c.Context(), GetAccountID(c), c.Params("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotInAccount) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_IN_ACCOUNT", Message: "el usuario no pertenece a esta cuenta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAccount godoc
// @Summary      Obtener la cuenta autenticada
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Router       /api/admin/account [get]
func (h *AdminHandler) GetAccount(c *fiber.Ctx) error {
	out, err := h.accounts.GetByID(c.Context(), GetAccountID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
	}
	return c.JSON(out)
}

// ChangePlan godoc
// @Summary      Cambiar el plan de la cuenta (efecto inmediato en permisos)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePlanRequest  true  "planName"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/account/plan [put]
func (h *AdminHandler) ChangePlan(c *fiber.Ctx) error {
	var in dto.ChangePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.accounts.ChangePlan(c.Context(), GetAccountID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "planName es requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PLAN_NOT_FOUND", Message: "el plan indicado no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeactivateAccount godoc
// @Summary      Suspender la cuenta (todas las resoluciones pasan a denegado)
// @Tags         admin
// @Success      204
// @Router       /api/admin/account [delete]
func (h *AdminHandler) DeactivateAccount(c *fiber.Ctx) error {
	if err := h.accounts.Deactivate(c.Context(), GetAccountID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReactivateAccount godoc
// @Summary      Reactivar una cuenta suspendida
// @Tags         admin
// @Success      204
// @Router       /api/admin/account/reactivate [post]
func (h *AdminHandler) ReactivateAccount(c *fiber.Ctx) error {
	if err := h.accounts.Reactivate(c.Context(), GetAccountID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
