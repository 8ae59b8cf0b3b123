package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/application/usecase"
)

// UsageHandler expone el resumen de uso/permisos por módulo para la UI.
type UsageHandler struct {
	uc *usecase.UsageUseCase
}

// NewUsageHandler construye el handler de uso.
func NewUsageHandler(uc *usecase.UsageUseCase) *UsageHandler {
	return &UsageHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de uso y permisos por módulo (informativo)
// @Tags         usage
// @Produce      json
// @Success      200  {object}  dto.UsageSummaryResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/usage [get]
func (h *UsageHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetAccountID(c), GetActor(c))
	if err != nil {
		// El resumen no inventa un "denegado" ante fallo de store.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    string(permission.ReasonStoreError),
			Message: "no se pudo calcular el uso, intente más tarde",
		})
	}
	return c.JSON(out)
}
