package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/usecase"
	"github.com/jhoicas/crm-pro/internal/domain"
)

// OpportunityHandler maneja el pipeline de ventas (módulo CRM).
type OpportunityHandler struct {
	uc *usecase.OpportunityUseCase
}

// NewOpportunityHandler construye el handler de oportunidades.
func NewOpportunityHandler(uc *usecase.OpportunityUseCase) *OpportunityHandler {
	return &OpportunityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oportunidad de venta
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOpportunityRequest  true  "companyId, name, stage, estimatedValue"
// @Success      201   {object}  dto.OpportunityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/opportunities [post]
func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetAccountID(c), GetActor(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId, name y stage válido son requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "la empresa no existe en esta cuenta"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso para crear oportunidades"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar oportunidades, opcionalmente por etapa
// @Tags         opportunities
// @Produce      json
// @Param        stage   query  string  false  "lead|qualified|proposal|won|lost"
// @Param        limit   query  int     false  "máximo por página (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.OpportunityResponse
// @Router       /api/opportunities [get]
func (h *OpportunityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), GetAccountID(c), c.Query("stage"), page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una oportunidad por ID
// @Tags         opportunities
// @Produce      json
// @Param        id  path  string  true  "ID de la oportunidad"
// @Success      200  {object}  dto.OpportunityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetAccountID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "oportunidad no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar una oportunidad (etapa, valor, fecha de cierre)
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la oportunidad"
// @Param        body  body  dto.UpdateOpportunityRequest  true  "campos a editar"
// @Success      200   {object}  dto.OpportunityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetAccountID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "oportunidad no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage o estimatedValue inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una oportunidad
// @Tags         opportunities
// @Param        id  path  string  true  "ID de la oportunidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), GetAccountID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "oportunidad no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
