package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/usecase"
	"github.com/jhoicas/crm-pro/internal/domain"
)

// ActivityHandler maneja las actividades comerciales (llamadas, reuniones,
// emails, tareas).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler de actividades.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar actividad comercial
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivityRequest  true  "type, subject, opcionalmente companyId/opportunityId"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetAccountID(c), GetActor(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "subject y type válido (call|meeting|email|task) son requeridos"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso para crear actividades"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar actividades de la cuenta
// @Tags         activities
// @Produce      json
// @Param        pending  query  bool  false  "solo pendientes (done=false)"
// @Param        limit    query  int   false  "máximo por página (default 20)"
// @Param        offset   query  int   false  "desplazamiento"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), GetAccountID(c), c.QueryBool("pending"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar una actividad (incluye marcarla como hecha)
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la actividad"
// @Param        body  body  dto.UpdateActivityRequest  true  "campos a editar"
// @Success      200   {object}  dto.ActivityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [put]
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetAccountID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "actividad no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una actividad
// @Tags         activities
// @Param        id  path  string  true  "ID de la actividad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [delete]
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), GetAccountID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "actividad no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
