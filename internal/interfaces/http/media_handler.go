package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/application/media"
	"github.com/colhetron/separacao-api/internal/domain"
)

// MediaHandler trata a análise de médias da separação ativa.
type MediaHandler struct {
	uc *media.UseCase
}

// NewMediaHandler constrói o handler de análise de médias.
func NewMediaHandler(uc *media.UseCase) *MediaHandler {
	return &MediaHandler{uc: uc}
}

// List godoc
// @Summary      Listar itens da análise de médias (status recalculado)
// @Tags         media
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MediaItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/media [get]
func (h *MediaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c))
	if err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Incluir itens na análise de médias (paste de planilha)
// @Tags         media
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddMediaItemsRequest  true  "itens colados"
// @Success      201   {array}  dto.MediaItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/media [post]
func (h *MediaHandler) Add(c *fiber.Ctx) error {
	var in dto.AddMediaItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items não pode ser vazio"})
	}
	out, err := h.uc.Add(GetUserID(c), in)
	if err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item com quantidades negativas"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar quantidades de um item; o status é recalculado
// @Tags         media
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.UpdateMediaItemRequest  true  "campos a alterar"
// @Success      200   {object}  dto.MediaItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/media/{id} [put]
func (h *MediaHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateMediaItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), id, in)
	if err != nil {
		return h.mapItemError(c, err)
	}
	return c.JSON(out)
}

// ForceOK godoc
// @Summary      Forçar o status de um item para OK, com motivo
// @Tags         media
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.ForceStatusRequest  true  "reason"
// @Success      200   {object}  dto.MediaItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/media/{id}/force-ok [post]
func (h *MediaHandler) ForceOK(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ForceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason é obrigatório"})
	}
	out, err := h.uc.ForceOK(GetUserID(c), id, in)
	if err != nil {
		if err == domain.ErrStatusAlreadyOK {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_OK", Message: "o item já está com status OK"})
		}
		return h.mapItemError(c, err)
	}
	return c.JSON(out)
}

// SetCustomMedia godoc
// @Summary      Substituir a média de sistema por um valor informado
// @Tags         media
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.CustomMediaRequest  true  "media_sistema"
// @Success      200   {object}  dto.MediaItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/media/{id}/custom-media [post]
func (h *MediaHandler) SetCustomMedia(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CustomMediaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.SetCustomMedia(GetUserID(c), id, in)
	if err != nil {
		return h.mapItemError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Limpar todos os itens da análise de médias
// @Tags         media
// @Security     Bearer
// @Produce      json
// @Success      204  "análise limpa"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/media [delete]
func (h *MediaHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(GetUserID(c)); err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MediaHandler) mapItemError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNoActiveSeparation:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item não encontrado na análise"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantidades não podem ser negativas"})
	}
	return internalError(c, err)
}
