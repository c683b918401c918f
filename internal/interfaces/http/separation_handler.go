package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appsep "github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
	domsep "github.com/colhetron/separacao-api/internal/domain/separation"
)

// SeparationHandler trata o ciclo de vida da separação: upload, consulta,
// edição de quantidades, corte, reforço e finalização.
type SeparationHandler struct {
	uploadUC *appsep.UploadUseCase
	sepUC    *appsep.UseCase
	cutUC    *appsep.CutUseCase
	reinfUC  *appsep.ReinforcementUseCase
}

// NewSeparationHandler constrói o handler de separações.
func NewSeparationHandler(
	uploadUC *appsep.UploadUseCase,
	sepUC *appsep.UseCase,
	cutUC *appsep.CutUseCase,
	reinfUC *appsep.ReinforcementUseCase,
) *SeparationHandler {
	return &SeparationHandler{uploadUC: uploadUC, sepUC: sepUC, cutUC: cutUC, reinfUC: reinfUC}
}

// Upload godoc
// @Summary      Subir planilha de pedidos e abrir separação
// @Tags         separations
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilha xlsx de pedidos"
// @Success      201   {object}  dto.SeparationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/separations/upload [post]
func (h *SeparationHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file (multipart) é obrigatório"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível abrir o arquivo"})
	}
	defer f.Close()

	out, err := h.uploadUC.Upload(c.Context(), GetUserID(c), fh.Filename, f)
	if err != nil {
		if err == domain.ErrSeparationActive {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SEPARATION_ACTIVE", Message: "já existe uma separação ativa; finalize-a antes de subir outra"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SHEET", Message: "planilha de pedidos inválida ou vazia"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reinforcement godoc
// @Summary      Subir planilha de reforço sobre a separação ativa
// @Tags         separations
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilha xlsx de reforço"
// @Success      204   "quantidades somadas"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/separations/reinforcement [post]
func (h *SeparationHandler) Reinforcement(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file (multipart) é obrigatório"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível abrir o arquivo"})
	}
	defer f.Close()

	if err := h.reinfUC.Apply(c.Context(), GetUserID(c), fh.Filename, f); err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SHEET", Message: "planilha de reforço inválida ou vazia"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetActive godoc
// @Summary      Consultar a separação ativa
// @Tags         separations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SeparationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/separations/active [get]
func (h *SeparationHandler) GetActive(c *fiber.Ctx) error {
	out, err := h.sepUC.GetActive(GetUserID(c))
	if err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar uma separação do histórico por ID
// @Tags         separations
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da separação"
// @Success      200  {object}  dto.SeparationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/separations/{id} [get]
func (h *SeparationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.sepUC.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "separação não encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar separações do usuário
// @Tags         separations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.SeparationResponse
// @Router       /api/separations [get]
func (h *SeparationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	out, err := h.sepUC.List(GetUserID(c), page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar itens da separação ativa com as quantidades por loja
// @Tags         separations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SeparationItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/separations/active/items [get]
func (h *SeparationHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.sepUC.ListItems(GetUserID(c))
	if err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Editar a quantidade de uma alocação (item, loja)
// @Tags         separations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateQuantityRequest  true  "item_id, loja_codigo, quantidade"
// @Success      204   "quantidade atualizada (zero remove a linha)"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/separations/active/quantities [put]
func (h *SeparationHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ItemID == "" || in.LojaCodigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id e loja_codigo são obrigatórios"})
	}
	if err := h.sepUC.UpdateQuantity(GetUserID(c), in); err != nil {
		switch err {
		case domain.ErrNoActiveSeparation:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item não pertence à separação ativa"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantidade não pode ser negativa"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cut godoc
// @Summary      Cortar quantidades de um material da separação ativa
// @Tags         separations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CutRequest  true  "material_codigo, cut_type, stores/partial_cuts"
// @Success      200   {object}  dto.CutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/separations/active/cut [post]
func (h *SeparationHandler) Cut(c *fiber.Ctx) error {
	var in dto.CutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.MaterialCodigo == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_codigo e cut_type são obrigatórios"})
	}
	out, err := h.cutUC.Cut(GetUserID(c), in)
	if err != nil {
		var invalidCut *domsep.InvalidCutError
		if errors.As(err, &invalidCut) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code: "INVALID_CUT",
				Message: fmt.Sprintf("loja %s: corte de %s excede a quantidade atual %s",
					invalidCut.LojaCodigo, invalidCut.Solicitado, invalidCut.Atual),
			})
		}
		switch {
		case errors.Is(err, domain.ErrNoActiveSeparation):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material não encontrado na separação ativa"})
		case errors.Is(err, domain.ErrNothingToUpdate):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOTHING_TO_UPDATE", Message: "o corte não afeta nenhuma loja"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pedido de corte inválido"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar a separação ativa
// @Tags         separations
// @Security     Bearer
// @Produce      json
// @Success      204  "separação concluída; análise de médias limpa"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/separations/active/finalize [post]
func (h *SeparationHandler) Finalize(c *fiber.Ctx) error {
	if err := h.sepUC.Finalize(c.Context(), GetUserID(c)); err != nil {
		if err == domain.ErrNoActiveSeparation {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
