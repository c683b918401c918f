package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colhetron/separacao-api/internal/application/cadastro"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
)

// CadastroHandler trata o cadastro de lojas e materiais.
type CadastroHandler struct {
	uc *cadastro.UseCase
}

// NewCadastroHandler constrói o handler de cadastros.
func NewCadastroHandler(uc *cadastro.UseCase) *CadastroHandler {
	return &CadastroHandler{uc: uc}
}

// CreateLoja godoc
// @Summary      Criar loja
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLojaRequest  true  "codigo, nome, zona"
// @Success      201   {object}  dto.LojaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lojas [post]
func (h *CadastroHandler) CreateLoja(c *fiber.Ctx) error {
	var in dto.CreateLojaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Codigo == "" || in.Nome == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo e nome são obrigatórios"})
	}
	out, err := h.uc.CreateLoja(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "já existe loja com esse código"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLojas godoc
// @Summary      Listar lojas
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.LojaResponse
// @Router       /api/lojas [get]
func (h *CadastroHandler) ListLojas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListLojas(page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetLoja godoc
// @Summary      Obter loja pelo código
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "código da loja"
// @Success      200     {object}  dto.LojaResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/lojas/{codigo} [get]
func (h *CadastroHandler) GetLoja(c *fiber.Ctx) error {
	out, err := h.uc.GetLoja(c.Params("codigo"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "loja não encontrada"})
	}
	return c.JSON(out)
}

// DeleteLoja godoc
// @Summary      Remover loja (apenas admin)
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "código da loja"
// @Success      204     "loja removida"
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/lojas/{codigo} [delete]
func (h *CadastroHandler) DeleteLoja(c *fiber.Ctx) error {
	if err := h.uc.DeleteLoja(c.Params("codigo")); err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportLojas godoc
// @Summary      Importar lojas por planilha xlsx
// @Tags         cadastros
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilha com CODIGO, NOME, ZONA"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lojas/import [post]
func (h *CadastroHandler) ImportLojas(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file (multipart) é obrigatório"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível abrir o arquivo"})
	}
	defer f.Close()

	out, err := h.uc.ImportLojas(GetUserID(c), f)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SHEET", Message: "planilha de lojas inválida"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// CreateMaterial godoc
// @Summary      Criar material
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "codigo, descricao"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materiais [post]
func (h *CadastroHandler) CreateMaterial(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Codigo == "" || in.Descricao == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo e descricao são obrigatórios"})
	}
	out, err := h.uc.CreateMaterial(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "já existe material com esse código"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMateriais godoc
// @Summary      Listar materiais
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.MaterialResponse
// @Router       /api/materiais [get]
func (h *CadastroHandler) ListMateriais(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListMateriais(page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetMaterial godoc
// @Summary      Obter material pelo código
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "código do material"
// @Success      200     {object}  dto.MaterialResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/materiais/{codigo} [get]
func (h *CadastroHandler) GetMaterial(c *fiber.Ctx) error {
	out, err := h.uc.GetMaterial(c.Params("codigo"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material não encontrado"})
	}
	return c.JSON(out)
}

// ImportMateriais godoc
// @Summary      Importar materiais por planilha xlsx
// @Tags         cadastros
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilha com CODIGO, DESCRICAO, CATEGORIA, UNIDADE"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materiais/import [post]
func (h *CadastroHandler) ImportMateriais(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file (multipart) é obrigatório"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "não foi possível abrir o arquivo"})
	}
	defer f.Close()

	out, err := h.uc.ImportMateriais(GetUserID(c), f)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SHEET", Message: "planilha de materiais inválida"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
