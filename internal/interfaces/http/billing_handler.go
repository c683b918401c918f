package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/colhetron/separacao-api/internal/application/billing"
	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
)

// BillingHandler trata os exports de faturamento da separação ativa.
type BillingHandler struct {
	uc *billing.ExportUseCase
}

// NewBillingHandler constrói o handler de faturamento.
func NewBillingHandler(uc *billing.ExportUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// DownloadSheet godoc
// @Summary      Baixar a planilha de faturamento (xlsx) da separação ativa
// @Tags         billing
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/sheet [get]
func (h *BillingHandler) DownloadSheet(c *fiber.Ctx) error {
	data, filename, err := h.uc.GenerateSheet(GetUserID(c))
	if err != nil {
		return h.mapExportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// DownloadReportPDF godoc
// @Summary      Baixar o relatório de separação em PDF
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/report [get]
func (h *BillingHandler) DownloadReportPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.GenerateReportPDF(GetUserID(c))
	if err != nil {
		return h.mapExportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

func (h *BillingHandler) mapExportError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNoActiveSeparation:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SEPARATION", Message: "nenhuma separação ativa"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "EMPTY_SEPARATION", Message: "a separação ativa não tem itens"})
	}
	return internalError(c, err)
}
