package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
)

// ActivityHandler expõe o histórico de atividades do usuário autenticado.
type ActivityHandler struct {
	logger *audit.ActivityLogger
}

// NewActivityHandler constrói o handler do histórico.
func NewActivityHandler(logger *audit.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{logger: logger}
}

// List godoc
// @Summary      Listar o histórico de atividades do usuário
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.ActivityLogResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	entries, err := h.logger.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return internalError(c, err)
	}
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityLogResponse{
			ID:        e.ID,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return c.JSON(out)
}
