package http

import (
	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/colhetron/separacao-api/internal/application/dto"
)

// internalError registra o erro no log e devolve 500 com mensagem fixa.
// Detalhes de banco/infra nunca saem no corpo da resposta.
func internalError(c *fiber.Ctx, err error) error {
	zlog.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("erro interno tratando requisição")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "erro interno do servidor",
	})
}
