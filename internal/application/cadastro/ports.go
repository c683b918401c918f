package cadastro

import (
	"io"

	"github.com/colhetron/separacao-api/internal/domain/entity"
)

// SheetParser porto para leitura das planilhas de cadastro (lojas e materiais).
type SheetParser interface {
	ParseLojas(r io.Reader) ([]*entity.Loja, error)
	ParseMateriais(r io.Reader) ([]*entity.Material, error)
}
