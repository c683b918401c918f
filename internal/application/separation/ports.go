package separation

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/colhetron/separacao-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados à transação. Garante atomicidade na criação de
// separações e na finalização.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sepRepo repository.SeparationRepository,
		itemRepo repository.SeparationItemRepository,
		qtyRepo repository.QuantityRepository,
		mediaRepo repository.MediaRepository,
	) error) error
}

// ParsedOrderRow uma linha da planilha de pedidos: um material e suas
// quantidades por coluna de loja.
type ParsedOrderRow struct {
	Codigo      string
	Material    string
	TipoSepar   string
	Quantidades map[string]decimal.Decimal // código da loja -> quantidade
}

// OrderSheetParser porto para leitura da planilha de pedidos (xlsx).
type OrderSheetParser interface {
	Parse(r io.Reader) ([]ParsedOrderRow, error)
}
