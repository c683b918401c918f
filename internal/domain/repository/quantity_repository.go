package repository

import (
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuantityRepository porto de persistência para SeparationQuantity.
// Linhas com quantidade 0 não são gravadas: zerar é Delete, nunca Update com zero.
type QuantityRepository interface {
	UpsertBatch(quantities []*entity.SeparationQuantity) error
	Upsert(q *entity.SeparationQuantity) error
	ListByItem(itemID string) ([]*entity.SeparationQuantity, error)
	Update(itemID, lojaCodigo string, quantidade decimal.Decimal) error
	Delete(itemID, lojaCodigo string) error
	// SumByMaterial soma as quantidades de todas as lojas para o material (codigo)
	// dentro da separação. Alimenta o estoque_atual da análise de médias.
	SumByMaterial(separationID, codigo string) (decimal.Decimal, error)
}
