package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// LojaRepository porto de persistência para Loja.
type LojaRepository interface {
	Create(loja *entity.Loja) error
	GetByCodigo(codigo string) (*entity.Loja, error)
	List(limit, offset int) ([]*entity.Loja, error)
	Update(loja *entity.Loja) error
	Delete(codigo string) error
	// UpsertBatch grava em lote as lojas de uma planilha de importação (chave: codigo).
	UpsertBatch(lojas []*entity.Loja) error
}
