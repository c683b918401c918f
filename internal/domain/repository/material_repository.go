package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// MaterialRepository porto de persistência para Material.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByCodigo(codigo string) (*entity.Material, error)
	// FindByDescricaoNormalizada busca pelo texto já normalizado (sem acentos, maiúsculas).
	FindByDescricaoNormalizada(descricao string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	Update(material *entity.Material) error
	UpsertBatch(materiais []*entity.Material) error
}
