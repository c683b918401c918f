package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// SeparationItemRepository porto de persistência para SeparationItem.
type SeparationItemRepository interface {
	CreateBatch(items []*entity.SeparationItem) error
	GetByCodigo(separationID, codigo string) (*entity.SeparationItem, error)
	ListBySeparation(separationID string) ([]*entity.SeparationItem, error)
}
