package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// MediaRepository porto de persistência para MediaAnalysisItem.
// Itens são sempre escopados por (userID, separationID).
type MediaRepository interface {
	CreateBatch(items []*entity.MediaAnalysisItem) error
	List(userID, separationID string) ([]*entity.MediaAnalysisItem, error)
	GetByID(userID, id string) (*entity.MediaAnalysisItem, error)
	GetByCodigo(userID, separationID, codigo string) (*entity.MediaAnalysisItem, error)
	Update(item *entity.MediaAnalysisItem) error
	DeleteAll(userID, separationID string) error
}
