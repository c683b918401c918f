package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// SeparationRepository porto de persistência para Separation.
// Toda leitura/escrita recebe o userID dono: o isolamento multi-usuário
// é contrato do repositório, não filtro ad hoc por call site.
type SeparationRepository interface {
	Create(sep *entity.Separation) error
	GetByID(userID, id string) (*entity.Separation, error)
	// GetActive devolve a separação ativa do usuário, ou nil se não houver.
	// Invariante: no máximo uma separação "active" por usuário.
	GetActive(userID string) (*entity.Separation, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Separation, error)
	// Complete marca a separação como "completed".
	Complete(userID, id string) error
}
