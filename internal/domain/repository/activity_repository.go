package repository

import "github.com/colhetron/separacao-api/internal/domain/entity"

// ActivityLogRepository porto de persistência para o log de atividades.
type ActivityLogRepository interface {
	Create(log *entity.ActivityLog) error
	ListByUser(userID string, limit, offset int) ([]*entity.ActivityLog, error)
}
