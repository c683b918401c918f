package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityRepo)(nil)

// ActivityRepo implementação do porto ActivityLogRepository sobre PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository constrói o adaptador do log de atividades.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create grava uma entrada de auditoria. Details vai como jsonb.
func (r *ActivityRepo) Create(log *entity.ActivityLog) error {
	details, err := json.Marshal(log.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	query := `
		INSERT INTO activity_logs (id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.Action, details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListByUser lista as entradas do usuário, mais recentes primeiro.
func (r *ActivityRepo) ListByUser(userID string, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, details, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.ActivityLog
	for rows.Next() {
		var (
			l       entity.ActivityLog
			details []byte
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &l.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
