package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.SeparationRepository = (*SeparationRepo)(nil)

// SeparationRepo implementação do porto SeparationRepository sobre PostgreSQL
// (usável com pool ou tx).
type SeparationRepo struct {
	q Querier
}

// NewSeparationRepository constrói o adaptador de separações. Passar pool ou tx (Querier).
func NewSeparationRepository(q Querier) *SeparationRepo {
	return &SeparationRepo{q: q}
}

// Create persiste uma nova separação.
func (r *SeparationRepo) Create(sep *entity.Separation) error {
	query := `
		INSERT INTO separations (id, user_id, status, file_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sep.ID, sep.UserID, sep.Status, sep.FileName, sep.CreatedAt, sep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert separation: %w", err)
	}
	return nil
}

// GetByID obtém uma separação do usuário por ID.
func (r *SeparationRepo) GetByID(userID, id string) (*entity.Separation, error) {
	query := `
		SELECT id, user_id, status, file_name, created_at, updated_at, completed_at
		FROM separations WHERE user_id = $1 AND id = $2`
	return r.scanOne(query, userID, id)
}

// GetActive devolve a separação ativa do usuário, ou nil.
// O índice único parcial em (user_id) WHERE status = 'active' garante no máximo uma.
func (r *SeparationRepo) GetActive(userID string) (*entity.Separation, error) {
	query := `
		SELECT id, user_id, status, file_name, created_at, updated_at, completed_at
		FROM separations WHERE user_id = $1 AND status = 'active'`
	return r.scanOne(query, userID)
}

// ListByUser lista as separações do usuário, mais recentes primeiro.
func (r *SeparationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Separation, error) {
	query := `
		SELECT id, user_id, status, file_name, created_at, updated_at, completed_at
		FROM separations WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list separations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Separation
	for rows.Next() {
		var s entity.Separation
		if err := rows.Scan(&s.ID, &s.UserID, &s.Status, &s.FileName,
			&s.CreatedAt, &s.UpdatedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan separation: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Complete marca a separação como concluída.
func (r *SeparationRepo) Complete(userID, id string) error {
	query := `
		UPDATE separations
		SET status = 'completed', completed_at = now(), updated_at = now()
		WHERE user_id = $1 AND id = $2 AND status = 'active'`
	tag, err := r.q.Exec(context.Background(), query, userID, id)
	if err != nil {
		return fmt.Errorf("complete separation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("complete separation: nenhuma separação ativa %s", id)
	}
	return nil
}

func (r *SeparationRepo) scanOne(query string, args ...any) (*entity.Separation, error) {
	var s entity.Separation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.UserID, &s.Status, &s.FileName, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select separation: %w", err)
	}
	return &s, nil
}
