package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.RecoveryCodeRepository = (*RecoveryCodeRepo)(nil)

// RecoveryCodeRepo implementação do porto RecoveryCodeRepository sobre PostgreSQL.
type RecoveryCodeRepo struct {
	q Querier
}

// NewRecoveryCodeRepository constrói o adaptador de códigos de recuperação.
func NewRecoveryCodeRepository(q Querier) *RecoveryCodeRepo {
	return &RecoveryCodeRepo{q: q}
}

// Create persiste um código recém-gerado.
func (r *RecoveryCodeRepo) Create(code *entity.RecoveryCode) error {
	query := `
		INSERT INTO recovery_codes (id, user_id, code, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		code.ID, code.UserID, code.Code, code.ExpiresAt, code.Used, code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recovery code: %w", err)
	}
	return nil
}

// FindValid devolve o código não usado e dentro do prazo, ou nil.
func (r *RecoveryCodeRepo) FindValid(userID, code string) (*entity.RecoveryCode, error) {
	query := `
		SELECT id, user_id, code, expires_at, used, created_at
		FROM recovery_codes
		WHERE user_id = $1 AND code = $2 AND NOT used AND expires_at > now()
		ORDER BY created_at DESC
		LIMIT 1`
	var rc entity.RecoveryCode
	err := r.q.QueryRow(context.Background(), query, userID, code).Scan(
		&rc.ID, &rc.UserID, &rc.Code, &rc.ExpiresAt, &rc.Used, &rc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select recovery code: %w", err)
	}
	return &rc, nil
}

// MarkUsed invalida o código após o uso.
func (r *RecoveryCodeRepo) MarkUsed(id string) error {
	query := `UPDATE recovery_codes SET used = true WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark recovery code used: %w", err)
	}
	return nil
}
