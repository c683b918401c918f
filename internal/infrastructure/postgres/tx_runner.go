package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ separation.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	sepRepo repository.SeparationRepository,
	itemRepo repository.SeparationItemRepository,
	qtyRepo repository.QuantityRepository,
	mediaRepo repository.MediaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sepRepo := NewSeparationRepository(tx)
	itemRepo := NewSeparationItemRepository(tx)
	qtyRepo := NewQuantityRepository(tx)
	mediaRepo := NewMediaRepository(tx)

	if err := fn(sepRepo, itemRepo, qtyRepo, mediaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
