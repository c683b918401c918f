package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.QuantityRepository = (*QuantityRepo)(nil)

// QuantityRepo implementação do porto QuantityRepository sobre PostgreSQL
// (usável com pool ou tx). Linhas com quantidade 0 nunca são gravadas.
type QuantityRepo struct {
	q Querier
}

// NewQuantityRepository constrói o adaptador de quantidades por loja.
func NewQuantityRepository(q Querier) *QuantityRepo {
	return &QuantityRepo{q: q}
}

// UpsertBatch grava quantidades em lote (chave: item + loja).
func (r *QuantityRepo) UpsertBatch(quantities []*entity.SeparationQuantity) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO separation_quantities (item_id, loja_codigo, quantidade, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, loja_codigo)
		DO UPDATE SET quantidade = EXCLUDED.quantidade, updated_at = now()`
	for _, q := range quantities {
		batch.Queue(query, q.ItemID, q.LojaCodigo, q.Quantidade)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range quantities {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert quantity: %w", err)
		}
	}
	return nil
}

// Upsert insere ou atualiza a quantidade de uma loja em um item.
func (r *QuantityRepo) Upsert(q *entity.SeparationQuantity) error {
	query := `
		INSERT INTO separation_quantities (item_id, loja_codigo, quantidade, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, loja_codigo)
		DO UPDATE SET quantidade = EXCLUDED.quantidade, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, q.ItemID, q.LojaCodigo, q.Quantidade)
	if err != nil {
		return fmt.Errorf("upsert quantity: %w", err)
	}
	return nil
}

// ListByItem lista as quantidades por loja de um item.
func (r *QuantityRepo) ListByItem(itemID string) ([]*entity.SeparationQuantity, error) {
	query := `
		SELECT item_id, loja_codigo, quantidade, updated_at
		FROM separation_quantities WHERE item_id = $1
		ORDER BY loja_codigo`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list quantities: %w", err)
	}
	defer rows.Close()

	var out []*entity.SeparationQuantity
	for rows.Next() {
		var q entity.SeparationQuantity
		if err := rows.Scan(&q.ItemID, &q.LojaCodigo, &q.Quantidade, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quantity: %w", err)
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}

// Update grava a nova quantidade de uma loja.
func (r *QuantityRepo) Update(itemID, lojaCodigo string, quantidade decimal.Decimal) error {
	query := `
		UPDATE separation_quantities SET quantidade = $3, updated_at = now()
		WHERE item_id = $1 AND loja_codigo = $2`
	tag, err := r.q.Exec(context.Background(), query, itemID, lojaCodigo, quantidade)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update quantity: loja %s sem alocação", lojaCodigo)
	}
	return nil
}

// Delete remove a linha de uma loja (quantidade zerada).
func (r *QuantityRepo) Delete(itemID, lojaCodigo string) error {
	query := `DELETE FROM separation_quantities WHERE item_id = $1 AND loja_codigo = $2`
	_, err := r.q.Exec(context.Background(), query, itemID, lojaCodigo)
	if err != nil {
		return fmt.Errorf("delete quantity: %w", err)
	}
	return nil
}

// SumByMaterial soma as quantidades de todas as lojas para o material dentro da separação.
func (r *QuantityRepo) SumByMaterial(separationID, codigo string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(sq.quantidade), 0)
		FROM separation_quantities sq
		JOIN separation_items si ON si.id = sq.item_id
		WHERE si.separation_id = $1 AND si.codigo = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, separationID, codigo).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("sum quantities: %w", err)
	}
	return sum, nil
}
