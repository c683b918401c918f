package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.SeparationItemRepository = (*SeparationItemRepo)(nil)

// SeparationItemRepo implementação do porto SeparationItemRepository sobre PostgreSQL.
type SeparationItemRepo struct {
	q Querier
}

// NewSeparationItemRepository constrói o adaptador de itens de separação.
func NewSeparationItemRepository(q Querier) *SeparationItemRepo {
	return &SeparationItemRepo{q: q}
}

// CreateBatch insere itens em lote.
func (r *SeparationItemRepo) CreateBatch(items []*entity.SeparationItem) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO separation_items (id, separation_id, codigo, material, tipo_separacao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range items {
		batch.Queue(query, item.ID, item.SeparationID, item.Codigo, item.Material, item.TipoSepar, item.CreatedAt)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert separation item: %w", err)
		}
	}
	return nil
}

// GetByCodigo obtém o item da separação que casa com o código do material, ou nil.
func (r *SeparationItemRepo) GetByCodigo(separationID, codigo string) (*entity.SeparationItem, error) {
	query := `
		SELECT id, separation_id, codigo, material, tipo_separacao, created_at
		FROM separation_items WHERE separation_id = $1 AND codigo = $2`
	var it entity.SeparationItem
	err := r.q.QueryRow(context.Background(), query, separationID, codigo).Scan(
		&it.ID, &it.SeparationID, &it.Codigo, &it.Material, &it.TipoSepar, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select separation item: %w", err)
	}
	return &it, nil
}

// ListBySeparation lista os itens da separação, em ordem de material.
func (r *SeparationItemRepo) ListBySeparation(separationID string) ([]*entity.SeparationItem, error) {
	query := `
		SELECT id, separation_id, codigo, material, tipo_separacao, created_at
		FROM separation_items WHERE separation_id = $1
		ORDER BY material`
	rows, err := r.q.Query(context.Background(), query, separationID)
	if err != nil {
		return nil, fmt.Errorf("list separation items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SeparationItem
	for rows.Next() {
		var it entity.SeparationItem
		if err := rows.Scan(&it.ID, &it.SeparationID, &it.Codigo, &it.Material, &it.TipoSepar, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan separation item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
