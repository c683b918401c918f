package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.LojaRepository = (*LojaRepo)(nil)

// LojaRepo implementação do porto LojaRepository sobre PostgreSQL.
type LojaRepo struct {
	q Querier
}

// NewLojaRepository constrói o adaptador de lojas.
func NewLojaRepository(q Querier) *LojaRepo {
	return &LojaRepo{q: q}
}

// Create persiste uma nova loja. Código duplicado devolve ErrDuplicate.
func (r *LojaRepo) Create(loja *entity.Loja) error {
	query := `
		INSERT INTO lojas (id, codigo, nome, zona, ativa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		loja.ID, loja.Codigo, loja.Nome, loja.Zona, loja.Ativa, loja.CreatedAt, loja.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert loja: %w", err)
	}
	return nil
}

// GetByCodigo obtém uma loja pelo código, ou nil.
func (r *LojaRepo) GetByCodigo(codigo string) (*entity.Loja, error) {
	query := `
		SELECT id, codigo, nome, zona, ativa, created_at, updated_at
		FROM lojas WHERE codigo = $1`
	var l entity.Loja
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(
		&l.ID, &l.Codigo, &l.Nome, &l.Zona, &l.Ativa, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select loja: %w", err)
	}
	return &l, nil
}

// List lista as lojas em ordem de código.
func (r *LojaRepo) List(limit, offset int) ([]*entity.Loja, error) {
	query := `
		SELECT id, codigo, nome, zona, ativa, created_at, updated_at
		FROM lojas ORDER BY codigo
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lojas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Loja
	for rows.Next() {
		var l entity.Loja
		if err := rows.Scan(&l.ID, &l.Codigo, &l.Nome, &l.Zona, &l.Ativa, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan loja: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// Update atualiza nome, zona e situação.
func (r *LojaRepo) Update(loja *entity.Loja) error {
	query := `
		UPDATE lojas SET nome = $2, zona = $3, ativa = $4, updated_at = now()
		WHERE codigo = $1`
	_, err := r.q.Exec(context.Background(), query, loja.Codigo, loja.Nome, loja.Zona, loja.Ativa)
	if err != nil {
		return fmt.Errorf("update loja: %w", err)
	}
	return nil
}

// Delete remove uma loja do cadastro.
func (r *LojaRepo) Delete(codigo string) error {
	query := `DELETE FROM lojas WHERE codigo = $1`
	_, err := r.q.Exec(context.Background(), query, codigo)
	if err != nil {
		return fmt.Errorf("delete loja: %w", err)
	}
	return nil
}

// UpsertBatch grava lojas em lote (chave: codigo) para importação por planilha.
func (r *LojaRepo) UpsertBatch(lojas []*entity.Loja) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO lojas (id, codigo, nome, zona, ativa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (codigo)
		DO UPDATE SET nome = EXCLUDED.nome, zona = EXCLUDED.zona, ativa = EXCLUDED.ativa, updated_at = now()`
	for _, l := range lojas {
		batch.Queue(query, l.ID, l.Codigo, l.Nome, l.Zona, l.Ativa, l.CreatedAt, l.UpdatedAt)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range lojas {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert loja: %w", err)
		}
	}
	return nil
}
