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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementação do porto MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador de materiais.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, codigo, descricao, descricao_normalizada, categoria, unidade_medida, ativo, created_at, updated_at`

// Create persiste um novo material. Código duplicado devolve ErrDuplicate.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materiais (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Codigo, m.Descricao, m.DescricaoNormalizada, m.Categoria,
		m.UnidadeMedida, m.Ativo, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByCodigo obtém um material pelo código, ou nil.
func (r *MaterialRepo) GetByCodigo(codigo string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materiais WHERE codigo = $1`
	return r.scanOne(query, codigo)
}

// FindByDescricaoNormalizada busca pelo texto normalizado (sem acentos, maiúsculas).
func (r *MaterialRepo) FindByDescricaoNormalizada(descricao string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materiais WHERE descricao_normalizada = $1`
	return r.scanOne(query, descricao)
}

// List lista os materiais em ordem de descrição.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + ` FROM materiais
		ORDER BY descricao
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materiais: %w", err)
	}
	defer rows.Close()

	var out []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Codigo, &m.Descricao, &m.DescricaoNormalizada,
			&m.Categoria, &m.UnidadeMedida, &m.Ativo, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Update atualiza descrição, categoria, unidade e situação.
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materiais SET descricao = $2, descricao_normalizada = $3,
			categoria = $4, unidade_medida = $5, ativo = $6, updated_at = now()
		WHERE codigo = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.Codigo, m.Descricao, m.DescricaoNormalizada, m.Categoria, m.UnidadeMedida, m.Ativo,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpsertBatch grava materiais em lote (chave: codigo) para importação por planilha.
func (r *MaterialRepo) UpsertBatch(materiais []*entity.Material) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO materiais (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (codigo)
		DO UPDATE SET descricao = EXCLUDED.descricao,
			descricao_normalizada = EXCLUDED.descricao_normalizada,
			categoria = EXCLUDED.categoria,
			unidade_medida = EXCLUDED.unidade_medida,
			ativo = EXCLUDED.ativo,
			updated_at = now()`
	for _, m := range materiais {
		batch.Queue(query, m.ID, m.Codigo, m.Descricao, m.DescricaoNormalizada,
			m.Categoria, m.UnidadeMedida, m.Ativo, m.CreatedAt, m.UpdatedAt)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range materiais {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert material: %w", err)
		}
	}
	return nil
}

func (r *MaterialRepo) scanOne(query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Codigo, &m.Descricao, &m.DescricaoNormalizada,
		&m.Categoria, &m.UnidadeMedida, &m.Ativo, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select material: %w", err)
	}
	return &m, nil
}
