package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

var _ repository.MediaRepository = (*MediaRepo)(nil)

// MediaRepo implementação do porto MediaRepository sobre PostgreSQL.
// Metadata é serializado como jsonb.
type MediaRepo struct {
	q Querier
}

// NewMediaRepository constrói o adaptador da análise de médias.
func NewMediaRepository(q Querier) *MediaRepo {
	return &MediaRepo{q: q}
}

const mediaColumns = `
	id, user_id, separation_id, codigo, material,
	quantidade_kg, quantidade_caixas, media_sistema,
	estoque_atual, diferenca_caixas, media_real, status,
	forced_status, forced_reason, forced_by, forced_at,
	metadata, created_at, updated_at`

// CreateBatch insere itens da análise em lote.
func (r *MediaRepo) CreateBatch(items []*entity.MediaAnalysisItem) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO media_analysis_items (` + mediaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	for _, item := range items {
		meta, err := marshalMetadata(item.Metadata)
		if err != nil {
			return err
		}
		batch.Queue(query,
			item.ID, item.UserID, item.SeparationID, item.Codigo, item.Material,
			item.QuantidadeKg, item.QuantidadeCaixas, item.MediaSistema,
			item.EstoqueAtual, item.DiferencaCaixas, item.MediaReal, item.Status,
			item.ForcedStatus, item.ForcedReason, item.ForcedBy, item.ForcedAt,
			meta, item.CreatedAt, item.UpdatedAt,
		)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert media item: %w", err)
		}
	}
	return nil
}

// List lista os itens da análise do usuário na separação, em ordem de material.
func (r *MediaRepo) List(userID, separationID string) ([]*entity.MediaAnalysisItem, error) {
	query := `
		SELECT ` + mediaColumns + `
		FROM media_analysis_items
		WHERE user_id = $1 AND separation_id = $2
		ORDER BY material`
	rows, err := r.q.Query(context.Background(), query, userID, separationID)
	if err != nil {
		return nil, fmt.Errorf("list media items: %w", err)
	}
	defer rows.Close()

	var out []*entity.MediaAnalysisItem
	for rows.Next() {
		item, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetByID obtém um item do usuário por ID, ou nil.
func (r *MediaRepo) GetByID(userID, id string) (*entity.MediaAnalysisItem, error) {
	query := `
		SELECT ` + mediaColumns + `
		FROM media_analysis_items WHERE user_id = $1 AND id = $2`
	return r.scanOne(query, userID, id)
}

// GetByCodigo obtém o item do material na separação, ou nil.
func (r *MediaRepo) GetByCodigo(userID, separationID, codigo string) (*entity.MediaAnalysisItem, error) {
	query := `
		SELECT ` + mediaColumns + `
		FROM media_analysis_items
		WHERE user_id = $1 AND separation_id = $2 AND codigo = $3`
	return r.scanOne(query, userID, separationID, codigo)
}

// Update grava quantidades, campos derivados, status e metadados de um item.
func (r *MediaRepo) Update(item *entity.MediaAnalysisItem) error {
	meta, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	query := `
		UPDATE media_analysis_items SET
			quantidade_kg = $3, quantidade_caixas = $4, media_sistema = $5,
			estoque_atual = $6, diferenca_caixas = $7, media_real = $8, status = $9,
			forced_status = $10, forced_reason = $11, forced_by = $12, forced_at = $13,
			metadata = $14, updated_at = $15
		WHERE user_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		item.UserID, item.ID,
		item.QuantidadeKg, item.QuantidadeCaixas, item.MediaSistema,
		item.EstoqueAtual, item.DiferencaCaixas, item.MediaReal, item.Status,
		item.ForcedStatus, item.ForcedReason, item.ForcedBy, item.ForcedAt,
		meta, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update media item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update media item: item %s não encontrado", item.ID)
	}
	return nil
}

// DeleteAll remove todos os itens do usuário na separação.
func (r *MediaRepo) DeleteAll(userID, separationID string) error {
	query := `DELETE FROM media_analysis_items WHERE user_id = $1 AND separation_id = $2`
	_, err := r.q.Exec(context.Background(), query, userID, separationID)
	if err != nil {
		return fmt.Errorf("delete media items: %w", err)
	}
	return nil
}

func (r *MediaRepo) scanOne(query string, args ...any) (*entity.MediaAnalysisItem, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	item, err := scanMediaItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// scanMediaItem lê uma linha (pgx.Row ou pgx.Rows) em um MediaAnalysisItem.
func scanMediaItem(row pgx.Row) (*entity.MediaAnalysisItem, error) {
	var item entity.MediaAnalysisItem
	var meta []byte
	err := row.Scan(
		&item.ID, &item.UserID, &item.SeparationID, &item.Codigo, &item.Material,
		&item.QuantidadeKg, &item.QuantidadeCaixas, &item.MediaSistema,
		&item.EstoqueAtual, &item.DiferencaCaixas, &item.MediaReal, &item.Status,
		&item.ForcedStatus, &item.ForcedReason, &item.ForcedBy, &item.ForcedAt,
		&meta, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan media item: %w", err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &item.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &item, nil
}

func marshalMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return b, nil
}
