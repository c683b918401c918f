package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MediaItemRequest linha colada/enviada pelo operador para a análise de médias.
type MediaItemRequest struct {
	Codigo           string          `json:"codigo" validate:"required"`
	Material         string          `json:"material" validate:"required"`
	QuantidadeKg     decimal.Decimal `json:"quantidade_kg"`
	QuantidadeCaixas decimal.Decimal `json:"quantidade_caixas"`
	MediaSistema     decimal.Decimal `json:"media_sistema"`
}

// AddMediaItemsRequest inclusão em lote (paste de planilha).
type AddMediaItemsRequest struct {
	Items []MediaItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateMediaItemRequest edição das quantidades de um item; o status é recalculado.
type UpdateMediaItemRequest struct {
	QuantidadeKg     *decimal.Decimal `json:"quantidade_kg,omitempty"`
	QuantidadeCaixas *decimal.Decimal `json:"quantidade_caixas,omitempty"`
	MediaSistema     *decimal.Decimal `json:"media_sistema,omitempty"`
}

// ForceStatusRequest força o status de um item para OK, registrando motivo e autor.
type ForceStatusRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// CustomMediaRequest substitui a média de sistema por um valor informado;
// a classificação é reexecutada e a média original fica no metadata.
type CustomMediaRequest struct {
	MediaSistema decimal.Decimal `json:"media_sistema"`
}

// MediaItemResponse item da análise com os campos calculados.
type MediaItemResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	Material         string          `json:"material"`
	QuantidadeKg     decimal.Decimal `json:"quantidade_kg"`
	QuantidadeCaixas decimal.Decimal `json:"quantidade_caixas"`
	MediaSistema     decimal.Decimal `json:"media_sistema"`
	EstoqueAtual     decimal.Decimal `json:"estoque_atual"`
	DiferencaCaixas  decimal.Decimal `json:"diferenca_caixas"`
	MediaReal        decimal.Decimal `json:"media_real"`
	Status           string          `json:"status"`
	ForcedStatus     bool            `json:"forced_status,omitempty"`
	ForcedReason     string          `json:"forced_reason,omitempty"`
	ForcedBy         string          `json:"forced_by,omitempty"`
	ForcedAt         *time.Time      `json:"forced_at,omitempty"`
	Metadata         map[string]any  `json:"metadata,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
