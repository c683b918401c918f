package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeparationResponse cabeçalho de uma separação.
type SeparationResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	FileName    string     `json:"file_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// SeparationItemResponse item de separação com as quantidades por loja.
type SeparationItemResponse struct {
	ID          string                     `json:"id"`
	Codigo      string                     `json:"codigo"`
	Material    string                     `json:"material"`
	TipoSepar   string                     `json:"tipo_separacao,omitempty"`
	Quantidades map[string]decimal.Decimal `json:"quantidades"` // loja -> quantidade
}

// UpdateQuantityRequest edição de uma alocação (item, loja). Zero remove a linha.
type UpdateQuantityRequest struct {
	ItemID     string          `json:"item_id" validate:"required,uuid"`
	LojaCodigo string          `json:"loja_codigo" validate:"required"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// CutRequest corte de quantidades de um material da separação ativa.
// Type: all | specific | partial.
type CutRequest struct {
	MaterialCodigo string              `json:"material_codigo" validate:"required"`
	Type           string              `json:"cut_type" validate:"required,oneof=all specific partial"`
	Lojas          []string            `json:"stores,omitempty"`
	Parciais       []PartialCutRequest `json:"partial_cuts,omitempty"`
}

// PartialCutRequest corte parcial de uma loja.
type PartialCutRequest struct {
	LojaCodigo string          `json:"loja_codigo" validate:"required"`
	Quantidade decimal.Decimal `json:"quantity_to_cut"`
}

// CutResponse resultado do corte.
type CutResponse struct {
	AffectedStores   int             `json:"affected_stores"`
	TotalCutQuantity decimal.Decimal `json:"total_cut_quantity"`
}
