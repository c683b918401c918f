package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MediaAnalysisItem uma linha da análise de médias: compara a quantidade declarada
// pelo sistema (caixas) com o estoque físico derivado das alocações da separação ativa.
// Status e campos derivados são sempre calculados, nunca informados pelo usuário —
// exceto pelo force-OK explícito, que carimba os campos Forced*.
type MediaAnalysisItem struct {
	ID               string
	UserID           string
	SeparationID     string
	Codigo           string
	Material         string
	QuantidadeKg     decimal.Decimal
	QuantidadeCaixas decimal.Decimal
	MediaSistema     decimal.Decimal
	EstoqueAtual     decimal.Decimal // soma das quantidades por loja na separação ativa
	DiferencaCaixas  decimal.Decimal // QuantidadeCaixas - EstoqueAtual
	MediaReal        decimal.Decimal // QuantidadeKg / EstoqueAtual (2 casas)
	Status           string          // OK, ATENÇÃO, CRÍTICO
	ForcedStatus     bool
	ForcedReason     string
	ForcedBy         string
	ForcedAt         *time.Time
	Metadata         map[string]any // audit: média original em override customizado, etc.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
