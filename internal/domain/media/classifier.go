package media

import (
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Status possíveis da análise de médias.
const (
	StatusOK      = "OK"
	StatusAtencao = "ATENÇÃO"
	StatusCritico = "CRÍTICO"
)

// Input entradas do classificador de status (serviço de domínio).
type Input struct {
	EstoqueAtual     decimal.Decimal // soma das quantidades por loja na separação ativa
	QuantidadeCaixas decimal.Decimal // quantidade declarada pelo sistema, em caixas
	QuantidadeKg     decimal.Decimal
	MediaSistema     decimal.Decimal // média declarada de unidades por caixa
}

// Result status calculado e campos derivados.
type Result struct {
	Status          string
	DiferencaCaixas decimal.Decimal // QuantidadeCaixas - EstoqueAtual
	MediaReal       decimal.Decimal // QuantidadeKg / EstoqueAtual, 2 casas decimais
}

// Classify aplica as regras de divergência entre estoque físico e quantidade declarada.
// A ordem das regras importa; a primeira que casar vence:
//  1. EstoqueAtual > QuantidadeCaixas  -> CRÍTICO (estoque físico acima do declarado; condição impossível/suspeita)
//  2. EstoqueAtual == 0                -> OK (sem estoque registrado, nada a comparar)
//  3. MediaSistema fracionária         -> ATENÇÃO; inteira -> OK
func Classify(in Input) (Result, error) {
	if in.EstoqueAtual.IsNegative() || in.QuantidadeCaixas.IsNegative() ||
		in.QuantidadeKg.IsNegative() || in.MediaSistema.IsNegative() {
		return Result{}, domain.ErrInvalidInput
	}

	out := Result{
		DiferencaCaixas: in.QuantidadeCaixas.Sub(in.EstoqueAtual),
		MediaReal:       decimal.Zero,
	}
	if in.EstoqueAtual.IsPositive() {
		out.MediaReal = in.QuantidadeKg.Div(in.EstoqueAtual).Round(2)
	}

	switch {
	case in.EstoqueAtual.GreaterThan(in.QuantidadeCaixas):
		out.Status = StatusCritico
	case in.EstoqueAtual.IsZero():
		out.Status = StatusOK
	case !in.MediaSistema.IsInteger():
		out.Status = StatusAtencao
	default:
		out.Status = StatusOK
	}
	return out, nil
}
