package separation

import (
	"fmt"
	"sort"

	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Tipos de corte suportados.
const (
	CutAll      = "all"      // zera todas as lojas do material
	CutSpecific = "specific" // zera apenas as lojas nomeadas
	CutPartial  = "partial"  // reduz a quantidade de cada loja nomeada
)

// PartialCut corte parcial para uma loja: a quantidade a cortar
// não pode exceder a quantidade atual da loja.
type PartialCut struct {
	LojaCodigo string
	Quantidade decimal.Decimal
}

// CutRequest pedido de corte para um material da separação ativa.
type CutRequest struct {
	Type     string
	Lojas    []string     // para "specific"
	Parciais []PartialCut // para "partial"
}

// CutAction resultado por loja: nova quantidade e se a linha deve ser removida.
// Linhas com quantidade resultante 0 são removidas, nunca gravadas com zero.
type CutAction struct {
	LojaCodigo     string
	NovaQuantidade decimal.Decimal
	Delete         bool
}

// CutPlan conjunto de ações calculado a partir das quantidades atuais.
type CutPlan struct {
	Actions      []CutAction
	TotalCortado decimal.Decimal
}

// AffectedStores número de lojas alteradas pelo plano.
func (p *CutPlan) AffectedStores() int { return len(p.Actions) }

// InvalidCutError corte parcial maior que a quantidade atual da loja.
type InvalidCutError struct {
	LojaCodigo string
	Atual      decimal.Decimal
	Solicitado decimal.Decimal
}

func (e *InvalidCutError) Error() string {
	return fmt.Sprintf("corte inválido para a loja %s: solicitado %s, disponível %s",
		e.LojaCodigo, e.Solicitado, e.Atual)
}

// BuildCutPlan calcula as ações de corte sobre as quantidades atuais por loja
// (apenas linhas com quantidade > 0 existem em current). Função pura: não toca o banco.
// Plano vazio retorna domain.ErrNothingToUpdate em vez de sucesso silencioso.
func BuildCutPlan(current map[string]decimal.Decimal, req CutRequest) (*CutPlan, error) {
	plan := &CutPlan{TotalCortado: decimal.Zero}

	switch req.Type {
	case CutAll:
		for loja, qty := range current {
			plan.Actions = append(plan.Actions, CutAction{LojaCodigo: loja, NovaQuantidade: decimal.Zero, Delete: true})
			plan.TotalCortado = plan.TotalCortado.Add(qty)
		}

	case CutSpecific:
		for _, loja := range req.Lojas {
			qty, ok := current[loja]
			if !ok {
				continue // loja sem alocação para o material: ignorada
			}
			plan.Actions = append(plan.Actions, CutAction{LojaCodigo: loja, NovaQuantidade: decimal.Zero, Delete: true})
			plan.TotalCortado = plan.TotalCortado.Add(qty)
		}

	case CutPartial:
		for _, pc := range req.Parciais {
			qty, ok := current[pc.LojaCodigo]
			if !ok {
				continue
			}
			if pc.Quantidade.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			if pc.Quantidade.GreaterThan(qty) {
				return nil, &InvalidCutError{LojaCodigo: pc.LojaCodigo, Atual: qty, Solicitado: pc.Quantidade}
			}
			if pc.Quantidade.IsZero() {
				continue // corte de zero não altera a loja
			}
			nova := qty.Sub(pc.Quantidade)
			plan.Actions = append(plan.Actions, CutAction{
				LojaCodigo:     pc.LojaCodigo,
				NovaQuantidade: nova,
				Delete:         nova.IsZero(),
			})
			plan.TotalCortado = plan.TotalCortado.Add(pc.Quantidade)
		}

	default:
		return nil, domain.ErrInvalidInput
	}

	if len(plan.Actions) == 0 {
		return nil, domain.ErrNothingToUpdate
	}

	// Ordem estável por loja para logs e respostas determinísticas
	sort.Slice(plan.Actions, func(i, j int) bool {
		return plan.Actions[i].LojaCodigo < plan.Actions[j].LojaCodigo
	})
	return plan, nil
}
