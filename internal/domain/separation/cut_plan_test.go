package separation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/separation"
)

func qty(n string) decimal.Decimal {
	d, _ := decimal.NewFromString(n)
	return d
}

func currentAB() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"SP01": qty("5"),
		"SP02": qty("3"),
	}
}

// Corte "all": todas as lojas zeradas e removidas, total = soma das quantidades.
func TestBuildCutPlan_All(t *testing.T) {
	plan, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{Type: separation.CutAll})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.AffectedStores())
	assert.True(t, plan.TotalCortado.Equal(qty("8")), "total cortado deve ser 5+3")
	for _, a := range plan.Actions {
		assert.True(t, a.Delete, "corte total sempre remove a linha")
		assert.True(t, a.NovaQuantidade.IsZero())
	}
}

// Corte "specific": só as lojas nomeadas; lojas sem alocação são ignoradas.
func TestBuildCutPlan_Specific(t *testing.T) {
	plan, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{
		Type:  separation.CutSpecific,
		Lojas: []string{"SP02"},
	})
	require.NoError(t, err)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "SP02", plan.Actions[0].LojaCodigo)
	assert.True(t, plan.Actions[0].Delete)
	assert.True(t, plan.TotalCortado.Equal(qty("3")))
}

// Loja nomeada sem alocação no material: plano vazio -> ErrNothingToUpdate,
// nunca sucesso silencioso.
func TestBuildCutPlan_Specific_LojaInexistente_NadaParaAtualizar(t *testing.T) {
	_, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{
		Type:  separation.CutSpecific,
		Lojas: []string{"RJ99"},
	})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
}

// Corte parcial: nova quantidade = atual - corte; zerar remove a linha.
func TestBuildCutPlan_Partial(t *testing.T) {
	plan, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{
		Type: separation.CutPartial,
		Parciais: []separation.PartialCut{
			{LojaCodigo: "SP01", Quantidade: qty("2")},
			{LojaCodigo: "SP02", Quantidade: qty("3")},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Actions, 2)

	// Ações ordenadas por código de loja
	assert.Equal(t, "SP01", plan.Actions[0].LojaCodigo)
	assert.True(t, plan.Actions[0].NovaQuantidade.Equal(qty("3")))
	assert.False(t, plan.Actions[0].Delete)

	assert.Equal(t, "SP02", plan.Actions[1].LojaCodigo)
	assert.True(t, plan.Actions[1].NovaQuantidade.IsZero())
	assert.True(t, plan.Actions[1].Delete, "quantidade resultante 0 remove a linha")

	assert.True(t, plan.TotalCortado.Equal(qty("5")))
}

// Cortar mais do que a loja tem falha com InvalidCutError nomeando loja e valores,
// sem produzir plano algum.
func TestBuildCutPlan_Partial_CorteMaiorQueDisponivel(t *testing.T) {
	plan, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{
		Type: separation.CutPartial,
		Parciais: []separation.PartialCut{
			{LojaCodigo: "SP02", Quantidade: qty("4")},
		},
	})
	require.Error(t, err)
	assert.Nil(t, plan)

	var cutErr *separation.InvalidCutError
	require.ErrorAs(t, err, &cutErr)
	assert.Equal(t, "SP02", cutErr.LojaCodigo)
	assert.True(t, cutErr.Atual.Equal(qty("3")))
	assert.True(t, cutErr.Solicitado.Equal(qty("4")))
	assert.Contains(t, cutErr.Error(), "SP02")
}

func TestBuildCutPlan_Partial_CorteZero_Ignorado(t *testing.T) {
	_, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{
		Type: separation.CutPartial,
		Parciais: []separation.PartialCut{
			{LojaCodigo: "SP01", Quantidade: qty("0")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
}

func TestBuildCutPlan_Partial_CorteNegativo_Erro(t *testing.T) {
	_, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{
		Type: separation.CutPartial,
		Parciais: []separation.PartialCut{
			{LojaCodigo: "SP01", Quantidade: qty("-1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildCutPlan_TipoDesconhecido_Erro(t *testing.T) {
	_, err := separation.BuildCutPlan(currentAB(), separation.CutRequest{Type: "metade"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildCutPlan_All_SemLinhas_NadaParaAtualizar(t *testing.T) {
	_, err := separation.BuildCutPlan(map[string]decimal.Decimal{}, separation.CutRequest{Type: separation.CutAll})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
}
