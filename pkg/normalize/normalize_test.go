package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colhetron/separacao-api/pkg/normalize"
)

// A mesma descrição pode chegar com ou sem acentos dependendo da planilha de origem;
// as duas grafias devem normalizar para a mesma chave.
func TestMaterial_RemoveAcentos(t *testing.T) {
	assert.Equal(t, "ACUCAR CRISTAL", normalize.Material("AÇÚCAR CRISTAL"))
	assert.Equal(t, "ACUCAR CRISTAL", normalize.Material("Acucar   Cristal"))
	assert.Equal(t, normalize.Material("PÊSSEGO EM CALDA"), normalize.Material("pessego em calda"))
}

func TestMaterial_ColapsaEspacos(t *testing.T) {
	assert.Equal(t, "FEIJAO PRETO 1KG", normalize.Material("  feijão   preto  1kg "))
}

func TestCodigo(t *testing.T) {
	assert.Equal(t, "MAT-001", normalize.Codigo(" mat-001 "))
	assert.Equal(t, "", normalize.Codigo("   "))
}
