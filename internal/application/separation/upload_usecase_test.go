package separation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsep "github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
)

// fakeMaterialRepo resolve materiais pela descrição normalizada.
type fakeMaterialRepo struct {
	byDescricao map[string]*entity.Material
	findErr     error
}

func (f *fakeMaterialRepo) Create(*entity.Material) error { return nil }
func (f *fakeMaterialRepo) GetByCodigo(string) (*entity.Material, error) {
	return nil, nil
}
func (f *fakeMaterialRepo) FindByDescricaoNormalizada(descricao string) (*entity.Material, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byDescricao[descricao], nil
}
func (f *fakeMaterialRepo) List(int, int) ([]*entity.Material, error) { return nil, nil }
func (f *fakeMaterialRepo) Update(*entity.Material) error             { return nil }
func (f *fakeMaterialRepo) UpsertBatch([]*entity.Material) error      { return nil }

func buildUploadUseCase(materialRepo *fakeMaterialRepo, rows []appsep.ParsedOrderRow) (*appsep.UploadUseCase, *memItemRepo, *memQtyRepo) {
	sepRepo := &fakeSepRepo{} // sem separação ativa
	itemRepo := newMemItemRepo()
	qtyRepo := newMemQtyRepo()
	uc := appsep.NewUploadUseCase(
		&stubTxRunner{sepRepo: sepRepo, itemRepo: itemRepo, qtyRepo: qtyRepo},
		sepRepo,
		materialRepo,
		&stubOrderParser{rows: rows},
		testActivity(),
	)
	return uc, itemRepo, qtyRepo
}

func TestUpload_CriaSeparacaoComItensEQuantidades(t *testing.T) {
	uc, itemRepo, qtyRepo := buildUploadUseCase(&fakeMaterialRepo{}, []appsep.ParsedOrderRow{{
		Codigo:      "M001",
		Material:    "Banana Prata",
		TipoSepar:   "FRIOS",
		Quantidades: map[string]decimal.Decimal{"SP01": qty(5), "RJ02": qty(0)},
	}})

	out, err := uc.Upload(context.Background(), cutTestUser, "pedidos.xlsx", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, entity.SeparationStatusActive, out.Status)
	assert.Equal(t, "pedidos.xlsx", out.FileName)

	item := itemRepo.items["M001"]
	require.NotNil(t, item)
	assert.True(t, qtyRepo.quantities[item.ID]["SP01"].Equal(qty(5)))
	_, temRJ := qtyRepo.quantities[item.ID]["RJ02"]
	assert.False(t, temRJ, "quantidade zero não gera linha")
}

// Linha sem código casa o material do cadastro pela descrição normalizada.
func TestUpload_ResolveCodigoPelaDescricao(t *testing.T) {
	materialRepo := &fakeMaterialRepo{byDescricao: map[string]*entity.Material{
		"MELAO AMARELO": {ID: "mat-1", Codigo: "M777", Descricao: "Melão Amarelo"},
	}}
	uc, itemRepo, _ := buildUploadUseCase(materialRepo, []appsep.ParsedOrderRow{{
		Material:    "Melão Amarelo",
		Quantidades: map[string]decimal.Decimal{"SP01": qty(2)},
	}})

	_, err := uc.Upload(context.Background(), cutTestUser, "pedidos.xlsx", strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, itemRepo.items["M777"], "o item deve herdar o código do cadastro")
}

// Falha do banco na busca por descrição interrompe o upload, não é engolida.
func TestUpload_ErroNaBuscaPorDescricaoPropaga(t *testing.T) {
	falha := errors.New("select material: connection reset")
	uc, itemRepo, _ := buildUploadUseCase(&fakeMaterialRepo{findErr: falha}, []appsep.ParsedOrderRow{{
		Material:    "Melão Amarelo",
		Quantidades: map[string]decimal.Decimal{"SP01": qty(2)},
	}})

	_, err := uc.Upload(context.Background(), cutTestUser, "pedidos.xlsx", strings.NewReader(""))
	require.ErrorIs(t, err, falha)
	assert.Empty(t, itemRepo.items, "nada deve ser persistido quando a busca falha")
}

func TestUpload_ComSeparacaoAtivaDevolveConflito(t *testing.T) {
	sepRepo := &fakeSepRepo{active: &entity.Separation{ID: "sep-1", UserID: cutTestUser, Status: entity.SeparationStatusActive}}
	uc := appsep.NewUploadUseCase(&stubTxRunner{}, sepRepo, &fakeMaterialRepo{}, &stubOrderParser{}, testActivity())

	_, err := uc.Upload(context.Background(), cutTestUser, "pedidos.xlsx", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrSeparationActive)
}
