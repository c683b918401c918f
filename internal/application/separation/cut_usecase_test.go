package separation_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
	appsep "github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	domsep "github.com/colhetron/separacao-api/internal/domain/separation"
	"github.com/colhetron/separacao-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeSepRepo struct {
	active *entity.Separation
}

func (f *fakeSepRepo) Create(*entity.Separation) error                { return nil }
func (f *fakeSepRepo) GetByID(_, _ string) (*entity.Separation, error) { return f.active, nil }
func (f *fakeSepRepo) GetActive(string) (*entity.Separation, error)    { return f.active, nil }
func (f *fakeSepRepo) ListByUser(string, int, int) ([]*entity.Separation, error) {
	return nil, nil
}
func (f *fakeSepRepo) Complete(_, _ string) error { return nil }

type fakeItemRepo struct {
	item *entity.SeparationItem
}

func (f *fakeItemRepo) CreateBatch([]*entity.SeparationItem) error { return nil }
func (f *fakeItemRepo) GetByCodigo(_, codigo string) (*entity.SeparationItem, error) {
	if f.item != nil && f.item.Codigo == codigo {
		return f.item, nil
	}
	return nil, nil
}
func (f *fakeItemRepo) ListBySeparation(string) ([]*entity.SeparationItem, error) {
	return []*entity.SeparationItem{f.item}, nil
}

// fakeQtyRepo mantém as alocações num mapa protegido por mutex: o corte
// despacha as escritas por loja em goroutines.
type fakeQtyRepo struct {
	mu         sync.Mutex
	quantities map[string]decimal.Decimal // loja -> quantidade
}

func (f *fakeQtyRepo) UpsertBatch([]*entity.SeparationQuantity) error { return nil }
func (f *fakeQtyRepo) Upsert(*entity.SeparationQuantity) error        { return nil }
func (f *fakeQtyRepo) ListByItem(string) ([]*entity.SeparationQuantity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.SeparationQuantity
	for loja, qty := range f.quantities {
		out = append(out, &entity.SeparationQuantity{LojaCodigo: loja, Quantidade: qty})
	}
	return out, nil
}
func (f *fakeQtyRepo) Update(_, lojaCodigo string, quantidade decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quantities[lojaCodigo] = quantidade
	return nil
}
func (f *fakeQtyRepo) Delete(_, lojaCodigo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.quantities, lojaCodigo)
	return nil
}
func (f *fakeQtyRepo) SumByMaterial(_, _ string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for _, qty := range f.quantities {
		total = total.Add(qty)
	}
	return total, nil
}

type fakeActivityRepo struct{}

func (fakeActivityRepo) Create(*entity.ActivityLog) error { return nil }
func (fakeActivityRepo) ListByUser(string, int, int) ([]*entity.ActivityLog, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const cutTestUser = "user-1"

func buildCutUseCase(quantities map[string]decimal.Decimal) (*appsep.CutUseCase, *fakeQtyRepo) {
	sepRepo := &fakeSepRepo{active: &entity.Separation{ID: "sep-1", UserID: cutTestUser, Status: entity.SeparationStatusActive}}
	itemRepo := &fakeItemRepo{item: &entity.SeparationItem{ID: "item-1", SeparationID: "sep-1", Codigo: "M001", Material: "Banana Prata"}}
	qtyRepo := &fakeQtyRepo{quantities: quantities}
	activity := audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
	return appsep.NewCutUseCase(sepRepo, itemRepo, qtyRepo, activity), qtyRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCut_All_RemoveTodasAsLojas(t *testing.T) {
	uc, qtyRepo := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(5),
		"RJ02": decimal.NewFromInt(3),
	})

	out, err := uc.Cut(cutTestUser, dto.CutRequest{MaterialCodigo: "M001", Type: domsep.CutAll})
	require.NoError(t, err)

	assert.Equal(t, 2, out.AffectedStores)
	assert.True(t, out.TotalCutQuantity.Equal(decimal.NewFromInt(8)))
	assert.Empty(t, qtyRepo.quantities, "corte total deve remover todas as alocações")
}

func TestCut_Specific_RemoveApenasAsLojasPedidas(t *testing.T) {
	uc, qtyRepo := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(5),
		"RJ02": decimal.NewFromInt(3),
	})

	out, err := uc.Cut(cutTestUser, dto.CutRequest{
		MaterialCodigo: "M001",
		Type:           domsep.CutSpecific,
		Lojas:          []string{"sp01"}, // minúsculas: o código é normalizado
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.AffectedStores)
	assert.True(t, out.TotalCutQuantity.Equal(decimal.NewFromInt(5)))
	_, existe := qtyRepo.quantities["SP01"]
	assert.False(t, existe)
	assert.True(t, qtyRepo.quantities["RJ02"].Equal(decimal.NewFromInt(3)),
		"loja não pedida deve ficar intacta")
}

func TestCut_Partial_ReduzSemRemover(t *testing.T) {
	uc, qtyRepo := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(5),
	})

	out, err := uc.Cut(cutTestUser, dto.CutRequest{
		MaterialCodigo: "M001",
		Type:           domsep.CutPartial,
		Parciais: []dto.PartialCutRequest{
			{LojaCodigo: "SP01", Quantidade: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.AffectedStores)
	assert.True(t, out.TotalCutQuantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, qtyRepo.quantities["SP01"].Equal(decimal.NewFromInt(3)))
}

func TestCut_Partial_ZeraRemoveALinha(t *testing.T) {
	uc, qtyRepo := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(5),
	})

	_, err := uc.Cut(cutTestUser, dto.CutRequest{
		MaterialCodigo: "M001",
		Type:           domsep.CutPartial,
		Parciais: []dto.PartialCutRequest{
			{LojaCodigo: "SP01", Quantidade: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, qtyRepo.quantities, "corte que zera a alocação deve remover a linha")
}

func TestCut_Partial_AcimaDoAtual_Falha(t *testing.T) {
	uc, qtyRepo := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(3),
	})

	_, err := uc.Cut(cutTestUser, dto.CutRequest{
		MaterialCodigo: "M001",
		Type:           domsep.CutPartial,
		Parciais: []dto.PartialCutRequest{
			{LojaCodigo: "SP01", Quantidade: decimal.NewFromInt(4)},
		},
	})

	var invalid *domsep.InvalidCutError
	require.True(t, errors.As(err, &invalid), "corte acima do atual deve falhar com InvalidCutError")
	assert.Equal(t, "SP01", invalid.LojaCodigo)
	assert.True(t, qtyRepo.quantities["SP01"].Equal(decimal.NewFromInt(3)),
		"nenhuma escrita deve acontecer quando o plano é inválido")
}

func TestCut_MaterialInexistente_NotFound(t *testing.T) {
	uc, _ := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(3),
	})

	_, err := uc.Cut(cutTestUser, dto.CutRequest{MaterialCodigo: "M999", Type: domsep.CutAll})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCut_SemSeparacaoAtiva(t *testing.T) {
	sepRepo := &fakeSepRepo{active: nil}
	itemRepo := &fakeItemRepo{}
	qtyRepo := &fakeQtyRepo{quantities: map[string]decimal.Decimal{}}
	activity := audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
	uc := appsep.NewCutUseCase(sepRepo, itemRepo, qtyRepo, activity)

	_, err := uc.Cut(cutTestUser, dto.CutRequest{MaterialCodigo: "M001", Type: domsep.CutAll})
	assert.ErrorIs(t, err, domain.ErrNoActiveSeparation)
}

func TestCut_LojaInexistente_NothingToUpdate(t *testing.T) {
	uc, _ := buildCutUseCase(map[string]decimal.Decimal{
		"SP01": decimal.NewFromInt(3),
	})

	_, err := uc.Cut(cutTestUser, dto.CutRequest{
		MaterialCodigo: "M001",
		Type:           domsep.CutSpecific,
		Lojas:          []string{"XX99"},
	})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
}
