package media_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/dto"
	appmedia "github.com/colhetron/separacao-api/internal/application/media"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	dommedia "github.com/colhetron/separacao-api/internal/domain/media"
	"github.com/colhetron/separacao-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeMediaRepo struct {
	items map[string]*entity.MediaAnalysisItem // id -> item
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{items: map[string]*entity.MediaAnalysisItem{}}
}

func (f *fakeMediaRepo) CreateBatch(items []*entity.MediaAnalysisItem) error {
	for _, item := range items {
		f.items[item.ID] = item
	}
	return nil
}

func (f *fakeMediaRepo) List(_, _ string) ([]*entity.MediaAnalysisItem, error) {
	var out []*entity.MediaAnalysisItem
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeMediaRepo) GetByID(_, id string) (*entity.MediaAnalysisItem, error) {
	return f.items[id], nil
}

func (f *fakeMediaRepo) GetByCodigo(_, _, codigo string) (*entity.MediaAnalysisItem, error) {
	for _, item := range f.items {
		if item.Codigo == codigo {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeMediaRepo) Update(item *entity.MediaAnalysisItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMediaRepo) DeleteAll(_, _ string) error {
	f.items = map[string]*entity.MediaAnalysisItem{}
	return nil
}

type fakeSepRepo struct {
	active *entity.Separation
}

func (f *fakeSepRepo) Create(*entity.Separation) error                 { return nil }
func (f *fakeSepRepo) GetByID(_, _ string) (*entity.Separation, error) { return f.active, nil }
func (f *fakeSepRepo) GetActive(string) (*entity.Separation, error)    { return f.active, nil }
func (f *fakeSepRepo) ListByUser(string, int, int) ([]*entity.Separation, error) {
	return nil, nil
}
func (f *fakeSepRepo) Complete(_, _ string) error { return nil }

// fakeQtyRepo só responde SumByMaterial: o estoque derivado por material.
type fakeQtyRepo struct {
	estoque map[string]decimal.Decimal // codigo -> soma das lojas
}

func (f *fakeQtyRepo) UpsertBatch([]*entity.SeparationQuantity) error { return nil }
func (f *fakeQtyRepo) Upsert(*entity.SeparationQuantity) error        { return nil }
func (f *fakeQtyRepo) ListByItem(string) ([]*entity.SeparationQuantity, error) {
	return nil, nil
}
func (f *fakeQtyRepo) Update(_, _ string, _ decimal.Decimal) error { return nil }
func (f *fakeQtyRepo) Delete(_, _ string) error                    { return nil }
func (f *fakeQtyRepo) SumByMaterial(_, codigo string) (decimal.Decimal, error) {
	return f.estoque[codigo], nil
}

type fakeActivityRepo struct{}

func (fakeActivityRepo) Create(*entity.ActivityLog) error { return nil }
func (fakeActivityRepo) ListByUser(string, int, int) ([]*entity.ActivityLog, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const mediaTestUser = "user-1"

func buildMediaUseCase(estoque map[string]decimal.Decimal) (*appmedia.UseCase, *fakeMediaRepo) {
	mediaRepo := newFakeMediaRepo()
	sepRepo := &fakeSepRepo{active: &entity.Separation{ID: "sep-1", UserID: mediaTestUser, Status: entity.SeparationStatusActive}}
	qtyRepo := &fakeQtyRepo{estoque: estoque}
	activity := audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
	return appmedia.NewUseCase(mediaRepo, sepRepo, qtyRepo, activity), mediaRepo
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// addCritico inclui um item que classifica CRÍTICO (estoque 10 > caixas 5).
func addCritico(t *testing.T, uc *appmedia.UseCase) *dto.MediaItemResponse {
	t.Helper()
	out, err := uc.Add(mediaTestUser, dto.AddMediaItemsRequest{Items: []dto.MediaItemRequest{{
		Codigo:           "M001",
		Material:         "Banana Prata",
		QuantidadeKg:     dec(120),
		QuantidadeCaixas: dec(5),
		MediaSistema:     dec(12),
	}}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, dommedia.StatusCritico, out[0].Status)
	return out[0]
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ForceOK
// ──────────────────────────────────────────────────────────────────────────────

func TestForceOK_ForcaStatusERegistraAutor(t *testing.T) {
	uc, _ := buildMediaUseCase(map[string]decimal.Decimal{"M001": dec(10)})
	item := addCritico(t, uc)

	out, err := uc.ForceOK(mediaTestUser, item.ID, dto.ForceStatusRequest{Reason: "conferido no físico"})
	require.NoError(t, err)
	assert.Equal(t, dommedia.StatusOK, out.Status)
	assert.True(t, out.ForcedStatus)
	assert.Equal(t, "conferido no físico", out.ForcedReason)
	assert.Equal(t, mediaTestUser, out.ForcedBy)
	require.NotNil(t, out.ForcedAt)
}

// Forçar um item que já está OK falha com conflito, não é idempotente.
func TestForceOK_ItemJaOKDevolveConflito(t *testing.T) {
	uc, _ := buildMediaUseCase(map[string]decimal.Decimal{"M001": dec(10)})
	item := addCritico(t, uc)

	_, err := uc.ForceOK(mediaTestUser, item.ID, dto.ForceStatusRequest{Reason: "conferido no físico"})
	require.NoError(t, err)

	_, err = uc.ForceOK(mediaTestUser, item.ID, dto.ForceStatusRequest{Reason: "de novo"})
	assert.ErrorIs(t, err, domain.ErrStatusAlreadyOK)
}

// O recálculo da listagem respeita o force-OK: o classificador diria CRÍTICO,
// mas o status forçado sobrevive.
func TestForceOK_SobreviveAoRecalculoDaListagem(t *testing.T) {
	uc, _ := buildMediaUseCase(map[string]decimal.Decimal{"M001": dec(10)})
	item := addCritico(t, uc)

	_, err := uc.ForceOK(mediaTestUser, item.ID, dto.ForceStatusRequest{Reason: "conferido no físico"})
	require.NoError(t, err)

	listed, err := uc.List(mediaTestUser)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, dommedia.StatusOK, listed[0].Status)
	assert.True(t, listed[0].ForcedStatus)
}

// Uma edição de quantidade derruba o force-OK: o classificador volta a mandar.
func TestForceOK_EdicaoDerrubaStatusForcado(t *testing.T) {
	uc, _ := buildMediaUseCase(map[string]decimal.Decimal{"M001": dec(10)})
	item := addCritico(t, uc)

	_, err := uc.ForceOK(mediaTestUser, item.ID, dto.ForceStatusRequest{Reason: "conferido no físico"})
	require.NoError(t, err)

	kg := dec(100)
	out, err := uc.Update(mediaTestUser, item.ID, dto.UpdateMediaItemRequest{QuantidadeKg: &kg})
	require.NoError(t, err)
	assert.Equal(t, dommedia.StatusCritico, out.Status, "estoque 10 > caixas 5 volta a ser CRÍTICO")
	assert.False(t, out.ForcedStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Add
// ──────────────────────────────────────────────────────────────────────────────

// Colar o mesmo material de novo atualiza o item existente, não duplica.
func TestAdd_MaterialRepetidoAtualizaEmVezDeDuplicar(t *testing.T) {
	uc, repo := buildMediaUseCase(map[string]decimal.Decimal{"M001": dec(10)})
	first := addCritico(t, uc)

	out, err := uc.Add(mediaTestUser, dto.AddMediaItemsRequest{Items: []dto.MediaItemRequest{{
		Codigo:           "m001", // minúsculo de propósito: normalização
		Material:         "Banana Prata",
		QuantidadeKg:     dec(240),
		QuantidadeCaixas: dec(10),
		MediaSistema:     dec(24),
	}}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, first.ID, out[0].ID, "o mesmo código deve reaproveitar o item")
	assert.Len(t, repo.items, 1, "não pode haver item duplicado por código")
	assert.True(t, out[0].QuantidadeCaixas.Equal(dec(10)))
	assert.Equal(t, dommedia.StatusOK, out[0].Status, "estoque 10 == caixas 10 e média inteira -> OK")
}

func TestAdd_SemSeparacaoAtiva(t *testing.T) {
	mediaRepo := newFakeMediaRepo()
	activity := audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
	uc := appmedia.NewUseCase(mediaRepo, &fakeSepRepo{}, &fakeQtyRepo{}, activity)

	_, err := uc.Add(mediaTestUser, dto.AddMediaItemsRequest{Items: []dto.MediaItemRequest{{
		Codigo: "M001", Material: "Banana Prata",
	}}})
	assert.ErrorIs(t, err, domain.ErrNoActiveSeparation)
}
