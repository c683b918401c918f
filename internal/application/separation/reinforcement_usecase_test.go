package separation_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colhetron/separacao-api/internal/application/audit"
	appsep "github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória (upload e reforço)
// ──────────────────────────────────────────────────────────────────────────────

// memItemRepo guarda os itens por código.
type memItemRepo struct {
	items map[string]*entity.SeparationItem
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: map[string]*entity.SeparationItem{}}
}

func (m *memItemRepo) CreateBatch(items []*entity.SeparationItem) error {
	for _, item := range items {
		m.items[item.Codigo] = item
	}
	return nil
}

func (m *memItemRepo) GetByCodigo(_, codigo string) (*entity.SeparationItem, error) {
	return m.items[codigo], nil
}

func (m *memItemRepo) ListBySeparation(string) ([]*entity.SeparationItem, error) {
	var out []*entity.SeparationItem
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

// memQtyRepo guarda as alocações por (item, loja).
type memQtyRepo struct {
	quantities map[string]map[string]decimal.Decimal // itemID -> loja -> quantidade
}

func newMemQtyRepo() *memQtyRepo {
	return &memQtyRepo{quantities: map[string]map[string]decimal.Decimal{}}
}

func (m *memQtyRepo) set(itemID, loja string, q decimal.Decimal) {
	if m.quantities[itemID] == nil {
		m.quantities[itemID] = map[string]decimal.Decimal{}
	}
	m.quantities[itemID][loja] = q
}

func (m *memQtyRepo) UpsertBatch(qts []*entity.SeparationQuantity) error {
	for _, q := range qts {
		m.set(q.ItemID, q.LojaCodigo, q.Quantidade)
	}
	return nil
}

func (m *memQtyRepo) Upsert(q *entity.SeparationQuantity) error {
	m.set(q.ItemID, q.LojaCodigo, q.Quantidade)
	return nil
}

func (m *memQtyRepo) ListByItem(itemID string) ([]*entity.SeparationQuantity, error) {
	var out []*entity.SeparationQuantity
	for loja, q := range m.quantities[itemID] {
		out = append(out, &entity.SeparationQuantity{ItemID: itemID, LojaCodigo: loja, Quantidade: q})
	}
	return out, nil
}

func (m *memQtyRepo) Update(itemID, loja string, q decimal.Decimal) error {
	m.set(itemID, loja, q)
	return nil
}

func (m *memQtyRepo) Delete(itemID, loja string) error {
	delete(m.quantities[itemID], loja)
	return nil
}

func (m *memQtyRepo) SumByMaterial(_, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// stubTxRunner executa a função direto com os repositórios dados, sem transação.
type stubTxRunner struct {
	sepRepo  repository.SeparationRepository
	itemRepo repository.SeparationItemRepository
	qtyRepo  repository.QuantityRepository
}

func (s *stubTxRunner) Run(_ context.Context, fn func(
	repository.SeparationRepository,
	repository.SeparationItemRepository,
	repository.QuantityRepository,
	repository.MediaRepository,
) error) error {
	return fn(s.sepRepo, s.itemRepo, s.qtyRepo, nil)
}

// stubOrderParser devolve linhas fixas, ignorando o conteúdo do arquivo.
type stubOrderParser struct {
	rows []appsep.ParsedOrderRow
	err  error
}

func (s *stubOrderParser) Parse(io.Reader) ([]appsep.ParsedOrderRow, error) {
	return s.rows, s.err
}

func testActivity() *audit.ActivityLogger {
	return audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Reforço
// ──────────────────────────────────────────────────────────────────────────────

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// O reforço SOMA sobre as alocações existentes: SP01 5+2=7; RJ02 nasce com 4.
func TestReinforcement_SomaSobreQuantidadesExistentes(t *testing.T) {
	sepRepo := &fakeSepRepo{active: &entity.Separation{ID: "sep-1", UserID: cutTestUser, Status: entity.SeparationStatusActive}}
	itemRepo := newMemItemRepo()
	itemRepo.items["M001"] = &entity.SeparationItem{ID: "item-1", SeparationID: "sep-1", Codigo: "M001", Material: "Banana Prata"}
	qtyRepo := newMemQtyRepo()
	qtyRepo.set("item-1", "SP01", qty(5))

	parser := &stubOrderParser{rows: []appsep.ParsedOrderRow{{
		Codigo:      "M001",
		Material:    "Banana Prata",
		Quantidades: map[string]decimal.Decimal{"SP01": qty(2), "RJ02": qty(4)},
	}}}
	uc := appsep.NewReinforcementUseCase(
		&stubTxRunner{itemRepo: itemRepo, qtyRepo: qtyRepo}, sepRepo, parser, testActivity())

	err := uc.Apply(context.Background(), cutTestUser, "reforco.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	assert.True(t, qtyRepo.quantities["item-1"]["SP01"].Equal(qty(7)),
		"SP01 deve somar 5+2=7, veio %s", qtyRepo.quantities["item-1"]["SP01"])
	assert.True(t, qtyRepo.quantities["item-1"]["RJ02"].Equal(qty(4)),
		"RJ02 não existia; deve nascer com 4")
}

// Material ausente da separação vira item novo com as quantidades do reforço.
func TestReinforcement_MaterialNovoCriaItem(t *testing.T) {
	sepRepo := &fakeSepRepo{active: &entity.Separation{ID: "sep-1", UserID: cutTestUser, Status: entity.SeparationStatusActive}}
	itemRepo := newMemItemRepo()
	qtyRepo := newMemQtyRepo()

	parser := &stubOrderParser{rows: []appsep.ParsedOrderRow{{
		Codigo:      "m002",
		Material:    "Melão Amarelo",
		Quantidades: map[string]decimal.Decimal{"SP01": qty(3)},
	}}}
	uc := appsep.NewReinforcementUseCase(
		&stubTxRunner{itemRepo: itemRepo, qtyRepo: qtyRepo}, sepRepo, parser, testActivity())

	require.NoError(t, uc.Apply(context.Background(), cutTestUser, "reforco.xlsx", strings.NewReader("")))

	item := itemRepo.items["M002"]
	require.NotNil(t, item, "o código deve ser normalizado para maiúsculas e o item criado")
	assert.True(t, qtyRepo.quantities[item.ID]["SP01"].Equal(qty(3)))
}

func TestReinforcement_SemSeparacaoAtiva(t *testing.T) {
	uc := appsep.NewReinforcementUseCase(
		&stubTxRunner{}, &fakeSepRepo{}, &stubOrderParser{}, testActivity())

	err := uc.Apply(context.Background(), cutTestUser, "reforco.xlsx", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrNoActiveSeparation)
}
