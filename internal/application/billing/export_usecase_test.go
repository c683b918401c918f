package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colhetron/separacao-api/internal/application/audit"
	appbilling "github.com/colhetron/separacao-api/internal/application/billing"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

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

type fakeItemRepo struct {
	items []*entity.SeparationItem
}

func (f *fakeItemRepo) CreateBatch([]*entity.SeparationItem) error { return nil }
func (f *fakeItemRepo) GetByCodigo(_, _ string) (*entity.SeparationItem, error) {
	return nil, nil
}
func (f *fakeItemRepo) ListBySeparation(string) ([]*entity.SeparationItem, error) {
	return f.items, nil
}

type fakeQtyRepo struct {
	byItem map[string]map[string]decimal.Decimal // itemID -> loja -> quantidade
}

func (f *fakeQtyRepo) UpsertBatch([]*entity.SeparationQuantity) error { return nil }
func (f *fakeQtyRepo) Upsert(*entity.SeparationQuantity) error        { return nil }
func (f *fakeQtyRepo) ListByItem(itemID string) ([]*entity.SeparationQuantity, error) {
	var out []*entity.SeparationQuantity
	for loja, q := range f.byItem[itemID] {
		out = append(out, &entity.SeparationQuantity{ItemID: itemID, LojaCodigo: loja, Quantidade: q})
	}
	return out, nil
}
func (f *fakeQtyRepo) Update(_, _ string, _ decimal.Decimal) error { return nil }
func (f *fakeQtyRepo) Delete(_, _ string) error                    { return nil }
func (f *fakeQtyRepo) SumByMaterial(_, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeActivityRepo struct{}

func (fakeActivityRepo) Create(*entity.ActivityLog) error { return nil }
func (fakeActivityRepo) ListByUser(string, int, int) ([]*entity.ActivityLog, error) {
	return nil, nil
}

// captureWriter guarda o que foi pedido para escrever e devolve bytes fixos.
type captureWriter struct {
	lojas []string
	rows  []appbilling.SheetRow
}

func (c *captureWriter) Write(lojas []string, rows []appbilling.SheetRow) ([]byte, error) {
	c.lojas = lojas
	c.rows = rows
	return []byte("xlsx"), nil
}

type capturePDF struct {
	title string
	lojas []string
	rows  []appbilling.SheetRow
}

func (c *capturePDF) GenerateSeparationReport(title string, lojas []string, rows []appbilling.SheetRow) ([]byte, error) {
	c.title = title
	c.lojas = lojas
	c.rows = rows
	return []byte("pdf"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const exportTestUser = "user-1"

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func buildExportUseCase(items []*entity.SeparationItem, byItem map[string]map[string]decimal.Decimal) (*appbilling.ExportUseCase, *captureWriter, *capturePDF) {
	sepRepo := &fakeSepRepo{active: &entity.Separation{ID: "sep-1", UserID: exportTestUser, Status: entity.SeparationStatusActive}}
	writer := &captureWriter{}
	pdf := &capturePDF{}
	activity := audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
	uc := appbilling.NewExportUseCase(
		sepRepo,
		&fakeItemRepo{items: items},
		&fakeQtyRepo{byItem: byItem},
		writer,
		pdf,
		activity,
	)
	return uc, writer, pdf
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// A matriz exportada espelha as alocações gravadas: quantidades por loja,
// total por material e lojas em ordem alfabética.
func TestGenerateSheet_MatrizEspelhaQuantidadesGravadas(t *testing.T) {
	items := []*entity.SeparationItem{
		{ID: "item-1", SeparationID: "sep-1", Codigo: "M001", Material: "Banana Prata", TipoSepar: "FRIOS"},
		{ID: "item-2", SeparationID: "sep-1", Codigo: "M002", Material: "Melão Amarelo", TipoSepar: "FRIOS"},
	}
	byItem := map[string]map[string]decimal.Decimal{
		"item-1": {"SP01": dec(5), "RJ02": dec(3)},
		"item-2": {"SP01": dec(2)},
	}
	uc, writer, _ := buildExportUseCase(items, byItem)

	data, filename, err := uc.GenerateSheet(exportTestUser)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Contains(t, filename, ".xlsx")

	assert.Equal(t, []string{"RJ02", "SP01"}, writer.lojas, "lojas em ordem alfabética")
	require.Len(t, writer.rows, 2)

	banana := writer.rows[0]
	assert.Equal(t, "M001", banana.Codigo)
	assert.True(t, banana.Quantidades["SP01"].Equal(dec(5)))
	assert.True(t, banana.Quantidades["RJ02"].Equal(dec(3)))
	assert.True(t, banana.Total.Equal(dec(8)), "total deve somar as lojas: 5+3")

	melao := writer.rows[1]
	assert.True(t, melao.Quantidades["SP01"].Equal(dec(2)))
	assert.True(t, melao.Total.Equal(dec(2)))
	_, temRJ := melao.Quantidades["RJ02"]
	assert.False(t, temRJ, "loja sem alocação não entra na linha")
}

func TestGenerateReportPDF_RecebeAMesmaMatriz(t *testing.T) {
	items := []*entity.SeparationItem{
		{ID: "item-1", SeparationID: "sep-1", Codigo: "M001", Material: "Banana Prata"},
	}
	byItem := map[string]map[string]decimal.Decimal{
		"item-1": {"SP01": dec(5)},
	}
	uc, _, pdf := buildExportUseCase(items, byItem)

	data, filename, err := uc.GenerateReportPDF(exportTestUser)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)
	assert.Contains(t, filename, ".pdf")
	assert.NotEmpty(t, pdf.title)
	assert.Equal(t, []string{"SP01"}, pdf.lojas)
	require.Len(t, pdf.rows, 1)
	assert.True(t, pdf.rows[0].Total.Equal(dec(5)))
}

func TestGenerateSheet_SemSeparacaoAtiva(t *testing.T) {
	writer := &captureWriter{}
	activity := audit.NewActivityLogger(fakeActivityRepo{}, logger.New(logger.Config{Env: "development", Level: "error"}))
	uc := appbilling.NewExportUseCase(&fakeSepRepo{}, &fakeItemRepo{}, &fakeQtyRepo{}, writer, &capturePDF{}, activity)

	_, _, err := uc.GenerateSheet(exportTestUser)
	assert.ErrorIs(t, err, domain.ErrNoActiveSeparation)
}

// Separação ativa sem itens não gera export vazio.
func TestGenerateSheet_SeparacaoSemItens(t *testing.T) {
	uc, _, _ := buildExportUseCase(nil, nil)

	_, _, err := uc.GenerateSheet(exportTestUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
