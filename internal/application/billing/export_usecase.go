package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/repository"
)

// ExportUseCase gera a planilha de faturamento e o relatório PDF da separação
// ativa: matriz materiais × lojas com as quantidades alocadas.
type ExportUseCase struct {
	sepRepo  repository.SeparationRepository
	itemRepo repository.SeparationItemRepository
	qtyRepo  repository.QuantityRepository
	writer   SheetWriter
	pdf      ReportPDFGenerator
	activity *audit.ActivityLogger
}

// NewExportUseCase constrói o caso de uso de exportação.
func NewExportUseCase(
	sepRepo repository.SeparationRepository,
	itemRepo repository.SeparationItemRepository,
	qtyRepo repository.QuantityRepository,
	writer SheetWriter,
	pdf ReportPDFGenerator,
	activity *audit.ActivityLogger,
) *ExportUseCase {
	return &ExportUseCase{
		sepRepo:  sepRepo,
		itemRepo: itemRepo,
		qtyRepo:  qtyRepo,
		writer:   writer,
		pdf:      pdf,
		activity: activity,
	}
}

// GenerateSheet monta a matriz da separação ativa e devolve o xlsx + nome do arquivo.
func (uc *ExportUseCase) GenerateSheet(userID string) ([]byte, string, error) {
	lojas, rows, err := uc.collect(userID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.writer.Write(lojas, rows)
	if err != nil {
		return nil, "", fmt.Errorf("gerar planilha de faturamento: %w", err)
	}
	uc.activity.Record(userID, audit.ActionExport, map[string]any{"formato": "xlsx", "rows": len(rows)})
	filename := fmt.Sprintf("faturamento_%s.xlsx", time.Now().Format("2006-01-02"))
	return data, filename, nil
}

// GenerateReportPDF gera a representação gráfica (PDF) da separação ativa.
func (uc *ExportUseCase) GenerateReportPDF(userID string) ([]byte, string, error) {
	lojas, rows, err := uc.collect(userID)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("Relatório de Separação — %s", time.Now().Format("02/01/2006"))
	data, err := uc.pdf.GenerateSeparationReport(title, lojas, rows)
	if err != nil {
		return nil, "", fmt.Errorf("gerar relatório PDF: %w", err)
	}
	uc.activity.Record(userID, audit.ActionExport, map[string]any{"formato": "pdf", "rows": len(rows)})
	filename := fmt.Sprintf("separacao_%s.pdf", time.Now().Format("2006-01-02"))
	return data, filename, nil
}

// collect carrega itens e quantidades da separação ativa e deriva a lista de
// lojas presentes (ordenada) e as linhas da matriz.
func (uc *ExportUseCase) collect(userID string) ([]string, []SheetRow, error) {
	sep, err := uc.sepRepo.GetActive(userID)
	if err != nil {
		return nil, nil, err
	}
	if sep == nil {
		return nil, nil, domain.ErrNoActiveSeparation
	}
	items, err := uc.itemRepo.ListBySeparation(sep.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, domain.ErrNotFound
	}

	lojaSet := map[string]struct{}{}
	rows := make([]SheetRow, 0, len(items))
	for _, item := range items {
		qts, err := uc.qtyRepo.ListByItem(item.ID)
		if err != nil {
			return nil, nil, err
		}
		row := SheetRow{
			Codigo:      item.Codigo,
			Material:    item.Material,
			TipoSepar:   item.TipoSepar,
			Quantidades: make(map[string]decimal.Decimal, len(qts)),
			Total:       decimal.Zero,
		}
		for _, q := range qts {
			row.Quantidades[q.LojaCodigo] = q.Quantidade
			row.Total = row.Total.Add(q.Quantidade)
			lojaSet[q.LojaCodigo] = struct{}{}
		}
		rows = append(rows, row)
	}

	lojas := make([]string, 0, len(lojaSet))
	for loja := range lojaSet {
		lojas = append(lojas, loja)
	}
	sort.Strings(lojas)
	return lojas, rows, nil
}
