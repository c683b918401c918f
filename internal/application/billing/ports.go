package billing

import "github.com/shopspring/decimal"

// SheetRow uma linha da planilha/relatório de faturamento: material e
// quantidades por loja da separação ativa.
type SheetRow struct {
	Codigo      string
	Material    string
	TipoSepar   string
	Quantidades map[string]decimal.Decimal // código da loja -> quantidade
	Total       decimal.Decimal
}

// SheetWriter porto para escrita da planilha de faturamento (xlsx).
// Lojas define a ordem das colunas.
type SheetWriter interface {
	Write(lojas []string, rows []SheetRow) ([]byte, error)
}

// ReportPDFGenerator porto para a representação gráfica (PDF) do relatório de separação.
type ReportPDFGenerator interface {
	GenerateSeparationReport(title string, lojas []string, rows []SheetRow) ([]byte, error)
}
