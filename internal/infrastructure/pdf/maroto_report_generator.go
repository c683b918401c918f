// Package pdf implementa a representação gráfica (PDF) do relatório de
// separação usando Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título da separação  │  Data de emissão            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOJAS: códigos das lojas cobertas pela separação           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Material | Tipo | Qtde Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: totais gerais                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/colhetron/separacao-api/internal/application/billing"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 21, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa billing.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSeparationReport gera o PDF do relatório e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateSeparationReport(
	title string,
	lojas []string,
	rows []appbilling.SheetRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Separação", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(lojasRow(lojas))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título da separação (esq) e data de emissão (dir).
func headerRow(title string) core.Row {
	emitido := time.Now().Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Colhetron — Separação de Pedidos", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("RELATÓRIO DE SEPARAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+emitido, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// lojasRow: códigos das lojas cobertas.
func lojasRow(lojas []string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("LOJAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(lojas, "  |  "), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de materiais.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Material", 6, align.Left),
		h("Tipo", 1, align.Center),
		h("Qtde Total", 3, align.Right),
	)
}

// tableRows: uma linha por material da separação.
func tableRows(rows []appbilling.SheetRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.Codigo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				r.Material,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				r.TipoSepar,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatQuantidade(r.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: quantidade geral e número de materiais.
func totalsRow(rows []appbilling.SheetRow) core.Row {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}

	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Materiais:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			}),
			text.New("TOTAL GERAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", len(rows)), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 1,
			}),
			text.New(formatQuantidade(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQuantidade usa vírgula decimal, sem zeros à direita supérfluos.
func formatQuantidade(d decimal.Decimal) string {
	s := d.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")
	return strings.Replace(s, ".", ",", 1)
}
