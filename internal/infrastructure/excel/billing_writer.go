package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/colhetron/separacao-api/internal/application/billing"
)

var _ billing.SheetWriter = (*BillingWriter)(nil)

// BillingWriter gera a planilha de faturamento: matriz materiais × lojas
// da separação ativa, com coluna de total por material.
type BillingWriter struct{}

func NewBillingWriter() *BillingWriter {
	return &BillingWriter{}
}

const billingSheet = "Faturamento"

func (w *BillingWriter) Write(lojas []string, rows []billing.SheetRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(billingSheet)
	if err != nil {
		return nil, fmt.Errorf("criar aba: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remover aba padrão: %w", err)
	}

	header := []any{"CODIGO", "MATERIAL", "TIPO SEPAR"}
	for _, loja := range lojas {
		header = append(header, loja)
	}
	header = append(header, "TOTAL")
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDDDDD"}},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(billingSheet, "A1", last, headerStyle)
	}

	for i, row := range rows {
		values := []any{row.Codigo, row.Material, row.TipoSepar}
		for _, loja := range lojas {
			if qty, ok := row.Quantidades[loja]; ok && !qty.IsZero() {
				v, _ := qty.Float64()
				values = append(values, v)
			} else {
				values = append(values, nil)
			}
		}
		total, _ := row.Total.Float64()
		values = append(values, total)
		if err := setRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(billingSheet, "B", "B", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("coordenada da célula: %w", err)
		}
		if err := f.SetCellValue(billingSheet, cell, v); err != nil {
			return fmt.Errorf("escrever célula %s: %w", cell, err)
		}
	}
	return nil
}
