// Package excel adapta planilhas xlsx (pedidos, cadastros e faturamento)
// aos portos da camada de aplicação, usando excelize.
package excel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/pkg/normalize"
)

// Layout esperado da planilha de pedidos: primeira linha de cabeçalho com
// CODIGO, MATERIAL, TIPO SEPAR e uma coluna por código de loja. As linhas
// seguintes trazem um material cada, com as quantidades pedidas por loja.
const (
	colCodigo    = "CODIGO"
	colMaterial  = "MATERIAL"
	colTipoSepar = "TIPO SEPAR"
)

var _ separation.OrderSheetParser = (*OrderParser)(nil)

// OrderParser lê a planilha de pedidos da separação.
type OrderParser struct{}

func NewOrderParser() *OrderParser {
	return &OrderParser{}
}

// Parse lê a primeira aba da planilha. Linhas sem material são ignoradas;
// quantidades vazias ou não numéricas contam como zero.
func (p *OrderParser) Parse(r io.Reader) ([]separation.ParsedOrderRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	rows, err := firstSheetRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("planilha de pedidos vazia")
	}

	header := rows[0]
	idxCodigo, idxMaterial, idxTipo := -1, -1, -1
	var lojas []struct {
		col    int
		codigo string
	}
	for i, h := range header {
		switch name := strings.ToUpper(strings.TrimSpace(h)); name {
		case colCodigo:
			idxCodigo = i
		case colMaterial:
			idxMaterial = i
		case colTipoSepar:
			idxTipo = i
		case "":
		default:
			lojas = append(lojas, struct {
				col    int
				codigo string
			}{i, normalize.Codigo(name)})
		}
	}
	if idxMaterial < 0 {
		return nil, fmt.Errorf("planilha de pedidos sem coluna %s", colMaterial)
	}
	if len(lojas) == 0 {
		return nil, fmt.Errorf("planilha de pedidos sem colunas de loja")
	}

	var out []separation.ParsedOrderRow
	for _, row := range rows[1:] {
		material := strings.TrimSpace(cell(row, idxMaterial))
		if material == "" {
			continue
		}
		parsed := separation.ParsedOrderRow{
			Material:    material,
			Codigo:      normalize.Codigo(cell(row, idxCodigo)),
			TipoSepar:   strings.ToUpper(strings.TrimSpace(cell(row, idxTipo))),
			Quantidades: make(map[string]decimal.Decimal, len(lojas)),
		}
		for _, lj := range lojas {
			qty, ok := parseQuantity(cell(row, lj.col))
			if !ok {
				continue
			}
			parsed.Quantidades[lj.codigo] = qty
		}
		out = append(out, parsed)
	}
	return out, nil
}

// CadastroParser lê as planilhas de importação de lojas e materiais.
type CadastroParser struct{}

func NewCadastroParser() *CadastroParser {
	return &CadastroParser{}
}

// ParseLojas espera cabeçalho CODIGO, NOME, REGIAO, ZONA.
func (p *CadastroParser) ParseLojas(r io.Reader) ([]*entity.Loja, error) {
	rows, err := openRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows[0], "CODIGO", "NOME")
	if err != nil {
		return nil, fmt.Errorf("planilha de lojas: %w", err)
	}
	idxZona := findHeader(rows[0], "ZONA")

	now := time.Now().UTC()
	var out []*entity.Loja
	for _, row := range rows[1:] {
		codigo := normalize.Codigo(cell(row, idx["CODIGO"]))
		nome := strings.TrimSpace(cell(row, idx["NOME"]))
		if codigo == "" || nome == "" {
			continue
		}
		out = append(out, &entity.Loja{
			ID:        uuid.New().String(),
			Codigo:    codigo,
			Nome:      nome,
			Zona:      strings.TrimSpace(cell(row, idxZona)),
			Ativa:     true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out, nil
}

// ParseMateriais espera cabeçalho CODIGO, DESCRICAO e, opcionalmente,
// CATEGORIA e UNIDADE.
func (p *CadastroParser) ParseMateriais(r io.Reader) ([]*entity.Material, error) {
	rows, err := openRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows[0], "CODIGO", "DESCRICAO")
	if err != nil {
		return nil, fmt.Errorf("planilha de materiais: %w", err)
	}
	idxCategoria := findHeader(rows[0], "CATEGORIA")
	idxUnidade := findHeader(rows[0], "UNIDADE")

	now := time.Now().UTC()
	var out []*entity.Material
	for _, row := range rows[1:] {
		codigo := normalize.Codigo(cell(row, idx["CODIGO"]))
		descricao := strings.TrimSpace(cell(row, idx["DESCRICAO"]))
		if codigo == "" || descricao == "" {
			continue
		}
		out = append(out, &entity.Material{
			ID:                   uuid.New().String(),
			Codigo:               codigo,
			Descricao:            descricao,
			DescricaoNormalizada: normalize.Material(descricao),
			Categoria:            strings.TrimSpace(cell(row, idxCategoria)),
			UnidadeMedida:        strings.TrimSpace(cell(row, idxUnidade)),
			Ativo:                true,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}
	return out, nil
}

// ---------------------- auxiliares ----------------------

func openRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	rows, err := firstSheetRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("planilha vazia")
	}
	return rows, nil
}

func firstSheetRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("planilha sem abas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ler aba %q: %w", sheets[0], err)
	}
	return rows, nil
}

func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for _, want := range required {
		i := findHeader(header, want)
		if i < 0 {
			return nil, fmt.Errorf("coluna %s ausente", want)
		}
		idx[want] = i
	}
	return idx, nil
}

func findHeader(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// cell devolve a célula na posição i; GetRows trunca linhas curtas, então
// índices fora do alcance valem vazio.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseQuantity aceita vírgula decimal (formato brasileiro) além de ponto.
func parseQuantity(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	if strings.Contains(raw, ",") {
		// formato brasileiro: ponto de milhar, vírgula decimal
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
