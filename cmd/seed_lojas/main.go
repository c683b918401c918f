// seed_lojas gera um script SQL para popular o cadastro de lojas a partir de
// uma planilha xlsx com as colunas CODIGO, NOME e ZONA.
//
// Uso: go run ./cmd/seed_lojas [caminho/Lojas.xlsx]
// Por padrão procura Lojas.xlsx no diretório atual.
// Escreve: internal/infrastructure/postgres/migrations/007_seed_lojas.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	xlsxPath := "Lojas.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir planilha: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		fmt.Fprintln(os.Stderr, "Planilha sem abas")
		os.Exit(1)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler aba %q: %v\n", sheets[0], err)
		os.Exit(1)
	}
	if len(rows) < 2 {
		fmt.Fprintln(os.Stderr, "Planilha de lojas vazia")
		os.Exit(1)
	}

	idxCodigo, idxNome, idxZona := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "CODIGO":
			idxCodigo = i
		case "NOME":
			idxNome = i
		case "ZONA":
			idxZona = i
		}
	}
	if idxCodigo < 0 || idxNome < 0 {
		fmt.Fprintln(os.Stderr, "Cabeçalho deve conter CODIGO e NOME")
		os.Exit(1)
	}

	type loja struct{ codigo, nome, zona string }
	seen := make(map[string]bool)
	var lojas []loja
	for _, row := range rows[1:] {
		l := loja{
			codigo: strings.ToUpper(strings.TrimSpace(cell(row, idxCodigo))),
			nome:   strings.TrimSpace(cell(row, idxNome)),
			zona:   strings.TrimSpace(cell(row, idxZona)),
		}
		if l.codigo == "" || l.nome == "" || seen[l.codigo] {
			continue
		}
		seen[l.codigo] = true
		lojas = append(lojas, l)
	}

	// Saída estável, ordenada por código
	sort.Slice(lojas, func(i, j int) bool { return lojas[i].codigo < lojas[j].codigo })

	var sb strings.Builder
	sb.WriteString("-- Gerado por cmd/seed_lojas a partir de " + filepath.Base(xlsxPath) + "\n")
	sb.WriteString("INSERT INTO lojas (id, codigo, nome, zona, ativa) VALUES\n")
	for i, l := range lojas {
		sep := ","
		if i == len(lojas)-1 {
			sep = ""
		}
		fmt.Fprintf(&sb, "  (gen_random_uuid(), %s, %s, %s, true)%s\n",
			quote(l.codigo), quote(l.nome), quote(l.zona), sep)
	}
	sb.WriteString("ON CONFLICT (codigo) DO UPDATE SET nome = EXCLUDED.nome, zona = EXCLUDED.zona;\n")

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "007_seed_lojas.sql")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escrever %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("%d lojas escritas em %s\n", len(lojas), outPath)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
