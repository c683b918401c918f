package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeAccents decompõe (NFD) e remove as marcas combinantes (Mn).
var removeAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Material normaliza a descrição de um material para comparação:
// remove acentos, colapsa espaços e converte para maiúsculas.
// Planilhas de pedidos chegam com "AÇÚCAR CRISTAL" e "Acucar Cristal" para o mesmo item.
func Material(s string) string {
	out, _, err := transform.String(removeAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.Join(strings.Fields(out), " "))
}

// Codigo normaliza um código de material ou loja: sem espaços nas bordas, maiúsculas.
func Codigo(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
