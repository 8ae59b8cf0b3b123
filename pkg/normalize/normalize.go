package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper descompone (NFD), elimina las marcas diacríticas y recompone (NFC).
// Así "Suramérica" y "Suramerica" normalizan al mismo valor.
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text normaliza un texto para búsqueda: sin tildes, en minúsculas y sin
// espacios extremos. Se persiste junto al valor original (name_normalized)
// para que la búsqueda sea un filtro simple de igualdad/prefijo en SQL.
func Text(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		// Entrada no transformable: degradar a minúsculas simples.
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
