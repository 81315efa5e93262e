package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Los nombres de producto vienen en portugués (Óleo, Serviço, Armazém); la
// búsqueda debe ignorar tildes además de mayúsculas.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un texto para comparación: minúsculas y sin marcas diacríticas.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Contains reporta si s contiene substr comparando en forma normalizada.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
