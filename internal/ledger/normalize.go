package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Concept markers matched against normalized fee names. Fee names are
// free text entered in Spanish, so matching must survive accents and
// casing ("Gasto Común", "GASTO COMUN", "gastos común" all hit).
var commonExpenseMarkers = []string{"gasto comun", "gastos comun"}

const parkingMarker = "estacionamiento"

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lower-cases a fee name and strips diacritics so concept
// matching is accent- and case-insensitive.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		// Transform failures only occur on invalid UTF-8; fall back to
		// the lower-cased input so matching degrades instead of panicking.
		return strings.ToLower(s)
	}
	return out
}

// IsCommonExpense reports whether a fee name denotes the "gasto comun"
// concept, which board members are categorically exempt from.
func IsCommonExpense(name string) bool {
	if name == "" {
		return false
	}
	n := Normalize(name)
	for _, marker := range commonExpenseMarkers {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}

// IsParking reports whether a fee name denotes a parking charge, which
// only applies to houses with a parking slot.
func IsParking(name string) bool {
	if name == "" {
		return false
	}
	return strings.Contains(Normalize(name), parkingMarker)
}
