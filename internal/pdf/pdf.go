// Package pdf renders the printable documents of the administration:
// payment vouchers, payroll slips, fine notification slips and the
// monthly expense report. Rendering is pure: every function takes the
// already-loaded data and returns the document bytes.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// monthNames are the Spanish month names indexed 0 to 11.
var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name for a 0-indexed month.
func MonthName(month int) string {
	if month < 0 || month > 11 {
		return fmt.Sprintf("Mes %d", month)
	}
	return monthNames[month]
}

// CLP formats an amount in Chilean pesos with dot thousand separators.
func CLP(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var out bytes.Buffer
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(d)
	}
	return sign + "$" + out.String()
}

// newDoc creates a letter-size portrait document with the translator
// needed for accented Spanish text in the core fonts.
func newDoc() (*fpdf.Fpdf, func(string) string) {
	doc := fpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetAutoPageBreak(true, 15)
	return doc, tr
}

// render flushes the document into a byte slice.
func render(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
