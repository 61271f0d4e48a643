package pdf

import (
	"fmt"

	"github.com/condomaster/api/internal/models"
)

// slipHeight is the height of one fine notification slip in mm. Slips
// stack on the page and are meant to be cut apart for distribution.
const slipHeight = 70.0

// FineSlips renders one notification slip per fined house, paginated.
// The houses slice must already be filtered to the fee's targets.
func FineSlips(meeting *models.Meeting, fee *models.FeeConfig, houses []models.House) ([]byte, error) {
	doc, tr := newDoc()
	doc.SetAutoPageBreak(false, 0)

	pageHeight := 279.4 // letter
	y := pageHeight

	for _, house := range houses {
		if y+slipHeight > pageHeight {
			doc.AddPage()
			y = 10
		}

		doc.SetXY(10, y)
		doc.SetFillColor(130, 30, 30)
		doc.SetTextColor(255, 255, 255)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(190, 9, tr("Notificación de Multa"), "1", 1, "C", true, 0, "")

		doc.SetTextColor(0, 0, 0)
		doc.SetX(10)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(190, 6, tr(fmt.Sprintf(
			"Casa %s - %s", house.Number, house.OwnerName)), "LR", "L", false)

		doc.SetX(10)
		doc.MultiCell(190, 6, tr(fmt.Sprintf(
			"Por inasistencia a la asamblea \"%s\" celebrada el %s, se aplica una "+
				"multa de %s, cobrada junto al período %s %d.",
			meeting.Name, meeting.Date, CLP(fee.DefaultAmount),
			MonthName(fee.StartMonth), fee.StartYear)), "LR", "L", false)

		doc.SetX(10)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(190, 6, tr(
			"Las multas por inasistencia fueron aprobadas en asamblea de copropietarios."),
			"LRB", "L", false)

		y += slipHeight
	}

	// A meeting with full attendance still yields a document, with a
	// single informative page instead of slips.
	if len(houses) == 0 {
		doc.AddPage()
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 10, tr("Notificación de Multas"), "", 1, "C", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, tr(fmt.Sprintf(
			"Asamblea \"%s\": sin inasistencias, no se generaron multas.", meeting.Name)),
			"", 1, "C", false, 0, "")
	}

	return render(doc)
}
