package pdf

import (
	"fmt"

	"github.com/condomaster/api/internal/models"
)

// Voucher renders the payment receipt: a header band with the folio,
// the unit data, the itemized concept table and the total box.
func Voucher(payment *models.Payment, house *models.House) ([]byte, error) {
	doc, tr := newDoc()
	doc.AddPage()

	doc.SetFillColor(31, 78, 121)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 12, tr("Comprobante de Pago"), "", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, tr(fmt.Sprintf("Folio N° %s", payment.VoucherID)), "", 1, "C", true, 0, "")
	doc.Ln(6)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 11)

	field := func(label, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	field("Casa:", house.Number)
	field("Residente:", house.OwnerName)
	field("Período:", fmt.Sprintf("%s %d", MonthName(payment.Month), payment.Year))
	field("Fecha de pago:", payment.Date)
	if payment.PayerName != "" {
		field("Pagado por:", payment.PayerName)
	}
	if payment.Receiver != "" {
		field("Recibido por:", payment.Receiver)
	}
	doc.Ln(6)

	doc.SetFillColor(230, 235, 245)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(130, 8, tr("Concepto"), "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 8, tr("Monto"), "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, line := range payment.Breakdown {
		doc.CellFormat(130, 8, tr(line.Name), "1", 0, "L", false, 0, "")
		doc.CellFormat(50, 8, CLP(line.Amount), "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 12)
	doc.SetFillColor(31, 78, 121)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(130, 10, tr("TOTAL PAGADO"), "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 10, CLP(payment.Amount), "1", 1, "R", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 9)
	doc.CellFormat(0, 6, tr("Este comprobante acredita el pago de los conceptos detallados."), "", 1, "C", false, 0, "")

	return render(doc)
}
