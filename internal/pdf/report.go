package pdf

import (
	"fmt"

	"github.com/condomaster/api/internal/models"
)

// ExpenseReport renders the monthly expense report: the expense table
// followed by the per-category summary with percentage shares.
func ExpenseReport(summary *models.ExpenseSummary, expenses []models.Expense) ([]byte, error) {
	doc, tr := newDoc()
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 10, tr("Informe de Gastos"), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, tr(fmt.Sprintf("%s %d", MonthName(summary.Month), summary.Year)), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFillColor(230, 235, 245)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(95, 8, tr("Descripción"), "1", 0, "L", true, 0, "")
	doc.CellFormat(45, 8, tr("Categoría"), "1", 0, "L", true, 0, "")
	doc.CellFormat(40, 8, tr("Monto"), "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, expense := range expenses {
		doc.CellFormat(95, 8, tr(expense.Description), "1", 0, "L", false, 0, "")
		doc.CellFormat(45, 8, tr(expense.Category), "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 8, CLP(expense.Amount), "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(31, 78, 121)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(140, 9, tr(fmt.Sprintf("TOTAL (%d gastos)", summary.Count)), "1", 0, "L", true, 0, "")
	doc.CellFormat(40, 9, CLP(summary.Total), "1", 1, "R", true, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Resumen por categoría"), "", 1, "L", false, 0, "")

	doc.SetFillColor(230, 235, 245)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(95, 8, tr("Categoría"), "1", 0, "L", true, 0, "")
	doc.CellFormat(45, 8, tr("Monto"), "1", 0, "R", true, 0, "")
	doc.CellFormat(40, 8, tr("Participación"), "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, category := range summary.Categories {
		doc.CellFormat(95, 8, tr(category.Category), "1", 0, "L", false, 0, "")
		doc.CellFormat(45, 8, CLP(category.Amount), "1", 0, "R", false, 0, "")
		doc.CellFormat(40, 8, fmt.Sprintf("%.1f%%", category.Share), "1", 1, "R", false, 0, "")
	}

	return render(doc)
}
