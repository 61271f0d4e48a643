package pdf

import (
	"fmt"

	"github.com/condomaster/api/internal/models"
)

// PayrollSlip renders the monthly salary settlement for an employee:
// identification, earnings and deductions tables, the net pay band and
// the signature lines.
func PayrollSlip(employee *models.Employee, payroll *models.Payroll, year, month int) ([]byte, error) {
	doc, tr := newDoc()
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 10, tr("Liquidación de Sueldo"), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, tr(fmt.Sprintf("%s %d", MonthName(month), year)), "", 1, "C", false, 0, "")
	doc.Ln(6)

	field := func(label, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	field("Nombre:", employee.Name)
	if employee.RUT != "" {
		field("RUT:", employee.RUT)
	}
	field("Cargo:", employee.Role)
	field("Fecha de ingreso:", employee.EntryDate)
	doc.Ln(6)

	tableHeader := func(title string) {
		doc.SetFillColor(230, 235, 245)
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(130, 8, tr(title), "1", 0, "L", true, 0, "")
		doc.CellFormat(50, 8, tr("Monto"), "1", 1, "R", true, 0, "")
		doc.SetFont("Helvetica", "", 11)
	}
	row := func(label string, amount int) {
		doc.CellFormat(130, 8, tr(label), "1", 0, "L", false, 0, "")
		doc.CellFormat(50, 8, CLP(amount), "1", 1, "R", false, 0, "")
	}

	tableHeader("Haberes")
	row("Sueldo bruto", payroll.GrossSalary)
	doc.Ln(4)

	tableHeader("Descuentos")
	row(fmt.Sprintf("AFP (%.2f%%)", employee.AFPPercentage), payroll.AFP)
	row(fmt.Sprintf("Fonasa (%.2f%%)", employee.FonasaPercentage), payroll.Fonasa)
	row(fmt.Sprintf("Seguro de cesantía (%.2f%%)", employee.CesantiaPercentage), payroll.Cesantia)
	doc.SetFont("Helvetica", "B", 11)
	row("Total descuentos", payroll.TotalDiscounts)
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 12)
	doc.SetFillColor(31, 78, 121)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(130, 10, tr("LÍQUIDO A PAGAR"), "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 10, CLP(payroll.Net), "1", 1, "R", true, 0, "")
	doc.SetTextColor(0, 0, 0)

	doc.Ln(14)
	doc.SetFont("Helvetica", "", 9)
	doc.MultiCell(0, 5, tr("Certifico que he recibido de mi empleador, a mi entera satisfacción, "+
		"el saldo líquido indicado en la presente liquidación, sin tener cargo ni cobro "+
		"posterior alguno que hacer."), "", "L", false)

	doc.Ln(18)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(85, 7, tr("__________________________"), "", 0, "C", false, 0, "")
	doc.CellFormat(10, 7, "", "", 0, "C", false, 0, "")
	doc.CellFormat(85, 7, tr("__________________________"), "", 1, "C", false, 0, "")
	doc.CellFormat(85, 7, tr("Firma empleador"), "", 0, "C", false, 0, "")
	doc.CellFormat(10, 7, "", "", 0, "C", false, 0, "")
	doc.CellFormat(85, 7, tr("Firma trabajador"), "", 1, "C", false, 0, "")

	return render(doc)
}
