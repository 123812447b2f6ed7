package payslip

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/go-pdf/fpdf"
)

const ContentTypePDF = "application/pdf"

const (
	pageWidth   = 190.0
	labelWidth  = 60.0
	amountWidth = 35.0
	rowHeight   = 8.0
)

// RenderPDF writes p as a single-page A4 payslip.
func RenderPDF(w io.Writer, p payroll.Payslip) error {
	if err := layout(p).Output(w); err != nil {
		return fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return nil
}

func layout(p payroll.Payslip) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %d", p.Period.Month, p.Period.Year), false)
	pdf.AddPage()

	// core fonts are cp1252; names and departments arrive as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, tr(p.CompanyName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(pageWidth, 8, fmt.Sprintf("Payslip for %s %d", p.Period.Month, p.Period.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range [][2]string{
		{"Employee", p.Employee.Name},
		{"Employee ID", p.Employee.Code},
		{"Department", p.Employee.Department},
		{"Position", p.Employee.Position},
		{"Status", string(p.Status)},
	} {
		pdf.CellFormat(40, 6, kv[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth-40, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	if p.PaymentDate != nil {
		pdf.CellFormat(40, 6, "Payment Date:", "", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth-40, 6, p.PaymentDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(labelWidth, rowHeight, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(labelWidth, rowHeight, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, "Amount", "1", 1, "R", true, 0, "")

	rows := p.Table()
	for i, row := range rows {
		if i == len(rows)-1 {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(labelWidth, rowHeight, row.EarningLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountWidth, rowHeight, row.EarningAmount, "1", 0, "R", false, 0, "")
		pdf.CellFormat(labelWidth, rowHeight, row.DeductionLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountWidth, rowHeight, row.DeductionAmount, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelWidth*2+amountWidth, 10, "Net Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, 10, payroll.FormatAmount(p.NetSalary), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Ln(2)
	pdf.CellFormat(pageWidth, 6,
		fmt.Sprintf("Employer PF contribution: %s", payroll.FormatAmount(p.EmployerPF)),
		"", 1, "L", false, 0, "")

	return pdf
}
