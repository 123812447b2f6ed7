package payslip

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayslip() payroll.Payslip {
	name, code := "Asha Rao", "EMP-001"
	paid := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	record := payroll.PayrollRecord{
		ID:                 "rec-1",
		EmployeeID:         "emp-1",
		EmployeeName:       &name,
		EmployeeCode:       &code,
		Month:              payroll.June,
		Year:               2024,
		BasicSalary:        decimal.NewFromInt(30000),
		HouseRentAllowance: decimal.NewFromInt(4500),
		ProfessionalTax:    decimal.NewFromInt(200),
		Paid:               true,
		PaymentDate:        &paid,
	}
	calc := payroll.NewCalculator(payroll.DefaultPolicy())
	return calc.BuildPayslip("SmartHR", calc.Normalize(record))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, samplePayslip()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderPDF_PendingWithoutDate(t *testing.T) {
	p := samplePayslip()
	p.Status = payroll.PaymentStatusPending
	p.PaymentDate = nil

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, p))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderPDF_AccentedNames(t *testing.T) {
	p := samplePayslip()
	p.CompanyName = "Société Générale"
	p.Employee.Name = "José Müller"
	p.Employee.Department = "Finanças"

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, p))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	doc := layout(p)
	doc.SetCompression(false)
	buf.Reset()
	require.NoError(t, doc.Output(&buf))

	// text is written in the core fonts' cp1252, not raw UTF-8
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("Jos\xe9 M\xfcller")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("Soci\xe9t\xe9 G\xe9n\xe9rale")))
	assert.False(t, bytes.Contains(buf.Bytes(), []byte("José")))
}
