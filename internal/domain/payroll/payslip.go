package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
)

// PayslipLine is one labelled amount of a payslip.
type PayslipLine struct {
	Label  string
	Amount decimal.Decimal
}

// PayslipEmployee is the identity block printed on a payslip.
type PayslipEmployee struct {
	ID         string
	Code       string
	Name       string
	Department string
	Position   string
}

// Payslip is a read-only projection of a PayrollRecord. Amounts are kept
// exact; Table rounds them for presentation.
type Payslip struct {
	CompanyName string
	RecordID    string
	Employee    PayslipEmployee
	Period      Period

	Earnings   []PayslipLine
	Deductions []PayslipLine

	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	EmployerPF      decimal.Decimal

	Status      PaymentStatus
	PaymentDate *time.Time
}

// PayslipRow is one line of the two-column earnings/deductions table.
// Empty labels pad the shorter column.
type PayslipRow struct {
	EarningLabel    string
	EarningAmount   string
	DeductionLabel  string
	DeductionAmount string
}

// BuildPayslip projects r into a payslip. It does not modify r. Net salary
// is the stored value written by Normalize, not a fresh computation.
func (c Calculator) BuildPayslip(companyName string, r PayrollRecord) Payslip {
	employeePF, employerPF := c.ProvidentFund(r)

	status := PaymentStatusPending
	if r.Paid {
		status = PaymentStatusPaid
	}

	return Payslip{
		CompanyName: companyName,
		RecordID:    r.ID,
		Employee: PayslipEmployee{
			ID:         r.EmployeeID,
			Code:       deref(r.EmployeeCode),
			Name:       deref(r.EmployeeName),
			Department: deref(r.DepartmentName),
			Position:   deref(r.Position),
		},
		Period: r.Period(),
		Earnings: []PayslipLine{
			{Label: "Basic Salary", Amount: r.BasicSalary},
			{Label: "House Rent Allowance", Amount: r.HouseRentAllowance},
			{Label: "Travel Allowance", Amount: r.TravelAllowance},
			{Label: "Medical Allowance", Amount: r.MedicalAllowance},
			{Label: "Special Allowance", Amount: r.SpecialAllowance},
			{Label: "Overtime Pay", Amount: c.OvertimePay(r)},
		},
		Deductions: []PayslipLine{
			{Label: "Provident Fund (Employee)", Amount: employeePF},
			{Label: "Professional Tax", Amount: r.ProfessionalTax},
			{Label: "Income Tax", Amount: r.IncomeTax},
			{Label: "Other Deductions", Amount: r.OtherDeductions},
		},
		TotalEarnings:   c.TotalEarnings(r),
		TotalDeductions: c.TotalDeductions(r),
		NetSalary:       r.NetSalary,
		EmployerPF:      employerPF,
		Status:          status,
		PaymentDate:     r.PaymentDate,
	}
}

// Table lays earnings and deductions side by side, followed by the totals row.
func (p Payslip) Table() []PayslipRow {
	n := max(len(p.Earnings), len(p.Deductions))
	rows := make([]PayslipRow, 0, n+1)
	for i := 0; i < n; i++ {
		var row PayslipRow
		if i < len(p.Earnings) {
			row.EarningLabel = p.Earnings[i].Label
			row.EarningAmount = FormatAmount(p.Earnings[i].Amount)
		}
		if i < len(p.Deductions) {
			row.DeductionLabel = p.Deductions[i].Label
			row.DeductionAmount = FormatAmount(p.Deductions[i].Amount)
		}
		rows = append(rows, row)
	}
	rows = append(rows, PayslipRow{
		EarningLabel:    "Total Earnings",
		EarningAmount:   FormatAmount(p.TotalEarnings),
		DeductionLabel:  "Total Deductions",
		DeductionAmount: FormatAmount(p.TotalDeductions),
	})
	return rows
}

// FormatAmount rounds to two decimal places for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
