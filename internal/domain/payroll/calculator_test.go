package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestCalculator_DefaultOvertimeRate(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	record := calc.Normalize(PayrollRecord{BasicSalary: d("20000")})
	assertDecimal(t, "100", record.OvertimeRate)

	// an explicit rate is kept
	record = calc.Normalize(PayrollRecord{BasicSalary: d("20000"), OvertimeRate: d("150")})
	assertDecimal(t, "150", record.OvertimeRate)
}

func TestCalculator_ProvidentFund(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	tests := []struct {
		name     string
		basic    string
		employee string
		employer string
	}{
		{"above ceiling is capped", "30000", "1800", "1995"},
		{"at ceiling", "15000", "1800", "1995"},
		{"below ceiling", "10000", "1200", "1330"},
		{"zero", "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employee, employer := calc.ProvidentFund(PayrollRecord{BasicSalary: d(tt.basic)})
			assertDecimal(t, tt.employee, employee)
			assertDecimal(t, tt.employer, employer)
			assert.Equal(t, tt.employee+".00", FormatAmount(employee))
		})
	}
}

func TestCalculator_NetSalaryIdentity(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	record := calc.Normalize(PayrollRecord{
		BasicSalary:        d("30000"),
		HouseRentAllowance: d("4500"),
		TravelAllowance:    d("3000"),
		MedicalAllowance:   d("1250"),
		SpecialAllowance:   d("500.50"),
		OvertimeHours:      d("10"),
		ProfessionalTax:    d("200"),
		IncomeTax:          d("1500"),
		OtherDeductions:    d("99.99"),
	})

	// overtime: 10h at 30000/200 = 150
	assertDecimal(t, "1500", calc.OvertimePay(record))
	assertDecimal(t, "40750.50", calc.TotalEarnings(record))
	assertDecimal(t, "3599.99", calc.TotalDeductions(record))
	assertDecimal(t, "37150.51", record.NetSalary)
	assert.True(t, record.NetSalary.Equal(calc.TotalEarnings(record).Sub(calc.TotalDeductions(record))))
}

func TestCalculator_EmployerPFNotDeducted(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())
	record := calc.Normalize(PayrollRecord{BasicSalary: d("30000")})

	// only the employee share (1800) comes off
	assertDecimal(t, "28200", record.NetSalary)
}

func TestCalculator_NegativeNetIsNotClamped(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())
	record := calc.Normalize(PayrollRecord{
		ProfessionalTax: d("200"),
		OtherDeductions: d("500"),
	})

	assertDecimal(t, "0", record.OvertimeRate)
	assertDecimal(t, "-700", record.NetSalary)
}

func TestCalculator_NormalizeOverwritesCallerNet(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())
	record := calc.Normalize(PayrollRecord{BasicSalary: d("10000"), NetSalary: d("999999")})
	assertDecimal(t, "8800", record.NetSalary)
}

func TestCalculator_Allowances(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	hra, ta := calc.StandardAllowances(d("21000"))
	assertDecimal(t, "3150", hra)
	assertDecimal(t, "2100", ta)
}

func TestCalculator_LeaveDeduction(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	assertDecimal(t, "700", calc.DailyRate(d("21000"), 30))
	assertDecimal(t, "1400", calc.LeaveDeduction(d("21000"), 30, 2))
	assertDecimal(t, "0", calc.DailyRate(d("21000"), 0))
	assertDecimal(t, "0", calc.LeaveDeduction(d("21000"), 30, 0))
}

func TestCalculator_ZeroStandardHours(t *testing.T) {
	policy := DefaultPolicy()
	policy.StandardMonthlyHours = decimal.Zero
	calc := NewCalculator(policy)

	assertDecimal(t, "0", calc.DefaultOvertimeRate(d("20000")))
}
