package payroll

import "github.com/shopspring/decimal"

// Policy holds the statutory rates and company percentages applied by the Calculator.
type Policy struct {
	// PFCeiling caps the basic salary that attracts provident fund.
	PFCeiling      decimal.Decimal
	EmployeePFRate decimal.Decimal
	// EmployerPFRate is reported on the payslip but never deducted from net pay.
	EmployerPFRate decimal.Decimal

	// ProfessionalTax is the flat default for new records.
	ProfessionalTax decimal.Decimal

	// StandardMonthlyHours divides basic salary into the default overtime rate.
	StandardMonthlyHours decimal.Decimal

	HouseRentRate decimal.Decimal
	TravelRate    decimal.Decimal
}

// DefaultPolicy returns the rates the payroll module ships with.
func DefaultPolicy() Policy {
	return Policy{
		PFCeiling:            decimal.NewFromInt(15000),
		EmployeePFRate:       decimal.RequireFromString("0.12"),
		EmployerPFRate:       decimal.RequireFromString("0.133"),
		ProfessionalTax:      decimal.NewFromInt(200),
		StandardMonthlyHours: decimal.NewFromInt(200),
		HouseRentRate:        decimal.RequireFromString("0.15"),
		TravelRate:           decimal.RequireFromString("0.10"),
	}
}
