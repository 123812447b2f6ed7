package payroll

import "github.com/shopspring/decimal"

// Calculator derives earnings, contributions and net pay from a record's stored fields.
// All methods are pure.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) Calculator {
	return Calculator{policy: policy}
}

func (c Calculator) Policy() Policy {
	return c.policy
}

// OvertimePay is overtime hours times overtime rate.
func (c Calculator) OvertimePay(r PayrollRecord) decimal.Decimal {
	return r.OvertimeHours.Mul(r.OvertimeRate)
}

func (c Calculator) TotalEarnings(r PayrollRecord) decimal.Decimal {
	return r.BasicSalary.
		Add(r.HouseRentAllowance).
		Add(r.TravelAllowance).
		Add(r.MedicalAllowance).
		Add(r.SpecialAllowance).
		Add(c.OvertimePay(r))
}

// ProvidentFund returns the employee and employer contributions on the
// basic salary capped at the policy ceiling.
func (c Calculator) ProvidentFund(r PayrollRecord) (employee, employer decimal.Decimal) {
	base := decimal.Min(r.BasicSalary, c.policy.PFCeiling)
	return base.Mul(c.policy.EmployeePFRate), base.Mul(c.policy.EmployerPFRate)
}

// TotalDeductions excludes the employer contribution.
func (c Calculator) TotalDeductions(r PayrollRecord) decimal.Decimal {
	employeePF, _ := c.ProvidentFund(r)
	return employeePF.
		Add(r.ProfessionalTax).
		Add(r.IncomeTax).
		Add(r.OtherDeductions)
}

// NetSalary is not clamped: pathological inputs yield a negative amount.
func (c Calculator) NetSalary(r PayrollRecord) decimal.Decimal {
	return c.TotalEarnings(r).Sub(c.TotalDeductions(r))
}

// DefaultOvertimeRate is basic salary spread over the standard monthly hours.
func (c Calculator) DefaultOvertimeRate(basic decimal.Decimal) decimal.Decimal {
	if c.policy.StandardMonthlyHours.IsZero() {
		return decimal.Zero
	}
	return basic.Div(c.policy.StandardMonthlyHours)
}

// Normalize runs on every write: the overtime rate is defaulted first because
// it feeds overtime pay, then net salary is recomputed from scratch.
func (c Calculator) Normalize(r PayrollRecord) PayrollRecord {
	if r.OvertimeRate.IsZero() {
		r.OvertimeRate = c.DefaultOvertimeRate(r.BasicSalary)
	}
	r.NetSalary = c.NetSalary(r)
	return r
}

// StandardAllowances returns the house rent and travel allowances for a basic salary.
func (c Calculator) StandardAllowances(basic decimal.Decimal) (houseRent, travel decimal.Decimal) {
	return basic.Mul(c.policy.HouseRentRate), basic.Mul(c.policy.TravelRate)
}

// DailyRate spreads basic salary over the calendar days of a month; zero days yields zero.
func (c Calculator) DailyRate(basic decimal.Decimal, daysInMonth int) decimal.Decimal {
	if daysInMonth <= 0 {
		return decimal.Zero
	}
	return basic.Div(decimal.NewFromInt(int64(daysInMonth)))
}

// LeaveDeduction is the daily rate times the unpaid leave days.
func (c Calculator) LeaveDeduction(basic decimal.Decimal, daysInMonth int, leaveDays int) decimal.Decimal {
	return c.DailyRate(basic, daysInMonth).Mul(decimal.NewFromInt(int64(leaveDays)))
}
