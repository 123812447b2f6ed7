package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Month is the canonical English name of a calendar month ("January".."December").
type Month string

const (
	January   Month = "January"
	February  Month = "February"
	March     Month = "March"
	April     Month = "April"
	May       Month = "May"
	June      Month = "June"
	July      Month = "July"
	August    Month = "August"
	September Month = "September"
	October   Month = "October"
	November  Month = "November"
	December  Month = "December"
)

var months = [12]Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

// Months returns the twelve canonical month names in calendar order.
func Months() []Month {
	out := make([]Month, len(months))
	copy(out, months[:])
	return out
}

// ParseMonth accepts a month name in any letter case and returns its canonical form.
func ParseMonth(s string) (Month, error) {
	name := strings.TrimSpace(s)
	for _, m := range months {
		if strings.EqualFold(string(m), name) {
			return m, nil
		}
	}
	return "", ErrInvalidMonth
}

// MonthOf converts a time.Month to its canonical name.
func MonthOf(m time.Month) Month {
	return months[m-1]
}

func (m Month) Valid() bool {
	return m.Number() != 0
}

// Number returns the calendar month, or 0 when m is not canonical.
func (m Month) Number() time.Month {
	for i, candidate := range months {
		if candidate == m {
			return time.Month(i + 1)
		}
	}
	return 0
}

// Period is a (month, year) pay cycle.
type Period struct {
	Month Month
	Year  int
}

// Start returns the first day of the period in UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month.Number(), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period in UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Days returns the number of calendar days in the period, honouring leap years.
// An invalid month yields 0.
func (p Period) Days() int {
	if p.Month.Number() == 0 {
		return 0
	}
	return p.End().Day()
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month.Number()
}

// PayrollRecord is one employee's pay for one period.
// NetSalary is derived by Calculator.Normalize and must never be set by callers.
type PayrollRecord struct {
	ID         string
	EmployeeID string
	Month      Month
	Year       int

	BasicSalary        decimal.Decimal
	HouseRentAllowance decimal.Decimal
	TravelAllowance    decimal.Decimal
	MedicalAllowance   decimal.Decimal
	SpecialAllowance   decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimeRate       decimal.Decimal

	ProfessionalTax decimal.Decimal
	IncomeTax       decimal.Decimal
	OtherDeductions decimal.Decimal

	NetSalary decimal.Decimal

	Paid        bool
	PaymentDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName   *string
	EmployeeCode   *string
	Position       *string
	DepartmentName *string
}

func (r PayrollRecord) Period() Period {
	return Period{Month: r.Month, Year: r.Year}
}

// PayrollSummary aggregates the records of one period.
type PayrollSummary struct {
	Month           Month
	Year            int
	TotalRecords    int
	PaidCount       int
	PendingCount    int
	TotalBasic      decimal.Decimal
	TotalNetSalary  decimal.Decimal
	TotalPaidAmount decimal.Decimal
}
