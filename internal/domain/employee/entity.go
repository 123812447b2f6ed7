package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	EmployeeCode  string
	FullName      string
	Email         string
	DepartmentID  *string
	Position      string
	DateJoined    time.Time
	BaseSalary    decimal.Decimal
	ContactNumber string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	DepartmentName *string
}

// TenureMonths counts the whole months between DateJoined and at.
func (e Employee) TenureMonths(at time.Time) int {
	if at.Before(e.DateJoined) {
		return 0
	}
	months := (at.Year()-e.DateJoined.Year())*12 + int(at.Month()-e.DateJoined.Month())
	if at.Day() < e.DateJoined.Day() {
		months--
	}
	return max(months, 0)
}
