package employee

import (
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode  string          `json:"employee_code" validate:"required"`
	FullName      string          `json:"full_name" validate:"required,max=150"`
	Email         string          `json:"email" validate:"required,email"`
	DepartmentID  *string         `json:"department_id,omitempty"`
	Position      string          `json:"position" validate:"required,max=100"`
	DateJoined    string          `json:"date_joined" validate:"required,datetime=2006-01-02"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	ContactNumber string          `json:"contact_number" validate:"max=15"`
	Address       string          `json:"address"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.EmployeeCode != "" && !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employee_code", "must be 2-20 upper-case letters, digits or dashes")
	}
	if r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "must be non-negative")
	}
	if joined, ok := validator.IsValidDate(r.DateJoined); ok && joined.After(time.Now()) {
		errs.Add("date_joined", ErrFutureDateNotAllowed.Error())
	}

	return errs.Err()
}

// UpdateEmployeeRequest patches an employee; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	EmployeeCode  *string          `json:"employee_code,omitempty"`
	FullName      *string          `json:"full_name,omitempty" validate:"omitempty,min=1,max=150"`
	Email         *string          `json:"email,omitempty" validate:"omitempty,email"`
	DepartmentID  *string          `json:"department_id,omitempty"`
	Position      *string          `json:"position,omitempty" validate:"omitempty,min=1,max=100"`
	DateJoined    *string          `json:"date_joined,omitempty" validate:"omitempty,datetime=2006-01-02"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
	ContactNumber *string          `json:"contact_number,omitempty" validate:"omitempty,max=15"`
	Address       *string          `json:"address,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.EmployeeCode != nil && !validator.IsValidEmployeeCode(*r.EmployeeCode) {
		errs.Add("employee_code", "must be 2-20 upper-case letters, digits or dashes")
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "must be non-negative")
	}
	if r.DateJoined != nil {
		if joined, ok := validator.IsValidDate(*r.DateJoined); ok && joined.After(time.Now()) {
			errs.Add("date_joined", ErrFutureDateNotAllowed.Error())
		}
	}

	return errs.Err()
}

// Apply copies the non-nil fields onto emp.
func (r *UpdateEmployeeRequest) Apply(emp Employee) Employee {
	if r.EmployeeCode != nil {
		emp.EmployeeCode = *r.EmployeeCode
	}
	if r.FullName != nil {
		emp.FullName = *r.FullName
	}
	if r.Email != nil {
		emp.Email = *r.Email
	}
	if r.DepartmentID != nil {
		if *r.DepartmentID == "" {
			emp.DepartmentID = nil
		} else {
			emp.DepartmentID = r.DepartmentID
		}
	}
	if r.Position != nil {
		emp.Position = *r.Position
	}
	if r.DateJoined != nil {
		if joined, ok := validator.IsValidDate(*r.DateJoined); ok {
			emp.DateJoined = joined
		}
	}
	if r.BaseSalary != nil {
		emp.BaseSalary = *r.BaseSalary
	}
	if r.ContactNumber != nil {
		emp.ContactNumber = *r.ContactNumber
	}
	if r.Address != nil {
		emp.Address = *r.Address
	}
	return emp
}

type EmployeeFilter struct {
	Search       *string `json:"search,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeCode   string          `json:"employee_code"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	DepartmentID   *string         `json:"department_id,omitempty"`
	DepartmentName *string         `json:"department_name,omitempty"`
	Position       string          `json:"position"`
	DateJoined     string          `json:"date_joined"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	ContactNumber  string          `json:"contact_number"`
	Address        string          `json:"address"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		EmployeeCode:   e.EmployeeCode,
		FullName:       e.FullName,
		Email:          e.Email,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		Position:       e.Position,
		DateJoined:     e.DateJoined.Format("2006-01-02"),
		BaseSalary:     e.BaseSalary,
		ContactNumber:  e.ContactNumber,
		Address:        e.Address,
	}
}
