package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrInvalidMonth               = errors.New("month must be a full English month name")
	ErrPayslipAccessDenied        = errors.New("payslip belongs to another employee")
)
