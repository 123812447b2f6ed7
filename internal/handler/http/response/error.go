package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/candidate"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, jwt.ErrMissingIdentity):
		Unauthorized(w, "Missing or invalid access token")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrLeaveRequestAccessDenied):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrEmployeeContextMissing):
		Forbidden(w, "No employee is linked to this account")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrInvalidMonth), errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayslipAccessDenied):
		Forbidden(w, "Payslip belongs to another employee")

	// Recruitment and reviews
	case errors.Is(err, candidate.ErrCandidateNotFound):
		NotFound(w, "Candidate not found")
	case errors.Is(err, review.ErrReviewNotFound):
		NotFound(w, "Review not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
