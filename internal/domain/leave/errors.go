package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange             = errors.New("end date must not be before start date")
	ErrEmployeeContextMissing       = errors.New("no employee is linked to this account")
	ErrLeaveRequestAccessDenied     = errors.New("leave request belongs to another employee")
)
