package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee (HR only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee patches an existing employee (HR only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee together with leave and payroll history
	DeleteEmployee(ctx context.Context, id string) error

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
