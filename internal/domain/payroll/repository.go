package payroll

import "context"

// PayrollRepository persists payroll records. Create must report a duplicate
// (employee, month, year) as ErrPayrollRecordAlreadyExists.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, period Period) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	ListByPeriod(ctx context.Context, period Period) ([]PayrollRecord, error)
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	Delete(ctx context.Context, id string) error
	GetSummary(ctx context.Context, period Period) (PayrollSummary, error)
}
