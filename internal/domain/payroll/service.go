package payroll

import (
	"context"
	"io"
)

// PayrollService is the payroll engine exposed to the HTTP layer.
type PayrollService interface {
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollRecordResponse, error)
	GetPayroll(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayroll(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	DeletePayroll(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, req MarkPaidRequest) (PayrollRecordResponse, error)

	// GenerateBulkPayroll creates one record per employee for the period,
	// skipping employees that already have one. Per-employee failures are
	// reported in the result and never abort the run.
	GenerateBulkPayroll(ctx context.Context, req GeneratePayrollRequest) (GenerationResult, error)

	GetSummary(ctx context.Context, month string, year int) (PayrollSummaryResponse, error)
	ExportPeriod(ctx context.Context, month string, year int, w io.Writer) error

	// ListMyPayroll pages through the records of the employee on the caller's
	// token, newest period first. Page and limit follow PayrollFilter.Normalize.
	ListMyPayroll(ctx context.Context, page, limit int) (ListPayrollRecordResponse, error)

	// RenderPayslip and RenderPayslipPDF deny employees access to other
	// employees' records with ErrPayslipAccessDenied.
	RenderPayslip(ctx context.Context, id string) (Payslip, error)
	RenderPayslipPDF(ctx context.Context, id string, w io.Writer) error
}
