package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, processedBy *string) (LeaveRequest, error)

	// GetApprovedStartingBetween is the leave ledger read by payroll: approved
	// requests of one employee whose start date lies in [from, to].
	GetApprovedStartingBetween(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}
