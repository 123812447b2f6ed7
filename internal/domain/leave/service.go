package leave

import (
	"context"
)

type LeaveService interface {
	// ApplyLeave files a Pending request for the employee on the token
	ApplyLeave(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context) (ListLeaveRequestResponse, error)
}
