package leave

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

// myRequestsLimit caps the self-service history.
const myRequestsLimit = 100

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) leave.LeaveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		logger:       logger.With(slog.String("service", "leave")),
	}
}

// ApplyLeave files a Pending request on behalf of the employee linked to the token.
func (s *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	employeeID, err := s.callerEmployeeID(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "leave requested",
		slog.String("leave_request_id", created.ID),
		slog.String("employee_id", employeeID),
		slog.Int("days", created.Days()),
	)
	return leave.NewLeaveRequestResponse(created), nil
}

func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return s.process(ctx, requestID, leave.LeaveRequestStatusApproved)
}

func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return s.process(ctx, requestID, leave.LeaveRequestStatusRejected)
}

// process moves a Pending request to its final status. The repository
// refuses requests that were already decided.
func (s *LeaveServiceImpl) process(ctx context.Context, requestID string, status leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	processedBy := identity.UserID
	updated, err := s.leaveRepo.UpdateStatus(ctx, requestID, status, &processedBy)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "leave request processed",
		slog.String("leave_request_id", updated.ID),
		slog.String("status", string(status)),
		slog.String("processed_by", processedBy),
	)
	return leave.NewLeaveRequestResponse(updated), nil
}

func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !identity.CanAccessEmployee(request.EmployeeID) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAccessDenied
	}
	return leave.NewLeaveRequestResponse(request), nil
}

func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.Normalize()
	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context) (leave.ListLeaveRequestResponse, error) {
	employeeID, err := s.callerEmployeeID(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return s.list(ctx, leave.LeaveRequestFilter{EmployeeID: &employeeID, Page: 1, Limit: myRequestsLimit})
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	requests, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	data := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		data = append(data, leave.NewLeaveRequestResponse(r))
	}
	return leave.ListLeaveRequestResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *LeaveServiceImpl) callerEmployeeID(ctx context.Context) (string, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return "", err
	}
	if identity.EmployeeID == nil || *identity.EmployeeID == "" {
		return "", leave.ErrEmployeeContextMissing
	}
	return *identity.EmployeeID, nil
}
