package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.reason, lr.status,
	lr.processed_by, lr.processed_at, lr.applied_on, lr.updated_at, e.full_name, e.employee_code`

const leaveRequestFrom = `
	FROM leave_requests lr
	INNER JOIN employees e ON e.id = lr.employee_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.StartDate, &lr.EndDate, &lr.Reason, &lr.Status,
		&lr.ProcessedBy, &lr.ProcessedAt, &lr.AppliedOn, &lr.UpdatedAt, &lr.EmployeeName, &lr.EmployeeCode,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.StartDate, request.EndDate, request.Reason, request.Status,
	).Scan(&id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + ` WHERE lr.id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests lr`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + where +
		fmt.Sprintf(" ORDER BY lr.applied_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. Only pending
// requests move; anything else reports ErrLeaveRequestAlreadyProcessed.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, processedBy *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, processed_by = $2, processed_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	cmdTag, err := q.Exec(ctx, query, status, processedBy, id, leave.LeaveRequestStatusPending)
	if err != nil {
		if isNoRows(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return r.GetByID(ctx, id)
}

// GetApprovedStartingBetween implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetApprovedStartingBetween(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + `
		WHERE lr.employee_id = $1 AND lr.status = $2 AND lr.start_date BETWEEN $3 AND $4
		ORDER BY lr.start_date`

	rows, err := q.Query(ctx, query, employeeID, leave.LeaveRequestStatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leave: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}
