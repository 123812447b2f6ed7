package leave

import (
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"required,max=1000"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	errs := validator.Struct(r)

	start, okStart := validator.IsValidDate(r.StartDate)
	end, okEnd := validator.IsValidDate(r.EndDate)
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", ErrInvalidDateRange.Error())
	}

	return errs.Err()
}

type LeaveRequestFilter struct {
	EmployeeID *string             `json:"employee_id,omitempty"`
	Status     *LeaveRequestStatus `json:"status,omitempty"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !f.Status.Valid() {
		errs.Add("status", "must be one of: Pending Approved Rejected")
	}
	return errs.Err()
}

func (f *LeaveRequestFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f LeaveRequestFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	AppliedOn    string  `json:"applied_on"`
}

type ListLeaveRequestResponse struct {
	Data       []LeaveRequestResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	var processedAt *string
	if lr.ProcessedAt != nil {
		s := lr.ProcessedAt.Format(time.RFC3339)
		processedAt = &s
	}
	return LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		EmployeeCode: lr.EmployeeCode,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		Days:         lr.Days(),
		Reason:       lr.Reason,
		Status:       string(lr.Status),
		ProcessedAt:  processedAt,
		AppliedOn:    lr.AppliedOn.Format(time.RFC3339),
	}
}
