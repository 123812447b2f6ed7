package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "Rejected"
)

func (s LeaveRequestStatus) Valid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// LeaveRequest entity. StartDate and EndDate are dates; the span is inclusive.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	Status      LeaveRequestStatus
	ProcessedBy *string
	ProcessedAt *time.Time
	AppliedOn   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName *string
	EmployeeCode *string
}

// Days is the inclusive length of the span in calendar days.
func (lr LeaveRequest) Days() int {
	start := time.Date(lr.StartDate.Year(), lr.StartDate.Month(), lr.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(lr.EndDate.Year(), lr.EndDate.Month(), lr.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
