package dashboard

import (
	"context"
	"time"
)

// HRCounts combines the overview counters in a single query
type HRCounts struct {
	TotalEmployees   int64
	PendingLeaves    int64
	TotalDepartments int64
	PeriodRecords    int64
	PeriodUnpaid     int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetHRCounts counts employees, pending leaves, departments and the payroll
	// records of the given period
	GetHRCounts(ctx context.Context, month string, year int) (HRCounts, error)
}

// Clock lets tests pin "now".
type Clock func() time.Time
