package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetHRCounts returns all overview counters in a single round trip
func (r *dashboardRepositoryImpl) GetHRCounts(ctx context.Context, month string, year int) (dashboard.HRCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees) AS total_employees,
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'Pending') AS pending_leaves,
			(SELECT COUNT(*) FROM departments) AS total_departments,
			(SELECT COUNT(*) FROM payroll_records WHERE month = $1 AND year = $2) AS period_records,
			(SELECT COUNT(*) FROM payroll_records WHERE month = $1 AND year = $2 AND NOT paid) AS period_unpaid
	`

	var counts dashboard.HRCounts
	err := q.QueryRow(ctx, query, month, year).Scan(
		&counts.TotalEmployees, &counts.PendingLeaves, &counts.TotalDepartments,
		&counts.PeriodRecords, &counts.PeriodUnpaid,
	)
	if err != nil {
		return dashboard.HRCounts{}, fmt.Errorf("failed to get dashboard counts: %w", err)
	}
	return counts, nil
}
