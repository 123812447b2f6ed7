package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	GetHRDashboard(ctx context.Context) (HRDashboardResponse, error)
	// GetEmployeeDashboard uses the employee linked to the caller's token
	GetEmployeeDashboard(ctx context.Context) (EmployeeDashboardResponse, error)
}
