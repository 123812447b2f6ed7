package dashboard

import (
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
)

// HRDashboardResponse is the overview shown to HR staff
type HRDashboardResponse struct {
	TotalEmployees     int64  `json:"total_employees"`
	PendingLeaves      int64  `json:"pending_leaves"`
	TotalDepartments   int64  `json:"total_departments"`
	CurrentPeriod      string `json:"current_period"`
	CurrentPayrollRuns int64  `json:"current_payroll_records"`
	UnpaidPayrolls     int64  `json:"unpaid_payroll_records"`
}

// EmployeeDashboardResponse is the self-service view of one employee
type EmployeeDashboardResponse struct {
	Profile        employee.EmployeeResponse       `json:"profile"`
	LeaveRequests  []leave.LeaveRequestResponse    `json:"leave_requests"`
	PayrollRecords []payroll.PayrollRecordResponse `json:"payroll_records"`
}
