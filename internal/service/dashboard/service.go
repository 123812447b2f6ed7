package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"golang.org/x/sync/errgroup"
)

// recentLimit caps the history lists on the employee dashboard.
const recentLimit = 12

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRequestRepository
	payrollRepo  payroll.PayrollRepository
	calc         payroll.Calculator
	now          dashboard.Clock
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	payrollRepo payroll.PayrollRepository,
	policy payroll.Policy,
	now dashboard.Clock,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		employeeRepo:        employeeRepo,
		leaveRepo:           leaveRepo,
		payrollRepo:         payrollRepo,
		calc:                payroll.NewCalculator(policy),
		now:                 now,
	}
}

// GetHRDashboard returns the organisation counters for the current pay period
func (s *DashboardServiceImpl) GetHRDashboard(ctx context.Context) (dashboard.HRDashboardResponse, error) {
	now := s.now()
	month := payroll.MonthOf(now.Month())

	counts, err := s.DashboardRepository.GetHRCounts(ctx, string(month), now.Year())
	if err != nil {
		return dashboard.HRDashboardResponse{}, err
	}

	return dashboard.HRDashboardResponse{
		TotalEmployees:     counts.TotalEmployees,
		PendingLeaves:      counts.PendingLeaves,
		TotalDepartments:   counts.TotalDepartments,
		CurrentPeriod:      fmt.Sprintf("%s %d", month, now.Year()),
		CurrentPayrollRuns: counts.PeriodRecords,
		UnpaidPayrolls:     counts.PeriodUnpaid,
	}, nil
}

// GetEmployeeDashboard loads profile, leave and payroll history in parallel
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (dashboard.EmployeeDashboardResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}
	if identity.EmployeeID == nil || *identity.EmployeeID == "" {
		return dashboard.EmployeeDashboardResponse{}, leave.ErrEmployeeContextMissing
	}
	employeeID := *identity.EmployeeID

	var (
		profile  employee.Employee
		requests []leave.LeaveRequest
		records  []payroll.PayrollRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		profile, err = s.employeeRepo.GetByID(gctx, employeeID)
		return err
	})

	g.Go(func() error {
		var err error
		requests, _, err = s.leaveRepo.List(gctx, leave.LeaveRequestFilter{
			EmployeeID: &employeeID, Page: 1, Limit: recentLimit,
		})
		return err
	})

	g.Go(func() error {
		var err error
		records, _, err = s.payrollRepo.List(gctx, payroll.PayrollFilter{
			EmployeeID: &employeeID, Page: 1, Limit: recentLimit,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	resp := dashboard.EmployeeDashboardResponse{
		Profile:        employee.NewEmployeeResponse(profile),
		LeaveRequests:  make([]leave.LeaveRequestResponse, 0, len(requests)),
		PayrollRecords: make([]payroll.PayrollRecordResponse, 0, len(records)),
	}
	for _, r := range requests {
		resp.LeaveRequests = append(resp.LeaveRequests, leave.NewLeaveRequestResponse(r))
	}
	for _, r := range records {
		resp.PayrollRecords = append(resp.PayrollRecords, payroll.NewPayrollRecordResponse(s.calc, r))
	}
	return resp, nil
}
