package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/payslip"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx           database.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRequestRepository
	calc         payroll.Calculator
	companyName  string
	logger       *slog.Logger
	now          func() time.Time
}

type Options struct {
	Policy      payroll.Policy
	CompanyName string
	Logger      *slog.Logger
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	opts Options,
) payroll.PayrollService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		calc:         payroll.NewCalculator(opts.Policy),
		companyName:  opts.CompanyName,
		logger:       logger.With(slog.String("service", "payroll")),
		now:          time.Now,
	}
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

// ========== RECORDS ==========

func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	month, _ := payroll.ParseMonth(req.Month)
	record := payroll.PayrollRecord{
		EmployeeID:         req.EmployeeID,
		Month:              month,
		Year:               req.Year,
		BasicSalary:        *req.BasicSalary,
		HouseRentAllowance: valueOr(req.HouseRentAllowance, decimal.Zero),
		TravelAllowance:    valueOr(req.TravelAllowance, decimal.Zero),
		MedicalAllowance:   valueOr(req.MedicalAllowance, decimal.Zero),
		SpecialAllowance:   valueOr(req.SpecialAllowance, decimal.Zero),
		OvertimeHours:      valueOr(req.OvertimeHours, decimal.Zero),
		OvertimeRate:       valueOr(req.OvertimeRate, decimal.Zero),
		ProfessionalTax:    valueOr(req.ProfessionalTax, s.calc.Policy().ProfessionalTax),
		IncomeTax:          valueOr(req.IncomeTax, decimal.Zero),
		OtherDeductions:    valueOr(req.OtherDeductions, decimal.Zero),
		Paid:               req.Paid,
	}
	if req.PaymentDate != nil {
		if d, ok := validator.IsValidDate(*req.PaymentDate); ok {
			record.PaymentDate = &d
		}
	}

	created, err := s.payrollRepo.Create(ctx, s.calc.Normalize(record))
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.reload(ctx, created.ID)
}

func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.payrollRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		next := req.Apply(current)
		if err := payroll.CheckPaymentState(next); err != nil {
			return err
		}
		_, err = s.payrollRepo.Update(ctx, s.calc.Normalize(next))
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.reload(ctx, req.ID)
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	paid := true
	paymentDate := req.PaymentDate
	if paymentDate == nil {
		today := s.now().Format("2006-01-02")
		paymentDate = &today
	}

	return s.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{
		ID:          req.ID,
		Paid:        &paid,
		PaymentDate: paymentDate,
	})
}

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.reload(ctx, id)
}

func (s *PayrollServiceImpl) ListPayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	filter.Normalize()

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       s.toResponses(records),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) ListMyPayroll(ctx context.Context, page, limit int) (payroll.ListPayrollRecordResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	if identity.EmployeeID == nil || *identity.EmployeeID == "" {
		return payroll.ListPayrollRecordResponse{}, leave.ErrEmployeeContextMissing
	}

	return s.ListPayroll(ctx, payroll.PayrollFilter{
		EmployeeID: identity.EmployeeID,
		Page:       page,
		Limit:      limit,
	})
}

// DeletePayroll removes a single record; nothing else is touched.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id string) error {
	return s.payrollRepo.Delete(ctx, id)
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, month string, year int) (payroll.PayrollSummaryResponse, error) {
	period, err := parsePeriod(month, year)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	summary, err := s.payrollRepo.GetSummary(ctx, period)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	return payroll.NewPayrollSummaryResponse(summary), nil
}

// ========== BULK GENERATION ==========

func (s *PayrollServiceImpl) GenerateBulkPayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerationResult{}, err
	}

	month, _ := payroll.ParseMonth(req.Month)
	period := payroll.Period{Month: month, Year: req.Year}

	roster, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return payroll.GenerationResult{}, fmt.Errorf("failed to get employees: %w", err)
	}

	log := s.logger.With(slog.String("month", string(period.Month)), slog.Int("year", period.Year))
	log.InfoContext(ctx, "payroll generation started", slog.Int("employees", len(roster)))

	result := payroll.GenerationResult{
		Month:    period.Month,
		Year:     period.Year,
		Outcomes: make([]payroll.EmployeeOutcome, 0, len(roster)),
	}

	for _, emp := range roster {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome := s.generateForEmployee(ctx, emp, period)
		if outcome.Outcome == payroll.OutcomeFailed {
			log.WarnContext(ctx, "payroll generation failed for employee",
				slog.String("employee_id", emp.ID),
				slog.String("error", *outcome.Error))
		}
		result.Record(outcome)
	}

	log.InfoContext(ctx, "payroll generation finished",
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))

	return result, nil
}

func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, period payroll.Period) payroll.EmployeeOutcome {
	outcome := payroll.EmployeeOutcome{EmployeeID: emp.ID, EmployeeCode: emp.EmployeeCode}
	fail := func(err error) payroll.EmployeeOutcome {
		msg := err.Error()
		outcome.Outcome = payroll.OutcomeFailed
		outcome.Error = &msg
		return outcome
	}

	existing, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, period)
	switch {
	case err == nil:
		outcome.Outcome = payroll.OutcomeSkipped
		outcome.RecordID = &existing.ID
		return outcome
	case !errors.Is(err, payroll.ErrPayrollRecordNotFound):
		return fail(fmt.Errorf("failed to check existing record: %w", err))
	}

	leaves, err := s.leaveRepo.GetApprovedStartingBetween(ctx, emp.ID, period.Start(), period.End())
	if err != nil {
		return fail(fmt.Errorf("failed to read leave ledger: %w", err))
	}

	// All approved leave is treated as unpaid; there is no paid-leave quota.
	unpaidDays := 0
	for _, lr := range leaves {
		unpaidDays += lr.Days()
	}

	basic := emp.BaseSalary
	houseRent, travel := s.calc.StandardAllowances(basic)
	record := payroll.PayrollRecord{
		EmployeeID:         emp.ID,
		Month:              period.Month,
		Year:               period.Year,
		BasicSalary:        basic,
		HouseRentAllowance: houseRent,
		TravelAllowance:    travel,
		ProfessionalTax:    s.calc.Policy().ProfessionalTax,
		OtherDeductions:    s.calc.LeaveDeduction(basic, period.Days(), unpaidDays),
	}

	created, err := s.payrollRepo.Create(ctx, s.calc.Normalize(record))
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
			outcome.Outcome = payroll.OutcomeSkipped
			return outcome
		}
		return fail(err)
	}

	outcome.Outcome = payroll.OutcomeCreated
	outcome.RecordID = &created.ID
	return outcome
}

// ========== EXPORT ==========

var exportHeadings = []string{
	"Employee ID", "Employee Name", "Department", "Basic Salary",
	"House Rent Allowance", "Travel Allowance", "Medical Allowance", "Special Allowance",
	"Overtime Pay", "Total Earnings", "Provident Fund (Employee)", "Professional Tax",
	"Income Tax", "Other Deductions", "Total Deductions", "Net Salary", "Status", "Payment Date",
}

// exportAmountColumns are the money columns of exportHeadings, Basic Salary
// through Net Salary.
var exportAmountColumns = []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// ExportPeriod writes the period's records and summary as an xlsx workbook.
func (s *PayrollServiceImpl) ExportPeriod(ctx context.Context, month string, year int, w io.Writer) error {
	period, err := parsePeriod(month, year)
	if err != nil {
		return err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, period)
	if err != nil {
		return err
	}
	summary, err := s.payrollRepo.GetSummary(ctx, period)
	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		slip := s.calc.BuildPayslip(s.companyName, r)
		employeePF, _ := s.calc.ProvidentFund(r)
		paymentDate := ""
		if d := payroll.FormatDate(r.PaymentDate); d != nil {
			paymentDate = *d
		}
		rows = append(rows, []any{
			slip.Employee.Code, slip.Employee.Name, slip.Employee.Department,
			amount(r.BasicSalary),
			amount(r.HouseRentAllowance),
			amount(r.TravelAllowance),
			amount(r.MedicalAllowance),
			amount(r.SpecialAllowance),
			amount(s.calc.OvertimePay(r)),
			amount(slip.TotalEarnings),
			amount(employeePF),
			amount(r.ProfessionalTax),
			amount(r.IncomeTax),
			amount(r.OtherDeductions),
			amount(slip.TotalDeductions),
			amount(slip.NetSalary),
			string(slip.Status),
			paymentDate,
		})
	}

	return export.WriteXLSX(w,
		export.Sheet{
			Name:          fmt.Sprintf("%s %d", period.Month, period.Year),
			Headings:      exportHeadings,
			Rows:          rows,
			AmountColumns: exportAmountColumns,
		},
		export.Sheet{
			Name:     "Summary",
			Headings: []string{"Records", "Paid", "Pending", "Total Basic", "Total Net Salary", "Total Paid"},
			Rows: [][]any{{
				summary.TotalRecords, summary.PaidCount, summary.PendingCount,
				amount(summary.TotalBasic),
				amount(summary.TotalNetSalary),
				amount(summary.TotalPaidAmount),
			}},
			AmountColumns: []int{3, 4, 5},
		},
	)
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) RenderPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if !identity.CanAccessEmployee(record.EmployeeID) {
		return payroll.Payslip{}, payroll.ErrPayslipAccessDenied
	}

	return s.calc.BuildPayslip(s.companyName, record), nil
}

func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, id string, w io.Writer) error {
	slip, err := s.RenderPayslip(ctx, id)
	if err != nil {
		return err
	}
	return payslip.RenderPDF(w, slip)
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) reload(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(s.calc, record), nil
}

func (s *PayrollServiceImpl) toResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	out := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, payroll.NewPayrollRecordResponse(s.calc, r))
	}
	return out
}

func parsePeriod(month string, year int) (payroll.Period, error) {
	m, err := payroll.ParseMonth(month)
	if err != nil {
		return payroll.Period{}, err
	}
	if year < 1900 || year > 9999 {
		return payroll.Period{}, fmt.Errorf("%w: year %d", payroll.ErrInvalidPeriod, year)
	}
	return payroll.Period{Month: m, Year: year}, nil
}

// amount rounds to cents for a numeric spreadsheet cell.
func amount(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
