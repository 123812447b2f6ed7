package payroll

import (
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ========== PAYROLL RECORD DTOs ==========

// CreatePayrollRequest creates one record. Omitted amounts default to zero,
// except professional tax which defaults to the policy amount. Net salary is
// never accepted from callers.
type CreatePayrollRequest struct {
	EmployeeID         string           `json:"employee_id"`
	Month              string           `json:"month"`
	Year               int              `json:"year"`
	BasicSalary        *decimal.Decimal `json:"basic_salary"`
	HouseRentAllowance *decimal.Decimal `json:"house_rent_allowance,omitempty"`
	TravelAllowance    *decimal.Decimal `json:"travel_allowance,omitempty"`
	MedicalAllowance   *decimal.Decimal `json:"medical_allowance,omitempty"`
	SpecialAllowance   *decimal.Decimal `json:"special_allowance,omitempty"`
	OvertimeHours      *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimeRate       *decimal.Decimal `json:"overtime_rate,omitempty"`
	ProfessionalTax    *decimal.Decimal `json:"professional_tax,omitempty"`
	IncomeTax          *decimal.Decimal `json:"income_tax,omitempty"`
	OtherDeductions    *decimal.Decimal `json:"other_deductions,omitempty"`
	Paid               bool             `json:"paid"`
	PaymentDate        *string          `json:"payment_date,omitempty"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	validatePeriod(&errs, r.Month, r.Year)
	if r.BasicSalary == nil {
		errs.Add("basic_salary", "is required")
	}
	validator.CheckNonNegative(&errs, r.amounts())
	validatePayment(&errs, r.Paid, r.PaymentDate)

	return errs.Err()
}

func (r *CreatePayrollRequest) amounts() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"basic_salary":         r.BasicSalary,
		"house_rent_allowance": r.HouseRentAllowance,
		"travel_allowance":     r.TravelAllowance,
		"medical_allowance":    r.MedicalAllowance,
		"special_allowance":    r.SpecialAllowance,
		"overtime_hours":       r.OvertimeHours,
		"overtime_rate":        r.OvertimeRate,
		"professional_tax":     r.ProfessionalTax,
		"income_tax":           r.IncomeTax,
		"other_deductions":     r.OtherDeductions,
	}
}

// UpdatePayrollRequest patches a record; nil fields keep their stored value.
// The employee and period of a record are immutable.
type UpdatePayrollRequest struct {
	ID                 string           `json:"-"`
	BasicSalary        *decimal.Decimal `json:"basic_salary,omitempty"`
	HouseRentAllowance *decimal.Decimal `json:"house_rent_allowance,omitempty"`
	TravelAllowance    *decimal.Decimal `json:"travel_allowance,omitempty"`
	MedicalAllowance   *decimal.Decimal `json:"medical_allowance,omitempty"`
	SpecialAllowance   *decimal.Decimal `json:"special_allowance,omitempty"`
	OvertimeHours      *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimeRate       *decimal.Decimal `json:"overtime_rate,omitempty"`
	ProfessionalTax    *decimal.Decimal `json:"professional_tax,omitempty"`
	IncomeTax          *decimal.Decimal `json:"income_tax,omitempty"`
	OtherDeductions    *decimal.Decimal `json:"other_deductions,omitempty"`
	Paid               *bool            `json:"paid,omitempty"`
	PaymentDate        *string          `json:"payment_date,omitempty"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	validator.CheckNonNegative(&errs, map[string]*decimal.Decimal{
		"basic_salary":         r.BasicSalary,
		"house_rent_allowance": r.HouseRentAllowance,
		"travel_allowance":     r.TravelAllowance,
		"medical_allowance":    r.MedicalAllowance,
		"special_allowance":    r.SpecialAllowance,
		"overtime_hours":       r.OvertimeHours,
		"overtime_rate":        r.OvertimeRate,
		"professional_tax":     r.ProfessionalTax,
		"income_tax":           r.IncomeTax,
		"other_deductions":     r.OtherDeductions,
	})
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs.Add("payment_date", "must be a date in YYYY-MM-DD format")
		}
		if r.Paid != nil && !*r.Paid {
			errs.Add("payment_date", "can only be set on a paid record")
		}
	}

	return errs.Err()
}

// Apply copies the non-nil fields onto record.
func (r *UpdatePayrollRequest) Apply(record PayrollRecord) PayrollRecord {
	setIf := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&record.BasicSalary, r.BasicSalary)
	setIf(&record.HouseRentAllowance, r.HouseRentAllowance)
	setIf(&record.TravelAllowance, r.TravelAllowance)
	setIf(&record.MedicalAllowance, r.MedicalAllowance)
	setIf(&record.SpecialAllowance, r.SpecialAllowance)
	setIf(&record.OvertimeHours, r.OvertimeHours)
	setIf(&record.OvertimeRate, r.OvertimeRate)
	setIf(&record.ProfessionalTax, r.ProfessionalTax)
	setIf(&record.IncomeTax, r.IncomeTax)
	setIf(&record.OtherDeductions, r.OtherDeductions)

	if r.Paid != nil {
		record.Paid = *r.Paid
		if !record.Paid {
			record.PaymentDate = nil
		}
	}
	if r.PaymentDate != nil {
		if d, ok := validator.IsValidDate(*r.PaymentDate); ok {
			record.PaymentDate = &d
		}
	}
	return record
}

type GeneratePayrollRequest struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	validatePeriod(&errs, r.Month, r.Year)
	return errs.Err()
}

type MarkPaidRequest struct {
	ID          string  `json:"-"`
	PaymentDate *string `json:"payment_date,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs.Add("payment_date", "must be a date in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}

type PayrollFilter struct {
	Month      *Month  `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Paid       *bool   `json:"paid,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

// Normalize clamps paging to sane defaults.
func (f *PayrollFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f PayrollFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type PayrollRecordResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	EmployeeCode       string          `json:"employee_code"`
	DepartmentName     *string         `json:"department_name,omitempty"`
	Month              Month           `json:"month"`
	Year               int             `json:"year"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HouseRentAllowance decimal.Decimal `json:"house_rent_allowance"`
	TravelAllowance    decimal.Decimal `json:"travel_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	SpecialAllowance   decimal.Decimal `json:"special_allowance"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimeRate       decimal.Decimal `json:"overtime_rate"`
	ProfessionalTax    decimal.Decimal `json:"professional_tax"`
	IncomeTax          decimal.Decimal `json:"income_tax"`
	OtherDeductions    decimal.Decimal `json:"other_deductions"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	EmployeePF         decimal.Decimal `json:"employee_pf"`
	EmployerPF         decimal.Decimal `json:"employer_pf"`
	NetSalary          decimal.Decimal `json:"net_salary"`
	Paid               bool            `json:"paid"`
	PaymentDate        *string         `json:"payment_date,omitempty"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	Month           Month           `json:"month"`
	Year            int             `json:"year"`
	TotalRecords    int             `json:"total_records"`
	PaidCount       int             `json:"paid_count"`
	PendingCount    int             `json:"pending_count"`
	TotalBasic      decimal.Decimal `json:"total_basic"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`
	TotalPaidAmount decimal.Decimal `json:"total_paid_amount"`
}

// ========== BULK GENERATION ==========

type GenerationOutcome string

const (
	OutcomeCreated GenerationOutcome = "created"
	OutcomeSkipped GenerationOutcome = "skipped"
	OutcomeFailed  GenerationOutcome = "failed"
)

// EmployeeOutcome reports what bulk generation did for one employee.
type EmployeeOutcome struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeCode string            `json:"employee_code"`
	Outcome      GenerationOutcome `json:"outcome"`
	RecordID     *string           `json:"record_id,omitempty"`
	Error        *string           `json:"error,omitempty"`
}

// GenerationResult is the per-employee report of one bulk run. Created is the
// number of records written by this run.
type GenerationResult struct {
	Month    Month             `json:"month"`
	Year     int               `json:"year"`
	Created  int               `json:"created"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Outcomes []EmployeeOutcome `json:"outcomes"`
}

// Record appends an outcome and updates the counters.
func (g *GenerationResult) Record(o EmployeeOutcome) {
	switch o.Outcome {
	case OutcomeCreated:
		g.Created++
	case OutcomeSkipped:
		g.Skipped++
	case OutcomeFailed:
		g.Failed++
	}
	g.Outcomes = append(g.Outcomes, o)
}

// ========== PAYSLIP ==========

type PayslipLineResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type PayslipResponse struct {
	CompanyName     string                `json:"company_name"`
	RecordID        string                `json:"record_id"`
	EmployeeID      string                `json:"employee_id"`
	EmployeeCode    string                `json:"employee_code"`
	EmployeeName    string                `json:"employee_name"`
	Department      string                `json:"department"`
	Position        string                `json:"position"`
	Month           Month                 `json:"month"`
	Year            int                   `json:"year"`
	Earnings        []PayslipLineResponse `json:"earnings"`
	Deductions      []PayslipLineResponse `json:"deductions"`
	TotalEarnings   string                `json:"total_earnings"`
	TotalDeductions string                `json:"total_deductions"`
	NetSalary       string                `json:"net_salary"`
	EmployerPF      string                `json:"employer_pf"`
	Status          PaymentStatus         `json:"status"`
	PaymentDate     *string               `json:"payment_date,omitempty"`
}

// ========== HELPERS ==========

func validatePeriod(errs *validator.ValidationErrors, month string, year int) {
	if _, err := ParseMonth(month); err != nil {
		errs.Add("month", "must be a full English month name")
	}
	if year < 1900 || year > 9999 {
		errs.Add("year", "must be between 1900 and 9999")
	}
}

func validatePayment(errs *validator.ValidationErrors, paid bool, paymentDate *string) {
	if paymentDate == nil {
		return
	}
	if _, ok := validator.IsValidDate(*paymentDate); !ok {
		errs.Add("payment_date", "must be a date in YYYY-MM-DD format")
	}
	if !paid {
		errs.Add("payment_date", "can only be set on a paid record")
	}
}

// CheckPaymentState rejects a payment date on a record that is not paid.
// Updates check the merged record: a request carrying only payment_date
// leaves the stored paid flag in place.
func CheckPaymentState(record PayrollRecord) error {
	var errs validator.ValidationErrors
	if !record.Paid && record.PaymentDate != nil {
		errs.Add("payment_date", "can only be set on a paid record")
	}
	return errs.Err()
}

// FormatDate renders an optional date as YYYY-MM-DD.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// NewPayrollRecordResponse renders r with its derived totals.
func NewPayrollRecordResponse(c Calculator, r PayrollRecord) PayrollRecordResponse {
	employeePF, employerPF := c.ProvidentFund(r)
	return PayrollRecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       deref(r.EmployeeName),
		EmployeeCode:       deref(r.EmployeeCode),
		DepartmentName:     r.DepartmentName,
		Month:              r.Month,
		Year:               r.Year,
		BasicSalary:        r.BasicSalary,
		HouseRentAllowance: r.HouseRentAllowance,
		TravelAllowance:    r.TravelAllowance,
		MedicalAllowance:   r.MedicalAllowance,
		SpecialAllowance:   r.SpecialAllowance,
		OvertimeHours:      r.OvertimeHours,
		OvertimeRate:       r.OvertimeRate,
		ProfessionalTax:    r.ProfessionalTax,
		IncomeTax:          r.IncomeTax,
		OtherDeductions:    r.OtherDeductions,
		TotalEarnings:      c.TotalEarnings(r),
		TotalDeductions:    c.TotalDeductions(r),
		EmployeePF:         employeePF,
		EmployerPF:         employerPF,
		NetSalary:          r.NetSalary,
		Paid:               r.Paid,
		PaymentDate:        FormatDate(r.PaymentDate),
	}
}

func NewPayrollSummaryResponse(s PayrollSummary) PayrollSummaryResponse {
	return PayrollSummaryResponse{
		Month:           s.Month,
		Year:            s.Year,
		TotalRecords:    s.TotalRecords,
		PaidCount:       s.PaidCount,
		PendingCount:    s.PendingCount,
		TotalBasic:      s.TotalBasic,
		TotalNetSalary:  s.TotalNetSalary,
		TotalPaidAmount: s.TotalPaidAmount,
	}
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	lines := func(in []PayslipLine) []PayslipLineResponse {
		out := make([]PayslipLineResponse, len(in))
		for i, l := range in {
			out[i] = PayslipLineResponse{Label: l.Label, Amount: FormatAmount(l.Amount)}
		}
		return out
	}
	return PayslipResponse{
		CompanyName:     p.CompanyName,
		RecordID:        p.RecordID,
		EmployeeID:      p.Employee.ID,
		EmployeeCode:    p.Employee.Code,
		EmployeeName:    p.Employee.Name,
		Department:      p.Employee.Department,
		Position:        p.Employee.Position,
		Month:           p.Period.Month,
		Year:            p.Period.Year,
		Earnings:        lines(p.Earnings),
		Deductions:      lines(p.Deductions),
		TotalEarnings:   FormatAmount(p.TotalEarnings),
		TotalDeductions: FormatAmount(p.TotalDeductions),
		NetSalary:       FormatAmount(p.NetSalary),
		EmployerPF:      FormatAmount(p.EmployerPF),
		Status:          p.Status,
		PaymentDate:     FormatDate(p.PaymentDate),
	}
}
