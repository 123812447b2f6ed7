package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const payrollPeriodConstraint = "uk_payroll_records_employee_period"

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	pr.id, pr.employee_id, pr.month, pr.year,
	pr.basic_salary, pr.house_rent_allowance, pr.travel_allowance, pr.medical_allowance,
	pr.special_allowance, pr.overtime_hours, pr.overtime_rate,
	pr.professional_tax, pr.income_tax, pr.other_deductions, pr.net_salary,
	pr.paid, pr.payment_date, pr.created_at, pr.updated_at,
	e.full_name, e.employee_code, e.position, d.name`

const payrollFrom = `
	FROM payroll_records pr
	INNER JOIN employees e ON e.id = pr.employee_id
	LEFT JOIN departments d ON d.id = e.department_id`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Month, &r.Year,
		&r.BasicSalary, &r.HouseRentAllowance, &r.TravelAllowance, &r.MedicalAllowance,
		&r.SpecialAllowance, &r.OvertimeHours, &r.OvertimeRate,
		&r.ProfessionalTax, &r.IncomeTax, &r.OtherDeductions, &r.NetSalary,
		&r.Paid, &r.PaymentDate, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeCode, &r.Position, &r.DepartmentName,
	)
	return r, err
}

func collectPayrollRecords(rows pgx.Rows) ([]payroll.PayrollRecord, error) {
	records := []payroll.PayrollRecord{}
	for rows.Next() {
		r, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Create stores a normalized record. A second record for the same
// (employee, month, year) fails with ErrPayrollRecordAlreadyExists.
func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, month, year, basic_salary, house_rent_allowance, travel_allowance,
			medical_allowance, special_allowance, overtime_hours, overtime_rate,
			professional_tax, income_tax, other_deductions, net_salary, paid, payment_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, record.BasicSalary, record.HouseRentAllowance,
		record.TravelAllowance, record.MedicalAllowance, record.SpecialAllowance,
		record.OvertimeHours, record.OvertimeRate, record.ProfessionalTax, record.IncomeTax,
		record.OtherDeductions, record.NetSalary, record.Paid, record.PaymentDate,
	).Scan(&id)
	if err != nil {
		if constraint, ok := database.IsUniqueViolation(err); ok && constraint == payrollPeriodConstraint {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		if database.IsForeignKeyViolation(err) {
			return payroll.PayrollRecord{}, employee.ErrEmployeeNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + ` WHERE pr.id = $1`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return record, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, period payroll.Period) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + `
		WHERE pr.employee_id = $1 AND pr.month = $2 AND pr.year = $3`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, period.Month, period.Year))
	if err != nil {
		if isNoRows(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}
	return record, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("pr.month = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("pr.year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Paid != nil {
		conditions = append(conditions, fmt.Sprintf("pr.paid = $%d", argIdx))
		args = append(args, *filter.Paid)
		argIdx++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_records pr`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := `SELECT ` + payrollColumns + payrollFrom + where +
		fmt.Sprintf(" ORDER BY pr.year DESC, %s DESC, e.employee_code LIMIT $%d OFFSET $%d", monthOrderExpr, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records, err := collectPayrollRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// monthOrderExpr sorts month names in calendar order.
const monthOrderExpr = `array_position(ARRAY['January','February','March','April','May','June','July','August','September','October','November','December']::varchar[], pr.month)`

func (r *payrollRepository) ListByPeriod(ctx context.Context, period payroll.Period) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + `
		WHERE pr.month = $1 AND pr.year = $2
		ORDER BY e.employee_code`

	rows, err := q.Query(ctx, query, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records by period: %w", err)
	}
	defer rows.Close()

	return collectPayrollRecords(rows)
}

// Update writes every mutable field; the caller has already normalized the record.
func (r *payrollRepository) Update(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET basic_salary = $1, house_rent_allowance = $2, travel_allowance = $3,
			medical_allowance = $4, special_allowance = $5, overtime_hours = $6,
			overtime_rate = $7, professional_tax = $8, income_tax = $9,
			other_deductions = $10, net_salary = $11, paid = $12, payment_date = $13,
			updated_at = NOW()
		WHERE id = $14
	`

	cmdTag, err := q.Exec(ctx, query,
		record.BasicSalary, record.HouseRentAllowance, record.TravelAllowance,
		record.MedicalAllowance, record.SpecialAllowance, record.OvertimeHours,
		record.OvertimeRate, record.ProfessionalTax, record.IncomeTax,
		record.OtherDeductions, record.NetSalary, record.Paid, record.PaymentDate,
		record.ID,
	)
	if err != nil {
		if isNoRows(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmdTag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, period payroll.Period) (payroll.PayrollSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE paid),
			COUNT(*) FILTER (WHERE NOT paid),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(net_salary), 0),
			COALESCE(SUM(net_salary) FILTER (WHERE paid), 0)
		FROM payroll_records
		WHERE month = $1 AND year = $2
	`

	summary := payroll.PayrollSummary{Month: period.Month, Year: period.Year}
	var totalBasic, totalNet, totalPaid decimal.Decimal
	err := q.QueryRow(ctx, query, period.Month, period.Year).Scan(
		&summary.TotalRecords, &summary.PaidCount, &summary.PendingCount,
		&totalBasic, &totalNet, &totalPaid,
	)
	if err != nil {
		return payroll.PayrollSummary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	summary.TotalBasic = totalBasic
	summary.TotalNetSalary = totalNet
	summary.TotalPaidAmount = totalPaid
	return summary, nil
}
