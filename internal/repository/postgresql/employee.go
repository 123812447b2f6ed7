package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.employee_code, e.full_name, e.email, e.department_id, e.position, e.date_joined,
	e.base_salary, e.contact_number, e.address, e.created_at, e.updated_at, d.name`

const employeeFrom = `
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.DepartmentID, &emp.Position,
		&emp.DateJoined, &emp.BaseSalary, &emp.ContactNumber, &emp.Address, &emp.CreatedAt,
		&emp.UpdatedAt, &emp.DepartmentName,
	)
	return emp, err
}

// mapEmployeeWriteError translates constraint failures into domain errors.
func mapEmployeeWriteError(err error) error {
	if constraint, ok := database.IsUniqueViolation(err); ok {
		switch constraint {
		case "uk_employees_code":
			return employee.ErrEmployeeCodeExists
		case "uk_employees_email":
			return employee.ErrEmailExists
		}
	}
	if database.IsForeignKeyViolation(err) {
		return employee.ErrDepartmentNotFound
	}
	return err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.employee_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			employee_code, full_name, email, department_id, position, date_joined,
			base_salary, contact_number, address
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email, newEmployee.DepartmentID,
		newEmployee.Position, newEmployee.DateJoined, newEmployee.BaseSalary,
		newEmployee.ContactNumber, newEmployee.Address,
	).Scan(&id)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, id)
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET employee_code = $1, full_name = $2, email = $3, department_id = $4, position = $5,
			date_joined = $6, base_salary = $7, contact_number = $8, address = $9, updated_at = NOW()
		WHERE id = $10
	`

	cmdTag, err := q.Exec(ctx, query,
		emp.EmployeeCode, emp.FullName, emp.Email, emp.DepartmentID, emp.Position,
		emp.DateJoined, emp.BaseSalary, emp.ContactNumber, emp.Address, emp.ID,
	)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return e.GetByID(ctx, emp.ID)
}

// Delete implements employee.EmployeeRepository. Leave requests, payroll
// records and reviews go with the employee (ON DELETE CASCADE).
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	cmdTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `SELECT ` + employeeColumns + employeeFrom + where +
		fmt.Sprintf(" ORDER BY e.employee_code LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// GetAll implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+employeeFrom+` ORDER BY e.employee_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}
