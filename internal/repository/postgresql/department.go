package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query, dept.Name).Scan(&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if _, ok := database.IsUniqueViolation(err); ok {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.created_at, d.updated_at,
			(SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id)
		FROM departments d
		WHERE d.id = $1
	`

	var dept department.Department
	err := q.QueryRow(ctx, query, id).Scan(&dept.ID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt, &dept.EmployeeCount)
	if err != nil {
		if isNoRows(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return dept, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.created_at, d.updated_at, COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		GROUP BY d.id
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		var dept department.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt, &dept.EmployeeCount); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

// Delete leaves member employees without a department (ON DELETE SET NULL).
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmdTag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
