package employee

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	logger         *slog.Logger
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	logger *slog.Logger,
) employee.EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		logger:         logger.With(slog.String("service", "employee")),
	}
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	deptID := emptyToNil(req.DepartmentID)
	if err := s.ensureDepartment(ctx, deptID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joined, _ := validator.IsValidDate(req.DateJoined)
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeCode:  req.EmployeeCode,
		FullName:      req.FullName,
		Email:         req.Email,
		DepartmentID:  deptID,
		Position:      strings.TrimSpace(req.Position),
		DateJoined:    joined,
		BaseSalary:    req.BaseSalary,
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Address:       strings.TrimSpace(req.Address),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.InfoContext(ctx, "employee created",
		slog.String("employee_id", created.ID),
		slog.String("employee_code", created.EmployeeCode),
	)
	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		next := req.Apply(current)
		if req.DepartmentID != nil {
			if err := s.ensureDepartment(ctx, next.DepartmentID); err != nil {
				return err
			}
		}

		updated, err = s.employeeRepo.Update(ctx, next)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee removes the employee; leave, payroll and review history
// is deleted with it by the database.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employee deleted", slog.String("employee_id", id))
	return nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, employee.NewEmployeeResponse(e))
	}
	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) ensureDepartment(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.departmentRepo.GetByID(ctx, *id); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return employee.ErrDepartmentNotFound
		}
		return err
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
