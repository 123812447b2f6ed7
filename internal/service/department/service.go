package department

import (
	"context"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/department"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
}

func NewDepartmentService(repo department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{DepartmentRepository: repo}
}

func (s *DepartmentServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.DepartmentRepository.Create(ctx, department.Department{Name: req.Name})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(created), nil
}

func (s *DepartmentServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, department.NewDepartmentResponse(d))
	}
	return out, nil
}

// DeleteDepartment detaches member employees rather than deleting them.
func (s *DepartmentServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return s.DepartmentRepository.Delete(ctx, id)
}
