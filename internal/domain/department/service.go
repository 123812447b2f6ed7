package department

import "context"

type DepartmentService interface {
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error
}
