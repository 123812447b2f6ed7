package department

import (
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r).Err()
}

type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employee_count"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, EmployeeCount: d.EmployeeCount}
}
