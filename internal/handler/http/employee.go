package http

import (
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListReviews(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	reviewService   review.ReviewService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, reviewService review.ReviewService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		reviewService:   reviewService,
	}
}

func (e *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		Search:       optionalQuery(r, "search"),
		DepartmentID: optionalQuery(r, "department_id"),
	}
	filter.Page, filter.Limit = pageParams(r)

	result, err := e.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (e *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := e.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (e *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := e.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (e *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := e.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

func (e *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := e.employeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

func (e *employeeHandlerImpl) ListReviews(w http.ResponseWriter, r *http.Request) {
	result, err := e.reviewService.ListEmployeeReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
