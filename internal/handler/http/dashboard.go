package http

import (
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetHRDashboard returns organisation counters for HR staff
	GetHRDashboard(w http.ResponseWriter, r *http.Request)
	// GetEmployeeDashboard returns the caller's profile, leave and payroll history
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetHRDashboard handles GET /dashboard/hr
func (h *dashboardHandlerImpl) GetHRDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetHRDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeDashboard handles GET /dashboard/me
func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployeeDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
