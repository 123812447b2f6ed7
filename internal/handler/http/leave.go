package http

import (
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.ApplyLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

func (h *leaveHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListMyLeaveRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result.Data)
}

func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveRequestFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
	}
	if status := optionalQuery(r, "status"); status != nil {
		s := leave.LeaveRequestStatus(*status)
		filter.Status = &s
	}
	filter.Page, filter.Limit = pageParams(r)

	result, err := h.leaveService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.RejectLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}
