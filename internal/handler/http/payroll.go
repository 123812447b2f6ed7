package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/payslip"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Payroll Records
	CreatePayrollRecord(w http.ResponseWriter, r *http.Request)
	GetPayrollRecord(w http.ResponseWriter, r *http.Request)
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	UpdatePayrollRecord(w http.ResponseWriter, r *http.Request)
	DeletePayrollRecord(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)

	// Bulk
	GeneratePayroll(w http.ResponseWriter, r *http.Request)

	// Period reports
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
	ExportPayroll(w http.ResponseWriter, r *http.Request)

	// Payslips
	ListMyPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	GetPayslipPDF(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PAYROLL RECORDS ==========

func (h *payrollHandlerImpl) CreatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created", result)
}

func (h *payrollHandlerImpl) GetPayrollRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
	}

	if m := optionalQuery(r, "month"); m != nil {
		month, err := payroll.ParseMonth(*m)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Month = &month
	}
	if y := optionalQuery(r, "year"); y != nil {
		year, err := strconv.Atoi(*y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		filter.Year = &year
	}
	if p := optionalQuery(r, "paid"); p != nil {
		paid, err := strconv.ParseBool(*p)
		if err != nil {
			response.BadRequest(w, "paid must be true or false", nil)
			return
		}
		filter.Paid = &paid
	}
	filter.Page, filter.Limit = pageParams(r)

	result, err := h.payrollService.ListPayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) UpdatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record updated", result)
}

func (h *payrollHandlerImpl) DeletePayrollRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePayroll(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", result)
}

// ========== BULK ==========

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateBulkPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Payroll generated: %d created, %d skipped, %d failed", result.Created, result.Skipped, result.Failed)
	response.SuccessWithMessage(w, message, result)
}

// ========== PERIOD REPORTS ==========

func periodParams(r *http.Request) (string, int) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	return r.URL.Query().Get("month"), year
}

func (h *payrollHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	month, year := periodParams(r)

	result, err := h.payrollService.GetSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	month, year := periodParams(r)

	var buf bytes.Buffer
	if err := h.payrollService.ExportPeriod(r.Context(), month, year, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll-%s-%d.xlsx", strings.ToLower(month), year)
	writeAttachment(w, export.ContentTypeXLSX, filename, buf.Bytes())
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) ListMyPayslips(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	result, err := h.payrollService.ListMyPayroll(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payrollService.RenderPayslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponse(slip))
}

func (h *payrollHandlerImpl) GetPayslipPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var buf bytes.Buffer
	if err := h.payrollService.RenderPayslipPDF(r.Context(), id, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	writeAttachment(w, payslip.ContentTypePDF, "payslip-"+id+".pdf", buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
