package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/candidate"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubDepartments struct{ department.DepartmentService }

func (stubDepartments) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	return []department.DepartmentResponse{{ID: "d1", Name: "Engineering", EmployeeCount: 3}}, nil
}

func (stubDepartments) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.DepartmentResponse{}, department.ErrDepartmentNameExists
}

type stubLeaves struct{ leave.LeaveService }

func (stubLeaves) ApproveLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
}

func (stubLeaves) ApplyLeave(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.LeaveRequestResponse{ID: "lr1", EmployeeID: *identity.EmployeeID, Status: "Pending", Days: 2}, nil
}

type stubPayroll struct{ payroll.PayrollService }

func (stubPayroll) GenerateBulkPayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerationResult{}, err
	}
	result := payroll.GenerationResult{Month: payroll.June, Year: req.Year}
	result.Record(payroll.EmployeeOutcome{EmployeeID: "e1", Outcome: payroll.OutcomeCreated})
	result.Record(payroll.EmployeeOutcome{EmployeeID: "e2", Outcome: payroll.OutcomeSkipped})
	return result, nil
}

func (stubPayroll) RenderPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	switch id {
	case "other":
		return payroll.Payslip{}, payroll.ErrPayslipAccessDenied
	case "missing":
		return payroll.Payslip{}, payroll.ErrPayrollRecordNotFound
	}
	return payroll.Payslip{RecordID: id, Period: payroll.Period{Month: payroll.June, Year: 2024}}, nil
}

func (stubPayroll) ListMyPayroll(ctx context.Context, page, limit int) (payroll.ListPayrollRecordResponse, error) {
	filter := payroll.PayrollFilter{Page: page, Limit: limit}
	filter.Normalize()
	return payroll.ListPayrollRecordResponse{
		Data:       []payroll.PayrollRecordResponse{{ID: "rec-3", EmployeeID: "e1"}},
		TotalCount: 45,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (stubPayroll) ExportPeriod(ctx context.Context, month string, year int, w io.Writer) error {
	if _, err := payroll.ParseMonth(month); err != nil {
		return err
	}
	_, err := w.Write([]byte("PK-xlsx"))
	return err
}

type stubCandidates struct {
	candidate.CandidateService
	gotCV string
}

func (s *stubCandidates) Register(ctx context.Context, req candidate.RegisterCandidateRequest, cv io.Reader) (candidate.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return candidate.CandidateResponse{}, err
	}
	body, err := io.ReadAll(cv)
	if err != nil {
		return candidate.CandidateResponse{}, err
	}
	s.gotCV = string(body)
	return candidate.CandidateResponse{ID: "c1", Name: req.Name, CVURL: "http://files/cvs/c1.pdf"}, nil
}

type testServer struct {
	handler    http.Handler
	tokens     jwt.Service
	candidates *stubCandidates
}

func newTestServer() *testServer {
	tokens := jwt.NewJWTService(handlerTestSecret, "1h")
	candidates := &stubCandidates{}
	h := Handlers{
		Department: NewDepartmentHandler(stubDepartments{}),
		Employee:   NewEmployeeHandler(struct{ employee.EmployeeService }{}, struct{ review.ReviewService }{}),
		Leave:      NewLeaveHandler(stubLeaves{}),
		Payroll:    NewPayrollHandler(stubPayroll{}),
		Candidate:  NewCandidateHandler(candidates),
		Review:     NewReviewHandler(struct{ review.ReviewService }{}),
		Dashboard:  NewDashboardHandler(struct{ dashboard.DashboardService }{}),
	}
	return &testServer{
		handler:    NewRouter(tokens, h, RouterOptions{Logger: logger.Nop()}),
		tokens:     tokens,
		candidates: candidates,
	}
}

func (s *testServer) token(t *testing.T, role jwt.Role, employeeID *string) string {
	t.Helper()
	token, _, err := s.tokens.GenerateAccessToken(jwt.Identity{UserID: "u1", Email: "u1@example.com", Role: role, EmployeeID: employeeID})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var env response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func ptr[T any](v T) *T { return &v }

func TestRouterAuthentication(t *testing.T) {
	s := newTestServer()

	t.Run("missing token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/departments", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := jwt.NewJWTService("another-secret", "1h")
		token, _, err := other.GenerateAccessToken(jwt.Identity{UserID: "u1", Role: jwt.RoleHR})
		require.NoError(t, err)
		rec := s.do(t, http.MethodGet, "/api/v1/departments", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("employee cannot reach HR routes", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/departments", s.token(t, jwt.RoleEmployee, ptr("e1")), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("HR gets the envelope", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/departments", s.token(t, jwt.RoleHR, nil), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Len(t, env.Data, 1)
	})
}

func TestRouterErrorMapping(t *testing.T) {
	s := newTestServer()
	hr := s.token(t, jwt.RoleHR, nil)

	t.Run("validation errors are 422 with details", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/departments", hr, map[string]string{"name": "  "})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Details, "name")
	})

	t.Run("duplicate name is 409", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/departments", hr, map[string]string{"name": "Engineering"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("processed leave is 409", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/leaves/lr1/approve", hr, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/generate", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer "+hr)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouterPayroll(t *testing.T) {
	s := newTestServer()
	hr := s.token(t, jwt.RoleHR, nil)

	t.Run("bulk generation reports counts", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/payroll/generate", hr, map[string]any{"month": "June", "year": 2024})
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Payroll generated: 1 created, 1 skipped, 0 failed", env.Message)
	})

	t.Run("bulk generation validates the period", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/payroll/generate", hr, map[string]any{"month": "Jun", "year": 2024})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("export streams an attachment", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/payroll/export?month=June&year=2024", hr, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-june-2024.xlsx")
		assert.Equal(t, "PK-xlsx", rec.Body.String())
	})

	t.Run("export with a bad month is 400", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/payroll/export?month=Juno&year=2024", hr, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouterPayslips(t *testing.T) {
	s := newTestServer()
	employeeToken := s.token(t, jwt.RoleEmployee, ptr("e1"))

	rec := s.do(t, http.MethodGet, "/api/v1/payslips/rec-1", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payslips/other", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payslips/missing", employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("my payslips carry paging meta", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/payslips/my?page=3&limit=20", employeeToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Meta)
		assert.Equal(t, 3, env.Meta.Page)
		assert.Equal(t, 20, env.Meta.Limit)
		assert.Equal(t, int64(45), env.Meta.TotalItems)
		assert.Equal(t, 3, env.Meta.TotalPages)
	})
}

func TestRouterLeaveApply(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodPost, "/api/v1/leaves", s.token(t, jwt.RoleEmployee, ptr("e7")), map[string]string{
		"start_date": "2024-06-10", "end_date": "2024-06-11", "reason": "family",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Data leave.LeaveRequestResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "e7", env.Data.EmployeeID)
}

func multipartCV(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("cv", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRouterCandidateRegistration(t *testing.T) {
	s := newTestServer()
	fields := map[string]string{"name": "Mina", "email": "mina@example.com", "position": "Designer"}

	t.Run("public upload", func(t *testing.T) {
		body, contentType := multipartCV(t, fields, "mina.pdf", "%PDF-1.4")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "%PDF-1.4", s.candidates.gotCV)
	})

	t.Run("missing cv", func(t *testing.T) {
		body, contentType := multipartCV(t, fields, "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, candidate.ErrCVRequired.Error(), env.Error.Details["cv"])
	})

	t.Run("listing requires HR", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/candidates", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestNewMeta(t *testing.T) {
	meta := response.NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, response.NewMeta(1, 0, 5).TotalPages)
}
