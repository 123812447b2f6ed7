package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the cross-cutting settings of the HTTP surface.
type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsDir is served read-only under /uploads when set
	UploadsDir string
}

type Handlers struct {
	Department DepartmentHandler
	Employee   EmployeeHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Candidate  CandidateHandler
	Review     ReviewHandler
	Dashboard  DashboardHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		// Public
		r.Post("/candidates", h.Candidate.Register)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.ListMy)
				r.Get("/{id}", h.Leave.Get)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/my", h.Payroll.ListMyPayslips)
				r.Get("/{id}", h.Payroll.GetPayslip)
				r.Get("/{id}/pdf", h.Payroll.GetPayslipPDF)
			})

			r.Get("/dashboard/me", h.Dashboard.GetEmployeeDashboard)

			// HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Get("/dashboard/hr", h.Dashboard.GetHRDashboard)

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", h.Department.List)
					r.Post("/", h.Department.Create)
					r.Delete("/{id}", h.Department.Delete)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Get("/{id}/reviews", h.Employee.ListReviews)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/", h.Payroll.ListPayrollRecords)
					r.Post("/", h.Payroll.CreatePayrollRecord)
					r.Post("/generate", h.Payroll.GeneratePayroll)
					r.Get("/summary", h.Payroll.GetPayrollSummary)
					r.Get("/export", h.Payroll.ExportPayroll)
					r.Get("/{id}", h.Payroll.GetPayrollRecord)
					r.Put("/{id}", h.Payroll.UpdatePayrollRecord)
					r.Delete("/{id}", h.Payroll.DeletePayrollRecord)
					r.Post("/{id}/pay", h.Payroll.MarkPaid)
				})

				r.Get("/candidates", h.Candidate.List)
				r.Post("/reviews", h.Review.Create)
				r.Get("/promotions/eligibility", h.Review.PromotionEligibility)
			})
		})
	})
	return r
}
