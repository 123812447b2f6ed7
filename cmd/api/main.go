package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/config"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	appHTTP "github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/postgresql"
	candidateService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/candidate"
	dashboardService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/dashboard"
	departmentService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/payroll"
	reviewService "github.com/cmlabs-hris/smarthr-backend-go/internal/service/review"
	"github.com/cmlabs-hris/smarthr-backend-go/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	scripts, err := migrations.Scripts()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	if err := db.Migrate(ctx, scripts); err != nil {
		return err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	// Repositories
	txManager := postgresql.NewTxManager(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	candidateRepo := postgresql.NewCandidateRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	policy := payroll.DefaultPolicy()
	policy.ProfessionalTax = cfg.Payroll.ProfessionalTax
	policy.PFCeiling = cfg.Payroll.PFCeiling

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, departmentRepo, log)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, log)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo, leaveRequestRepo, payrollService.Options{
		Policy:      policy,
		CompanyName: cfg.Payroll.CompanyName,
		Logger:      log,
	})
	candidateSvc := candidateService.NewCandidateService(candidateRepo, fileService, log)
	reviewSvc := reviewService.NewReviewService(reviewRepo, employeeRepo, review.DefaultPromotionRule())
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, leaveRequestRepo, payrollRepo, policy, time.Now)

	// Handlers
	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, reviewSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Candidate:  appHTTP.NewCandidateHandler(candidateSvc),
		Review:     appHTTP.NewReviewHandler(reviewSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}, appHTTP.RouterOptions{
		Logger:         log,
		LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		AllowedOrigins: []string{cfg.App.FrontendURL},
		UploadsDir:     fileStorage.BasePath(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
