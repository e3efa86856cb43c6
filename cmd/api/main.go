package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/config"
	appHTTP "github.com/cmlabs-hris/workflow-erp/internal/handler/http"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/cron"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/oauth"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/storage"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	"github.com/cmlabs-hris/workflow-erp/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/workflow-erp/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/workflow-erp/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/workflow-erp/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/workflow-erp/internal/service/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
	invoiceService "github.com/cmlabs-hris/workflow-erp/internal/service/invoice"
	leaveService "github.com/cmlabs-hris/workflow-erp/internal/service/leave"
	profileService "github.com/cmlabs-hris/workflow-erp/internal/service/profile"
	settingsService "github.com/cmlabs-hris/workflow-erp/internal/service/settings"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	timeofday.SetLocation(cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return err
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	leavePolicyRepo := postgresql.NewLeavePolicyRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.JWT.Secret,
		)
	}

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(tx, userRepo, refreshTokenRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, breakRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(tx, leavePolicyRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo)
	invoiceSvc := invoiceService.NewInvoiceService(invoiceRepo)
	profileSvc := profileService.NewProfileService(userRepo, fileService, hub)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, fileService, hub)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL),
		Profile:    appHTTP.NewProfileHandler(profileSvc),
		Events:     appHTTP.NewEventsHandler(JWTService, hub),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Invoice:    appHTTP.NewInvoiceHandler(invoiceSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
	}, appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadDir:      fileStorage.Dir(),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.App.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when the process is asked to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
