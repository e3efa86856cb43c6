package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Profile    ProfileHandler
	Events     EventsHandler
	Dashboard  DashboardHandler
	Settings   SettingsHandler
	Employee   EmployeeHandler
	Invoice    InvoiceHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
}

type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	// UploadDir is served under /uploads when set.
	UploadDir string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// The event stream stays open for the whole session.
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/events"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// Authenticated by a short-lived token in the query string
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/events/token", h.Events.Token)
			r.Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Profile.GetMe)
				r.Put("/", h.Profile.UpdateMe)
				r.Put("/password", h.Profile.ChangePassword)
				r.Post("/avatar", h.Profile.UploadAvatar)
			})

			r.Route("/settings/logo", func(r chi.Router) {
				r.Get("/", h.Settings.GetLogo)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsEditLogo))
					r.Put("/", h.Settings.UpdateLogo)
					r.Post("/upload", h.Settings.UploadLogo)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
					r.Post("/{id}/user", h.Employee.CreateUser)
					r.Put("/{id}/user/password", h.Employee.UpsertUserPassword)
				})
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.Invoice.List)
				r.Get("/{id}", h.Invoice.Get)
				r.Get("/{id}/pdf", h.Invoice.DownloadPDF)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionInvoiceManage))
					r.Post("/", h.Invoice.Create)
					r.Put("/{id}", h.Invoice.Update)
					r.Delete("/{id}", h.Invoice.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/days", h.Attendance.ListByDay)
				r.Get("/summary", h.Attendance.Summary)
				r.Get("/timesheet", h.Attendance.Timesheet)
				r.Post("/checkin", h.Attendance.CheckIn)
				r.Post("/checkout", h.Attendance.CheckOut)

				// Older clients use the alternate break paths
				for _, p := range []string{"/break/start", "/start", "/breaks/start"} {
					r.Post(p, h.Attendance.StartBreak)
				}
				for _, p := range []string{"/break/end", "/end", "/breaks/end"} {
					r.Post(p, h.Attendance.EndBreak)
				}

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManual))
					for _, p := range []string{"/break/manual", "/manual", "/manual-break", "/breaks/manual"} {
						r.Post(p, h.Attendance.AddManualBreak)
					}
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceDelete))
					r.Delete("/{id}", h.Attendance.Delete)
					r.Delete("/employee/{employeeId}", h.Attendance.DeleteByEmployee)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/requests", h.Leave.ListRequests)
				r.Post("/requests", h.Leave.CreateRequest)
				r.Patch("/requests/{id}", h.Leave.UpdateRequest)
				r.Delete("/requests/{id}", h.Leave.DeleteRequest)
				r.Get("/balances", h.Leave.ListBalances)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeavePolicies))
					r.Get("/policies", h.Leave.GetPolicies)
					r.Put("/policies", h.Leave.UpdatePolicies)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					mountLeaveDecisions(r, "/requests/{id}", h.Leave)
					mountLeaveDecisions(r, "/{id}", h.Leave)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
				mountLeaveDecisions(r, "/leaves/requests/{id}", h.Leave)
			})
		})
	})
	return r
}

func mountLeaveDecisions(r chi.Router, prefix string, h LeaveHandler) {
	r.Patch(prefix+"/approve", h.ApproveRequest)
	r.Patch(prefix+"/reject", h.RejectRequest)
	r.Patch(prefix+"/pending", h.MarkPending)
}
