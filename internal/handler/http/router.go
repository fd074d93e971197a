package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/dokterku/klinik-backend-go/internal/config"
	"github.com/dokterku/klinik-backend-go/internal/domain/user"
	"github.com/dokterku/klinik-backend-go/internal/handler/http/middleware"
	"github.com/dokterku/klinik-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	appCfg config.AppConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	workLocationHandler WorkLocationHandler,
	scheduleHandler ScheduleHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "klinik-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	level := slog.LevelInfo
	if appCfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  level,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/check-out", attendanceHandler.CheckOut)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/today", attendanceHandler.Today)
					r.Get("/my", attendanceHandler.GetMyAttendance)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", attendanceHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/summary", attendanceHandler.Summary)
				})
			})

			r.Route("/work-locations", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionWorkLocationManage))
				r.Post("/", workLocationHandler.Create)
				r.Get("/", workLocationHandler.List)
				r.Get("/{id}", workLocationHandler.Get)
				r.Put("/{id}", workLocationHandler.Update)
				r.Delete("/{id}", workLocationHandler.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Put("/{id}/read", notificationHandler.MarkAsRead)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleViewOwn))
					r.Get("/my", scheduleHandler.GetMySchedule)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Post("/", scheduleHandler.CreateScheduleEntry)
					r.Post("/bulk", scheduleHandler.BulkCreateSchedules)
					r.Delete("/{id}", scheduleHandler.DeleteScheduleEntry)

					r.Route("/shift-templates", func(r chi.Router) {
						r.Post("/", scheduleHandler.CreateShiftTemplate)
						r.Get("/", scheduleHandler.ListShiftTemplates)
						r.Put("/{id}", scheduleHandler.UpdateShiftTemplate)
						r.Delete("/{id}", scheduleHandler.DeleteShiftTemplate)
					})
				})
			})
		})
	})
	return r
}
