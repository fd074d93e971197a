package main

import (
	"fmt"
	"net/http"

	"github.com/dokterku/klinik-backend-go/internal/config"
	appHTTP "github.com/dokterku/klinik-backend-go/internal/handler/http"
	"github.com/dokterku/klinik-backend-go/internal/pkg/cache"
	"github.com/dokterku/klinik-backend-go/internal/pkg/database"
	"github.com/dokterku/klinik-backend-go/internal/pkg/jwt"
	"github.com/dokterku/klinik-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dokterku/klinik-backend-go/internal/service/attendance"
	authService "github.com/dokterku/klinik-backend-go/internal/service/auth"
	scheduleService "github.com/dokterku/klinik-backend-go/internal/service/schedule"
	worklocationService "github.com/dokterku/klinik-backend-go/internal/service/worklocation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)
	shiftTemplateRepo := postgresql.NewShiftTemplateRepository(db)
	scheduleEntryRepo := postgresql.NewScheduleEntryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	statusCache := cache.NewMemory()

	auth := authService.NewAuthService(userRepo, jwtService)
	locations := worklocationService.NewWorkLocationService(workLocationRepo, cfg.Attendance)
	schedules := scheduleService.NewScheduleService(db, shiftTemplateRepo, scheduleEntryRepo, notificationRepo, userRepo, cfg.Attendance)
	attendances := attendanceService.NewAttendanceService(attendanceRepo, locations, schedules, statusCache, cfg.Attendance)

	authHandler := appHTTP.NewAuthHandler(auth, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendances)
	workLocationHandler := appHTTP.NewWorkLocationHandler(locations)
	scheduleHandler := appHTTP.NewScheduleHandler(schedules)
	notificationHandler := appHTTP.NewNotificationHandler(notificationRepo)

	router := appHTTP.NewRouter(cfg.App, jwtService, authHandler, attendanceHandler, workLocationHandler, scheduleHandler, notificationHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
