// File: lexaid/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexaid/config"
	"lexaid/cron"
	"lexaid/database"
	appointmentRepoPkg "lexaid/database/repository/appointment"
	auditRepoPkg "lexaid/database/repository/audit"
	notificationRepoPkg "lexaid/database/repository/notification"
	userRepoPkg "lexaid/database/repository/user"
	"lexaid/handlers"
	"lexaid/middleware"
	"lexaid/routes"
	"lexaid/services/appointment"
	"lexaid/services/meeting"
	"lexaid/services/notification"
	"lexaid/services/scheduling"
	"lexaid/services/tasks"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()
	auditRepo := auditRepoPkg.NewMongoAuditRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:  userRepo,
		Audit: auditRepo,
	}

	notificationService, err := notification.NewDefaultNotificationService(notifRepo, userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	holidaySource := scheduling.NewCalendarificClient(utils.GetCacheClient())
	meetingService := meeting.NewHTTPMeetingService()
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:      apptRepo,
		Users:     userRepo,
		Audit:     auditRepo,
		Notifier:  notificationService,
		Meetings:  meetingService,
		Holidays:  holidaySource,
		Rules:     scheduling.DefaultRules(),
		Reminders: reminderScheduler,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService),
		Admin:         handlers.NewAdminHandler(userService, auditRepo),
		Appointments:  handlers.NewAppointmentHandler(appointmentService),
		Notifications: handlers.NewNotificationHandler(notifRepo),
		Storage:       handlers.NewStorageHandler(cloudinaryStorageService),
		Meetings:      handlers.NewMeetingHandler(appointmentService),
		QR:            handlers.NewQRHandler(appointmentService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker(apptRepo, notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
