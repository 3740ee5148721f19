package routes

import (
	"net/http"
	"time"

	"lexaid/handlers"
	"lexaid/middleware"
	"lexaid/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("/signout", hb.Auth.SignOutHandler)
		protected.PUT("/password", hb.Auth.ChangePasswordHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.AuthMiddleware(hb.UserRepo))
	{
		api.GET("/me", hb.Users.GetProfileHandler)
		api.PATCH("/me", hb.Users.UpdateProfileHandler)
		api.GET("/lawyers", middleware.RequireStaff(), hb.Users.ListLawyersHandler)
	}
}

// RegisterAppointmentRoutes registers the appointment lifecycle and query
// endpoints. Transition endpoints are gated per role; the service layer
// additionally scopes reads.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.AuthMiddleware(hb.UserRepo))
	{
		api.POST("", middleware.RequireRoles(models.RoleClient, models.RoleFrontdesk, models.RoleAdmin), hb.Appointments.IntakeHandler)
		api.GET("", hb.Appointments.ListHandler)
		api.GET("/selectable-days", hb.Appointments.SelectableDaysHandler)
		api.GET("/open-slots", hb.Appointments.OpenSlotsHandler)
		api.GET("/control/:controlNumber", middleware.RequireStaff(), hb.Appointments.GetByControlNumberHandler)
		api.GET("/:id", hb.Appointments.GetHandler)
		api.GET("/:id/qr", hb.QR.ControlNumberQRHandler)
		api.GET("/:id/room-token", hb.Meetings.RoomTokenHandler)

		api.PUT("/:id/approve", middleware.RequireRoles(models.RoleHead, models.RoleAdmin), hb.Appointments.ApproveHandler)
		api.PUT("/:id/deny", middleware.RequireRoles(models.RoleHead, models.RoleAdmin), hb.Appointments.DenyHandler)
		api.PUT("/:id/schedule", middleware.RequireRoles(models.RoleHead, models.RoleFrontdesk, models.RoleAdmin), hb.Appointments.ScheduleHandler)
		api.PUT("/:id/reschedule", middleware.RequireRoles(models.RoleLawyer, models.RoleHead, models.RoleFrontdesk, models.RoleAdmin), hb.Appointments.RescheduleHandler)
		api.PUT("/:id/complete", middleware.RequireRoles(models.RoleLawyer, models.RoleHead, models.RoleAdmin), hb.Appointments.CompleteHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.AuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.Notifications.ListHandler)
		api.PUT("/:id/read", hb.Notifications.MarkReadHandler)
	}
}

// RegisterStorageRoutes registers file upload and download-URL endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.AuthMiddleware(hb.UserRepo))
	{
		api.POST("/profile-photo", hb.Storage.UploadProfilePhotoHandler)
		api.POST("/documents", hb.Storage.UploadDocumentHandler)
		api.POST("/reports", middleware.RequireRoles(models.RoleLawyer, models.RoleHead, models.RoleAdmin), hb.Storage.UploadReportHandler)
		api.GET("/reports/url", middleware.RequireRoles(models.RoleLawyer, models.RoleHead, models.RoleAdmin), hb.Storage.ReportDownloadURLHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for account administration and the
// audit trail.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(hb.UserRepo))
	adminGroup.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
		adminGroup.POST("/users", hb.Admin.CreateStaffAccountHandler)
		adminGroup.PUT("/users/:id/role", hb.Admin.SetRoleHandler)
		adminGroup.PUT("/users/:id/status", hb.Admin.SetStatusHandler)
		adminGroup.GET("/audit", hb.Admin.RecentAuditHandler)
		adminGroup.GET("/audit/:resource/:id", hb.Admin.AuditTrailHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
