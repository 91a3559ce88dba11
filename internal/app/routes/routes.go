package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/akash/placementhub/internal/app/controllers"
	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	companyController *controllers.CompanyController,
	driveController *controllers.DriveController,
	applicationController *controllers.ApplicationController,
	notificationController *controllers.NotificationController,
	settingsController *controllers.SettingsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/admin/login", authController.AdminLogin)
		auth.POST("/student/login", authController.StudentLogin)
		auth.POST("/student/register", authController.RegisterStudent)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", authController.Me)
	authenticated.POST("/auth/password", authController.ChangePassword)

	// Admin account management (main admin only)
	admins := authenticated.Group("/auth/admins")
	admins.Use(authMiddleware.MainAdminRequired())
	{
		admins.POST("", authController.CreateAdmin)
		admins.GET("", authController.ListAdmins)
		admins.DELETE("/:id", authController.DeleteAdmin)
	}

	// Student self-service
	authenticated.GET("/students/me", authMiddleware.StudentRequired(), studentController.GetProfile)
	authenticated.PUT("/students/me", authMiddleware.StudentRequired(), studentController.UpdateProfile)

	// Student management (admins)
	students := authenticated.Group("/students")
	students.Use(authMiddleware.AdminRequired())
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// Company registry (admins)
	companies := authenticated.Group("/companies")
	companies.Use(authMiddleware.AdminRequired())
	{
		companies.POST("", companyController.CreateCompany)
		companies.GET("", companyController.ListCompanies)
		companies.GET("/:id", companyController.GetCompany)
		companies.PUT("/:id", companyController.UpdateCompany)
		companies.DELETE("/:id", companyController.DeleteCompany)
	}

	// Drives: reads for everyone logged in, writes for admins
	drives := authenticated.Group("/drives")
	{
		drives.GET("", driveController.ListDrives)
		drives.GET("/:id", driveController.GetDrive)
		drives.GET("/:id/eligibility", authMiddleware.StudentRequired(), driveController.CheckEligibility)

		drivesAdmin := drives.Group("")
		drivesAdmin.Use(authMiddleware.AdminRequired())
		{
			drivesAdmin.POST("", driveController.CreateDrive)
			drivesAdmin.PUT("/:id", driveController.UpdateDrive)
			drivesAdmin.DELETE("/:id", driveController.DeleteDrive)
			drivesAdmin.POST("/:id/publish", driveController.PublishDrive)
			drivesAdmin.GET("/:id/eligible-students", driveController.EligibleStudents)
			drivesAdmin.GET("/:id/stats", applicationController.DriveStats)
		}
	}

	// Applications
	applications := authenticated.Group("/applications")
	{
		applications.POST("", authMiddleware.StudentRequired(), applicationController.Apply)
		applications.GET("/mine", authMiddleware.StudentRequired(), applicationController.MyApplications)
		applications.GET("/mine/stats", authMiddleware.StudentRequired(), applicationController.MyStats)
		applications.GET("", applicationController.ListApplications)
		applications.GET("/:id", applicationController.GetApplication)
		applications.DELETE("/:id", applicationController.Withdraw)

		applicationsAdmin := applications.Group("")
		applicationsAdmin.Use(authMiddleware.AdminRequired())
		{
			applicationsAdmin.PUT("/:id/status", applicationController.UpdateStatus)
			applicationsAdmin.PUT("/:id/round-status", applicationController.UpdateRoundStatus)
			applicationsAdmin.POST("/bulk-status", applicationController.BulkUpdateStatus)
		}
	}

	// Notifications
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.GET("/unread-count", authMiddleware.StudentRequired(), notificationController.UnreadCount)
		notifications.PUT("/:id/read", authMiddleware.StudentRequired(), notificationController.MarkRead)
		notifications.PUT("/read-all", authMiddleware.StudentRequired(), notificationController.MarkAllRead)

		notificationsAdmin := notifications.Group("")
		notificationsAdmin.Use(authMiddleware.AdminRequired())
		{
			notificationsAdmin.POST("/broadcast", notificationController.Broadcast)
			notificationsAdmin.PUT("/:id", notificationController.UpdateNotification)
			notificationsAdmin.DELETE("/:id", notificationController.DeleteNotification)
			notificationsAdmin.POST("/bulk-delete", notificationController.BulkDeleteNotifications)
		}
	}

	// Device tokens (students)
	deviceTokens := authenticated.Group("/device-tokens")
	deviceTokens.Use(authMiddleware.StudentRequired())
	{
		deviceTokens.POST("", notificationController.RegisterDeviceToken)
		deviceTokens.DELETE("/:token", notificationController.RemoveDeviceToken)
	}

	// Settings
	settings := authenticated.Group("/settings")
	{
		settings.GET("/branch-thresholds", authMiddleware.AdminRequired(), settingsController.GetBranchThresholds)
		settings.PUT("/branch-thresholds", authMiddleware.RoleRequired(models.RoleMainAdmin), settingsController.UpdateBranchThresholds)
	}
}
