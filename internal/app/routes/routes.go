package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synqit/synqit/internal/app/controllers"
	"github.com/synqit/synqit/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	projectController *controllers.ProjectController,
	partnershipController *controllers.PartnershipController,
	messageController *controllers.MessageController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "ok"})
	})

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Public project browse
	v1.GET("/projects", projectController.Browse)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/me", authController.UpdateMe)

		projects := authenticated.Group("/projects")
		{
			// /me before /:id so gin does not treat "me" as an id
			projects.GET("/me", projectController.GetMine)
			projects.PUT("/me", projectController.Save)
			projects.DELETE("/me", projectController.Delete)
		}

		partnerships := authenticated.Group("/partnerships")
		{
			partnerships.POST("", partnershipController.Create)
			partnerships.GET("", partnershipController.List)
			partnerships.GET("/stats", partnershipController.Stats)
			partnerships.GET("/:id", partnershipController.GetByID)
			partnerships.POST("/:id/respond", partnershipController.Respond)
		}

		messages := authenticated.Group("/messages")
		{
			messages.POST("/send", messageController.Send)
			messages.POST("/direct", messageController.SendDirect)
			messages.GET("/partnerships/:id", messageController.PartnershipThread)
			messages.GET("/direct/:userId", messageController.DirectThread)
			messages.POST("/direct/:userId/mark-read", messageController.MarkDirectRead)
			messages.GET("/conversations", messageController.Conversations)
			messages.POST("/mark-read", messageController.MarkRead)
			messages.GET("/unread-count", messageController.UnreadCount)
			messages.GET("/search", messageController.Search)
			messages.GET("/stats", messageController.Stats)
			messages.GET("/recent", messageController.Recent)
			messages.DELETE("/:id", messageController.Delete)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.POST("/:id/read", notificationController.MarkRead)
			notifications.DELETE("/:id", notificationController.Delete)
		}
	}

	// Public project detail registered after /projects/me group to keep the
	// route table unambiguous.
	v1.GET("/projects/:id", projectController.GetByID)
}
