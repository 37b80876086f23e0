package routes

import (
	"net/http"
	"time"

	"campuspilot/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers and middleware the routes need.
type HandlerBundle struct {
	Booking   *handlers.BookingHandler
	Assistant *handlers.AssistantHandler
	Auth      *handlers.AuthHandler
	AuthMW    gin.HandlerFunc
}

// RegisterRoutes wires the whole HTTP surface.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	registerUserRoutes(r, hb)
	registerBookingRoutes(r, hb)
	registerAssistantRoutes(r, hb)
}

func registerUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/verify-otp", hb.Auth.VerifyOTP)
		api.POST("/forgot-password", hb.Auth.ForgotPassword)
		api.POST("/reset-password", hb.Auth.ResetPassword)

		// Protected routes (Require Authentication)
		api.Use(hb.AuthMW)
		api.DELETE("/revoke", hb.Auth.RevokeToken)
		api.PUT("/fcm-token", hb.Auth.UpdateFCMToken)
	}
}

func registerAssistantRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/assistant")
	api.Use(hb.AuthMW)
	{
		api.POST("/chat", hb.Assistant.Chat)
	}
}
