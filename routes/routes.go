package routes

import (
	"github.com/gin-gonic/gin"

	"SafeKidsMobile/controllers"
	"SafeKidsMobile/middlewares"
)

// SetupRoutes регистрирует все маршруты API
func SetupRoutes(router *gin.Engine) {
	// Публичные маршруты
	router.POST("/register/parent", controllers.RegisterParent)
	router.POST("/login/parent", controllers.LoginParent)
	router.POST("/auth/forgot-password", controllers.RequestPasswordReset)
	router.POST("/auth/reset-password", controllers.ResetPassword)

	// Маршруты, требующие JWT
	protected := router.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.POST("/auth/logout", controllers.Logout)
		protected.GET("/users/:user_id", controllers.GetUserData)
		protected.GET("/ws", controllers.HandleWebSocket)

		profiles := protected.Group("/child-profiles")
		{
			profiles.POST("", controllers.CreateChildProfile)
			profiles.GET("", controllers.ListChildProfiles)
			profiles.PUT("/:id", controllers.UpdateChildProfile)
			profiles.DELETE("/:id", controllers.DeleteChildProfile)
			profiles.POST("/:id/verify-pin", controllers.VerifyChildPIN)
		}
	}
}
