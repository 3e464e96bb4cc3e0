package auth

import (
	"github.com/Nirjala-pagare/Emp-management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register",
			middleware.RateLimitByIP(0.5, 3),
			handler.Register,
		)
		auth.POST("/login",
			middleware.RateLimitByIP(1, 5),
			handler.Login,
		)
		auth.GET("/me",
			middleware.AuthMiddleware(jwtSecret),
			handler.GetMe,
		)
	}
}
