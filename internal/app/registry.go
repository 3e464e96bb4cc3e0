package app

import (
	"time"

	"github.com/Nirjala-pagare/Emp-management/internal/auth"
	"github.com/Nirjala-pagare/Emp-management/internal/config"
	"github.com/Nirjala-pagare/Emp-management/internal/employee"
	"github.com/Nirjala-pagare/Emp-management/internal/middleware"
	"github.com/Nirjala-pagare/Emp-management/internal/rbac"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg config.App,
	tokenTTL time.Duration,
) error {
	logger := zap.L()

	// --- Repositories ---
	authRepo := auth.NewRepository(db)
	employeeRepo := employee.NewRepository(db)

	// --- Access guard ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, cfg.JWTSecret, tokenTTL)
	employeeService := employee.NewService(employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb)

	// --- Routes ---
	router.Use(middleware.RequestID())
	router.NoRoute(func(c *gin.Context) {
		response.Error(c,
			apperror.ErrNotFound.HTTPStatus,
			apperror.ErrNotFound.Code,
			"Route not found",
			nil,
		)
	})

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, rdb, cfg.JWTSecret, logger)
	}

	return nil
}
