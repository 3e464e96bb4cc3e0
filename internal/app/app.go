package app

import (
	"time"

	"github.com/Nirjala-pagare/Emp-management/internal/auth"
	"github.com/Nirjala-pagare/Emp-management/internal/config"
	"github.com/Nirjala-pagare/Emp-management/internal/employee"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, cfg config.App) error {
	// 1. Infrastructure
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := db.AutoMigrate(&employee.Employee{}, &auth.User{}); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	// 2. Modules & routes
	return registerModules(router, db, rdb, cfg, tokenTTL(cfg))
}

func tokenTTL(cfg config.App) time.Duration {
	return time.Duration(cfg.JWTExpireMin) * time.Minute
}
