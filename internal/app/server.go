// Package app wires configuration, storage and services into the HTTP server.
package app

import (
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/auth"
	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

func NewServer(cfg config.Config, db *gorm.DB, limiter middleware.RateLimitStore) *echo.Echo {
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	})

	taskService := services.NewTaskService(taskRepo, cfg.HideForeignTasks)
	authService := services.NewAuthService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), tokens)

	handler := httpapi.NewHandler(taskService, authService)
	return httpapi.NewRouter(handler, httpapi.RouterConfig{
		RateLimiter:  middleware.RateLimiter(limiter, cfg.RateLimit, time.Minute),
		AllowOrigins: cfg.CORSAllowOrigins,
	})
}
