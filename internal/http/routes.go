package http

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
)

type RouterConfig struct {
	RateLimiter  echo.MiddlewareFunc
	AllowOrigins []string
}

func NewRouter(h *Handler, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	if len(cfg.AllowOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}))
	}

	Register(e, h, cfg.RateLimiter)
	return e
}

func Register(e *echo.Echo, h *Handler, rateLimiter echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health)

	var api *echo.Group
	if rateLimiter != nil {
		api = e.Group("/api", rateLimiter)
	} else {
		api = e.Group("/api")
	}

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authenticated := middleware.Authenticate(h.authService)
	api.GET("/auth/me", h.Me, authenticated)

	api.POST("/tasks", h.CreateTask, authenticated)
	api.GET("/tasks", h.ListTasks, authenticated)
	api.GET("/tasks/:id", h.GetTask, authenticated)
	api.PUT("/tasks/:id", h.UpdateTask, authenticated)
	api.DELETE("/tasks/:id", h.DeleteTask, authenticated)
}
