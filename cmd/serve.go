package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/app"
	config "task-tracker.com/task-tracker/internal/configs"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task tracker HTTP API (auth and per-user tasks)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		var limiter middleware.RateLimitStore = middleware.NewMemoryRateLimitStore()
		if cfg.RateLimitBackend == "redis" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			limiter = middleware.NewRedisRateLimitStore(redisClient, cfg.RedisKeyPrefix)
		}

		e := app.NewServer(cfg, database, limiter)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown: %v", err)
		}

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
