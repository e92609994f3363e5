// @title           Census OTP Service API
// @version         1.0
// @description     Mobile-number OTP login and census intake

// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"census-otp-service/internal/app/routes"
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/infrastructure/config"
	"census-otp-service/internal/infrastructure/database"
	Logger "census-otp-service/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	// .env first so LOG_DIR can come from it
	envErr := godotenv.Load()

	if err := Logger.SetupLogger(os.Getenv("LOG_DIR")); err != nil {
		fmt.Printf("Failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer Logger.Sync()

	if envErr != nil {
		Logger.Warning("Could not load .env file: %v", envErr)
	} else {
		Logger.Info("Loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		Logger.Error("Failed to create database connection pool: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode); err != nil {
		Logger.Error("Database migration failed: %v", err)
		os.Exit(1)
	}

	serviceContainer := container.NewServiceContainer(pool.GetDB(), cfg, nil)
	defer serviceContainer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.CacheTTL > 0 {
		serviceContainer.GetCache().StartJanitor(ctx, cfg.CacheTTL)
	}

	r := routes.SetupRouter(serviceContainer)

	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		Logger.Info("Server listening on http://0.0.0.0:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	Logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		Logger.Error("Graceful shutdown failed: %v", err)
	}
}

func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		Logger.Info("Database pool: %+v", stats)
	}

	Logger.Info("CPU cores: %d, goroutines: %d", runtime.NumCPU(), runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("Memory: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
