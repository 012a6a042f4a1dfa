package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/config"
	"github.com/BuzzLyutic/lab-utils/internal/crawler"
	"github.com/BuzzLyutic/lab-utils/internal/fib"
	"github.com/BuzzLyutic/lab-utils/internal/handler"
	"github.com/BuzzLyutic/lab-utils/internal/repo"
	"github.com/BuzzLyutic/lab-utils/internal/server"
	"github.com/BuzzLyutic/lab-utils/internal/service"
	"github.com/BuzzLyutic/lab-utils/internal/shell"
	"github.com/BuzzLyutic/lab-utils/internal/worker"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to Database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping the Database", zap.Error(err))
	}
	logger.Info("Successfully connected to the Database")

	client := crawler.New(logger, crawler.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.CrawlTimeout,
		Delay:     cfg.CrawlDelay,
	})
	pageRepo := repo.NewPageRepo(pool)

	router := server.NewRouter(server.Options{
		Lab:         handler.NewLabHandler(fib.NewMemo(), shell.NewRunner(logger, cfg.CommandTimeout), client, logger),
		Pages:       handler.NewPageHandler(service.NewPageService(pageRepo), logger),
		CORSOrigins: cfg.CORSOrigins,
	})

	workers := worker.NewPool(pageRepo, client, logger, cfg.WorkerCount)
	workers.Start(ctx)

	// Batch downloads run inline, so writes get room for the politeness delays.
	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	workers.Stop()
	logger.Info("Server stopped successfully")
}
