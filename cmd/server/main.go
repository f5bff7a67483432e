package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jmendoza/cryptowallet-backend/internal/adapter/pricing"
	"github.com/jmendoza/cryptowallet-backend/internal/adapter/repository/postgres"
	"github.com/jmendoza/cryptowallet-backend/internal/adapter/rest"
	clientusecase "github.com/jmendoza/cryptowallet-backend/internal/usecase/client"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/portfolio"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/transaction"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env if present (local runs; containered runs set real env vars)
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 1. Setup Database
	db, err := postgres.NewDB(dbConnString())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 2. Initialize Repositories (Postgres)
	clientRepo := postgres.NewClientRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// 3. Initialize Price Source
	priceSource := pricing.NewCriptoYaSource(
		pricing.WithExchange(envOr("PRICE_EXCHANGE", pricing.DefaultExchange)),
		pricing.WithCurrency(envOr("PRICE_CURRENCY", pricing.DefaultCurrency)),
		pricing.WithTimeout(priceTimeout(logger)),
	)

	// 4. Initialize Services (Use Cases)
	clientService := clientusecase.NewService(clientRepo)
	transactionService := transaction.NewService(clientRepo, transactionRepo, priceSource)
	portfolioService := portfolio.NewService(clientRepo, transactionRepo, priceSource)

	// 5. Start HTTP Server
	restServer := rest.NewServer(clientService, transactionService, portfolioService, logger)

	addr := ":" + envOr("PORT", "8080")
	httpServer := &http.Server{
		Addr:    addr,
		Handler: restServer.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(httpServer, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown did not finish cleanly", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}

// dbConnString builds the connection string from DB_CONN_STR or from the
// individual DB_* variables (Docker friendly)
func dbConnString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "cryptowallet")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// priceTimeout reads PRICE_TIMEOUT (e.g. "3s") or falls back to the default
func priceTimeout(logger *zap.Logger) time.Duration {
	raw := os.Getenv("PRICE_TIMEOUT")
	if raw == "" {
		return pricing.DefaultTimeout
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn("invalid PRICE_TIMEOUT, using default",
			zap.String("value", raw),
			zap.Duration("default", pricing.DefaultTimeout))
		return pricing.DefaultTimeout
	}
	return timeout
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
