// @title Expense Tracker API
// @version 1.0
// @description Personal expense-tracking backend: register/login and owner-scoped expense CRUD

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/rs/cors"

	_ "expense-tracker-backend/docs" // This is required for swagger
	"expense-tracker-backend/internal/config"
	"expense-tracker-backend/internal/handlers"
	"expense-tracker-backend/internal/routes"
	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := store.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("connect database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.RunMigrations(context.Background(), db); err != nil {
		logger.Error("migrate database", "err", err)
		os.Exit(1)
	}

	// Stores and services
	userStore := store.NewPostgresUserStore(db)
	expenseStore := store.NewPostgresExpenseStore(db)
	authService := service.NewAuthService(userStore)
	expenseService := service.NewExpenseService(userStore, expenseStore)

	// HTTP handlers
	authHandler := handlers.NewAuthHandler(authService, &cfg.JWT)
	expensesHandler := handlers.NewExpensesHandler(expenseService)
	healthHandler := handlers.NewHealthHandler(db)

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, authHandler, expensesHandler, healthHandler, &cfg.JWT)

	// Cross-origin requests are permitted from any origin for all methods
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen and serve", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for SIGINT, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
