package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"expense-tracker-backend/internal/config"
	"expense-tracker-backend/internal/handlers"
	"expense-tracker-backend/internal/middleware"
)

// SetupRoutes configures all application routes on the given mux.
// Literal segments like /expenses/byDate win over the {id} wildcard, so the
// filtered list endpoints and the id routes can coexist.
func SetupRoutes(mux *http.ServeMux, authHandler *handlers.AuthHandler, expensesHandler *handlers.ExpensesHandler, healthHandler *handlers.HealthHandler, jwtCfg *config.JWTConfig) {
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(next, jwtCfg)
	}

	// Health check routes
	mux.HandleFunc("GET /healthz", healthHandler.HealthCheck)
	mux.HandleFunc("GET /livez", healthHandler.LivenessCheck)
	mux.HandleFunc("GET /readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// Expense routes (bearer token required)
	mux.HandleFunc("GET /expenses", auth(expensesHandler.List))
	mux.HandleFunc("POST /expenses", auth(expensesHandler.Create))
	mux.HandleFunc("GET /expenses/{id}", auth(expensesHandler.GetByID))
	mux.HandleFunc("PUT /expenses/{id}", auth(expensesHandler.Update))
	mux.HandleFunc("DELETE /expenses/{id}", auth(expensesHandler.Delete))
	mux.HandleFunc("GET /expenses/byDateBetween", auth(expensesHandler.ListByDateRange))
	mux.HandleFunc("GET /expenses/byDate", auth(expensesHandler.ListByDate))
	mux.HandleFunc("GET /expenses/byCategoryAndDateRange", auth(expensesHandler.ListByCategoryAndDateRange))
	mux.HandleFunc("GET /expenses/byCategory", auth(expensesHandler.ListByCategoryAndDate))

	// API documentation
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
}
