package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"expense-tracker-backend/internal/config"
	"expense-tracker-backend/internal/dto"
	"expense-tracker-backend/internal/handlers"
	"expense-tracker-backend/internal/routes"
	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/storetest"
)

// newTestMux wires the full HTTP stack (routes, auth middleware, handlers,
// services) over in-memory stores.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	jwtCfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
	users := storetest.NewMemUserStore()
	expenses := storetest.NewMemExpenseStore()

	authHandler := handlers.NewAuthHandler(service.NewAuthService(users), jwtCfg)
	expensesHandler := handlers.NewExpensesHandler(service.NewExpenseService(users, expenses))

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, authHandler, expensesHandler, handlers.NewHealthHandler(nil), jwtCfg)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register creates a user through the HTTP surface and returns its token.
func register(t *testing.T, mux *http.ServeMux, username string) string {
	t.Helper()

	w := doJSON(t, mux, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeJSON[dto.AuthResponse](t, w)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createExpense(t *testing.T, mux *http.ServeMux, token string, req dto.ExpenseRequest) dto.ExpenseResponse {
	t.Helper()

	w := doJSON(t, mux, http.MethodPost, "/expenses", token, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON[dto.ExpenseResponse](t, w)
}
