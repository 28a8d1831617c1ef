package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-backend/internal/dto"
)

func TestExpensesRequireBearerToken(t *testing.T) {
	mux := newTestMux(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/expenses"},
		{http.MethodPost, "/expenses"},
		{http.MethodGet, "/expenses/1"},
		{http.MethodPut, "/expenses/1"},
		{http.MethodDelete, "/expenses/1"},
		{http.MethodGet, "/expenses/byDate?date=2024-03-01"},
		{http.MethodGet, "/expenses/byDateBetween?startDate=2024-03-01&endDate=2024-03-31"},
		{http.MethodGet, "/expenses/byCategory?Category=Food&date=2024-03-01"},
		{http.MethodGet, "/expenses/byCategoryAndDateRange?Category=Food&startdate=2024-03-01&endDate=2024-03-31"},
	}
	for _, p := range paths {
		w := doJSON(t, mux, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestCreateAndFetchRoundTrip(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	created := createExpense(t, mux, token, dto.ExpenseRequest{
		Category: "Food", Amount: 12.50, Description: "lunch", Date: "2024-03-01",
	})
	require.NotZero(t, created.ID)

	w := doJSON(t, mux, http.MethodGet, fmt.Sprintf("/expenses/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeJSON[dto.ExpenseResponse](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, 12.50, got.Amount)
	assert.Equal(t, "lunch", got.Description)
	assert.Equal(t, "2024-03-01", got.Date)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	w := doJSON(t, mux, http.MethodPost, "/expenses", token, dto.ExpenseRequest{Amount: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, mux, http.MethodPost, "/expenses", token, dto.ExpenseRequest{
		Category: "Food", Date: "03-01-2024",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownOrForeignIDReturnsNull(t *testing.T) {
	mux := newTestMux(t)
	aliceToken := register(t, mux, "alice")
	bobToken := register(t, mux, "bob")

	created := createExpense(t, mux, aliceToken, dto.ExpenseRequest{
		Category: "Food", Amount: 5, Date: "2024-03-01",
	})

	// Unknown id
	w := doJSON(t, mux, http.MethodGet, "/expenses/99999", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	unknownBody := strings.TrimSpace(w.Body.String())
	assert.Equal(t, "null", unknownBody)

	// Foreign id looks exactly the same
	w = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/expenses/%d", created.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, unknownBody, strings.TrimSpace(w.Body.String()))
}

func TestUpdateExpense(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	created := createExpense(t, mux, token, dto.ExpenseRequest{
		Category: "Food", Amount: 12.50, Description: "lunch", Date: "2024-03-01",
	})

	w := doJSON(t, mux, http.MethodPut, fmt.Sprintf("/expenses/%d", created.ID), token, dto.ExpenseRequest{
		Category: "Groceries", Amount: 30, Description: "weekly shop", Date: "2024-03-05",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decodeJSON[dto.ExpenseResponse](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Groceries", updated.Category)
	assert.Equal(t, "2024-03-05", updated.Date)
}

func TestUpdateStatusLadder(t *testing.T) {
	mux := newTestMux(t)
	aliceToken := register(t, mux, "alice")
	bobToken := register(t, mux, "bob")

	created := createExpense(t, mux, aliceToken, dto.ExpenseRequest{
		Category: "Food", Amount: 5, Date: "2024-03-01",
	})

	body := dto.ExpenseRequest{Category: "X", Amount: 1, Date: "2024-03-02"}

	w := doJSON(t, mux, http.MethodPut, "/expenses/99999", aliceToken, body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, mux, http.MethodPut, fmt.Sprintf("/expenses/%d", created.ID), bobToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice's record survived Bob's attempt
	w = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/expenses/%d", created.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Food", decodeJSON[dto.ExpenseResponse](t, w).Category)
}

func TestDeleteExpense(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	created := createExpense(t, mux, token, dto.ExpenseRequest{
		Category: "Food", Amount: 5, Date: "2024-03-01",
	})

	w := doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/expenses/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/expenses/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestDeleteStatusLadder(t *testing.T) {
	mux := newTestMux(t)
	aliceToken := register(t, mux, "alice")
	bobToken := register(t, mux, "bob")

	created := createExpense(t, mux, aliceToken, dto.ExpenseRequest{
		Category: "Food", Amount: 5, Date: "2024-03-01",
	})

	w := doJSON(t, mux, http.MethodDelete, "/expenses/99999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/expenses/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListOrderedByDateDescAndScoped(t *testing.T) {
	mux := newTestMux(t)
	aliceToken := register(t, mux, "alice")
	bobToken := register(t, mux, "bob")

	for _, d := range []string{"2024-03-01", "2024-03-10", "2024-02-15"} {
		createExpense(t, mux, aliceToken, dto.ExpenseRequest{Category: "Misc", Amount: 1, Date: d})
	}
	createExpense(t, mux, bobToken, dto.ExpenseRequest{Category: "Other", Amount: 2, Date: "2024-03-05"})

	w := doJSON(t, mux, http.MethodGet, "/expenses", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSON[[]dto.ExpenseResponse](t, w)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-10", list[0].Date)
	assert.Equal(t, "2024-03-01", list[1].Date)
	assert.Equal(t, "2024-02-15", list[2].Date)
}

func TestListByDate(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	created := createExpense(t, mux, token, dto.ExpenseRequest{
		Category: "Food", Amount: 12.50, Description: "lunch", Date: "2024-03-01",
	})
	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Food", Amount: 8, Date: "2024-03-02"})

	w := doJSON(t, mux, http.MethodGet, "/expenses/byDate?date=2024-03-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSON[[]dto.ExpenseResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestListByDateBetweenInclusive(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Misc", Amount: 1, Date: "2024-03-01"})
	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Misc", Amount: 1, Date: "2024-04-01"})

	w := doJSON(t, mux, http.MethodGet, "/expenses/byDateBetween?startDate=2024-02-01&endDate=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSON[[]dto.ExpenseResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-03-01", list[0].Date)
}

func TestListByCategoryAndDateRange(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Food", Amount: 1, Date: "2024-03-01"})
	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Travel", Amount: 1, Date: "2024-03-02"})

	// Note the original surface's parameter casing: Category, startdate, endDate
	w := doJSON(t, mux, http.MethodGet, "/expenses/byCategoryAndDateRange?Category=Food&startdate=2024-03-01&endDate=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSON[[]dto.ExpenseResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Food", list[0].Category)
}

func TestListByCategoryAndDate(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Food", Amount: 1, Date: "2024-03-01"})
	createExpense(t, mux, token, dto.ExpenseRequest{Category: "Food", Amount: 1, Date: "2024-03-02"})

	w := doJSON(t, mux, http.MethodGet, "/expenses/byCategory?Category=Food&date=2024-03-02", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSON[[]dto.ExpenseResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-03-02", list[0].Date)
}

func TestFilteredListsRejectInvalidDates(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	paths := []string{
		"/expenses/byDate?date=03-01-2024",
		"/expenses/byDateBetween?startDate=2024-03-01&endDate=bogus",
		"/expenses/byCategoryAndDateRange?Category=Food&startdate=2024/03/01&endDate=2024-03-31",
		"/expenses/byCategory?Category=Food&date=2024-3-1",
	}
	for _, p := range paths {
		w := doJSON(t, mux, http.MethodGet, p, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, p)
	}
}

func TestBadExpenseID(t *testing.T) {
	mux := newTestMux(t)
	token := register(t, mux, "alice")

	w := doJSON(t, mux, http.MethodGet, "/expenses/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
