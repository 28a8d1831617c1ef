package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"expense-tracker-backend/internal/dto"
	"expense-tracker-backend/internal/models"
	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/store"
	"expense-tracker-backend/internal/utils"
)

// ExpensesHandler manages expense-related endpoints
type ExpensesHandler struct {
	expenses *service.ExpenseService
}

// NewExpensesHandler creates a new ExpensesHandler
func NewExpensesHandler(expenses *service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses}
}

func toExpenseResponse(e models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        utils.FormatDate(e.Date),
	}
}

func toExpenseListResponse(expenses []models.Expense) []dto.ExpenseResponse {
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

// caller extracts the authenticated username; the middleware guarantees it is
// present on every route below.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
	}
	return username, ok
}

// writeListOrError maps the shared failure modes of the filtered list
// endpoints.
func (h *ExpensesHandler) writeListOrError(w http.ResponseWriter, expenses []models.Expense, err error) {
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "dates must be ISO format (YYYY-MM-DD)")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to list expenses", err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toExpenseListResponse(expenses))
}

func expenseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "id must be an integer")
		return 0, false
	}
	return id, true
}

// List handles GET /expenses
// @Summary List all expenses of the caller
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses [get]
func (h *ExpensesHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenses.GetAllExpenses(r.Context(), username)
	h.writeListOrError(w, expenses, err)
}

// Create handles POST /expenses
// @Summary Create a new expense owned by the caller
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExpenseRequest true "Expense payload"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses [post]
func (h *ExpensesHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "category and date are required")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO format (YYYY-MM-DD)")
		return
	}

	expense := &models.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}

	created, err := h.expenses.CreateExpense(r.Context(), username, expense)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create expense", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toExpenseResponse(*created))
}

// GetByID handles GET /expenses/{id}
// @Summary Get a single expense by id
// @Description Returns null when the id is unknown or owned by another user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense id"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpensesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	expense, err := h.expenses.GetExpenseByID(r.Context(), username, id)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get expense", err.Error())
		return
	}
	if expense == nil {
		// Unknown and not-owned ids are indistinguishable here
		utils.WriteJSONResponse(w, http.StatusOK, nil)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toExpenseResponse(*expense))
}

// Update handles PUT /expenses/{id}
// @Summary Update an expense owned by the caller
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense id"
// @Param payload body dto.ExpenseRequest true "Updated fields"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpensesHandler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "category and date are required")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO format (YYYY-MM-DD)")
		return
	}

	updated, err := h.expenses.UpdateExpense(r.Context(), username, id, &models.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		h.writeOwnershipError(w, err, "update")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toExpenseResponse(*updated))
}

// Delete handles DELETE /expenses/{id}
// @Summary Delete an expense owned by the caller
// @Tags expenses
// @Security BearerAuth
// @Param id path int true "Expense id"
// @Success 200 "Deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpensesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	if err := h.expenses.DeleteExpense(r.Context(), username, id); err != nil {
		h.writeOwnershipError(w, err, "delete")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ExpensesHandler) writeOwnershipError(w http.ResponseWriter, err error, verb string) {
	switch {
	case errors.Is(err, store.ErrExpenseNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Expense not found", "No expense with that id")
	case errors.Is(err, store.ErrExpenseForbidden):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You don't have permission to "+verb+" this expense")
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to "+verb+" expense", err.Error())
	}
}

// ListByDateRange handles GET /expenses/byDateBetween
// @Summary List the caller's expenses within an inclusive date range
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/byDateBetween [get]
func (h *ExpensesHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	expenses, err := h.expenses.GetExpensesByDateRange(r.Context(), username, q.Get("startDate"), q.Get("endDate"))
	h.writeListOrError(w, expenses, err)
}

// ListByDate handles GET /expenses/byDate
// @Summary List the caller's expenses on an exact date
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/byDate [get]
func (h *ExpensesHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenses.GetExpensesByDate(r.Context(), username, r.URL.Query().Get("date"))
	h.writeListOrError(w, expenses, err)
}

// ListByCategoryAndDateRange handles GET /expenses/byCategoryAndDateRange.
// Parameter casing (Category, startdate, endDate) is kept as the original
// public surface spells it.
// @Summary List the caller's expenses by category within a date range
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param Category query string true "Category (exact match)"
// @Param startdate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/byCategoryAndDateRange [get]
func (h *ExpensesHandler) ListByCategoryAndDateRange(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	expenses, err := h.expenses.GetExpensesByCategoryAndDateRange(r.Context(), username,
		q.Get("Category"), q.Get("startdate"), q.Get("endDate"))
	h.writeListOrError(w, expenses, err)
}

// ListByCategoryAndDate handles GET /expenses/byCategory
// @Summary List the caller's expenses by category on an exact date
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param Category query string true "Category (exact match)"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses/byCategory [get]
func (h *ExpensesHandler) ListByCategoryAndDate(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	expenses, err := h.expenses.GetExpensesByCategoryAndDate(r.Context(), username,
		q.Get("Category"), q.Get("date"))
	h.writeListOrError(w, expenses, err)
}
