package service

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker-backend/internal/models"
	"expense-tracker-backend/internal/store"
	"expense-tracker-backend/internal/utils"
)

// ErrInvalidDate is returned when a date parameter is not a strict YYYY-MM-DD
// calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ExpenseService scopes every expense operation to the authenticated caller.
// The caller identity arrives as a username string and is re-resolved to a
// user record on every call; a resolution failure indicates a token that
// outlived the account and is surfaced rather than ignored.
type ExpenseService struct {
	users    store.UserStore
	expenses store.ExpenseStore
}

// NewExpenseService creates a new ExpenseService instance
func NewExpenseService(users store.UserStore, expenses store.ExpenseStore) *ExpenseService {
	return &ExpenseService{users: users, expenses: expenses}
}

func (s *ExpenseService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve caller %q: %w", username, err)
	}
	return user, nil
}

// GetAllExpenses returns all expenses owned by the caller, ordered by date
// descending.
func (s *ExpenseService) GetAllExpenses(ctx context.Context, username string) ([]models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.expenses.ListByUser(ctx, user.ID)
}

// CreateExpense persists a new expense with the caller attached as owner and
// returns the stored record with its generated id.
func (s *ExpenseService) CreateExpense(ctx context.Context, username string, expense *models.Expense) (*models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	expense.UserID = user.ID
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpenseByID returns the expense only if it is owned by the caller. Both
// an unknown id and someone else's id yield (nil, nil), so the caller cannot
// tell the two apart.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, username string, id int64) (*models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenses.GetByIDAndUser(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return expense, nil
}

// UpdateExpense overwrites category/amount/description/date of the caller's
// expense; id and owner never change. Propagates store.ErrExpenseNotFound for
// an unknown id and store.ErrExpenseForbidden for someone else's.
func (s *ExpenseService) UpdateExpense(ctx context.Context, username string, id int64, updated *models.Expense) (*models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	updated.ID = id
	updated.UserID = user.ID
	if err := s.expenses.UpdateOwned(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteExpense removes the caller's expense, with the same error semantics
// as UpdateExpense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, username string, id int64) error {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	return s.expenses.DeleteOwned(ctx, id, user.ID)
}

// GetExpensesByDateRange returns the caller's expenses with date within
// [startDate, endDate], bounds inclusive.
func (s *ExpenseService) GetExpensesByDateRange(ctx context.Context, username, startDate, endDate string) ([]models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, startDate)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, endDate)
	}

	return s.expenses.ListByUserAndDateRange(ctx, user.ID, start, end)
}

// GetExpensesByDate returns the caller's expenses on an exact calendar date.
func (s *ExpenseService) GetExpensesByDate(ctx context.Context, username, date string) ([]models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	return s.expenses.ListByUserAndDate(ctx, user.ID, day)
}

// GetExpensesByCategoryAndDateRange returns the caller's expenses matching
// the category exactly and dated within the inclusive range.
func (s *ExpenseService) GetExpensesByCategoryAndDateRange(ctx context.Context, username, category, startDate, endDate string) ([]models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, startDate)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, endDate)
	}

	return s.expenses.ListByUserAndCategoryAndDateRange(ctx, user.ID, category, start, end)
}

// GetExpensesByCategoryAndDate returns the caller's expenses matching the
// category exactly on an exact calendar date.
func (s *ExpenseService) GetExpensesByCategoryAndDate(ctx context.Context, username, category, date string) ([]models.Expense, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	return s.expenses.ListByUserAndCategoryAndDate(ctx, user.ID, category, day)
}
