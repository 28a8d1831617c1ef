// Package storetest provides in-memory store implementations for tests. They
// mirror the ownership semantics of the PostgreSQL stores, including the
// not-found/forbidden distinction on owned mutations.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"expense-tracker-backend/internal/models"
	"expense-tracker-backend/internal/store"
)

// MemUserStore is an in-memory store.UserStore.
type MemUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemUserStore creates an empty MemUserStore
func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]models.User)}
}

func (s *MemUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return store.ErrUsernameTaken
	}
	s.users[user.Username] = *user
	return nil
}

func (s *MemUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// MemExpenseStore is an in-memory store.ExpenseStore.
type MemExpenseStore struct {
	mu       sync.Mutex
	nextID   int64
	expenses map[int64]models.Expense
}

// NewMemExpenseStore creates an empty MemExpenseStore
func NewMemExpenseStore() *MemExpenseStore {
	return &MemExpenseStore{expenses: make(map[int64]models.Expense)}
}

func (s *MemExpenseStore) Create(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	expense.ID = s.nextID
	s.expenses[expense.ID] = *expense
	return nil
}

func (s *MemExpenseStore) GetByIDAndUser(_ context.Context, id int64, userID uuid.UUID) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, ok := s.expenses[id]
	if !ok || expense.UserID != userID {
		return nil, store.ErrExpenseNotFound
	}
	return &expense, nil
}

func (s *MemExpenseStore) list(userID uuid.UUID, keep func(models.Expense) bool) []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID && keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (s *MemExpenseStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Expense, error) {
	return s.list(userID, func(models.Expense) bool { return true }), nil
}

func (s *MemExpenseStore) ListByUserAndDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	return s.list(userID, func(e models.Expense) bool {
		return !e.Date.Before(start) && !e.Date.After(end)
	}), nil
}

func (s *MemExpenseStore) ListByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) ([]models.Expense, error) {
	return s.list(userID, func(e models.Expense) bool {
		return e.Date.Equal(date)
	}), nil
}

func (s *MemExpenseStore) ListByUserAndCategoryAndDateRange(_ context.Context, userID uuid.UUID, category string, start, end time.Time) ([]models.Expense, error) {
	return s.list(userID, func(e models.Expense) bool {
		return e.Category == category && !e.Date.Before(start) && !e.Date.After(end)
	}), nil
}

func (s *MemExpenseStore) ListByUserAndCategoryAndDate(_ context.Context, userID uuid.UUID, category string, date time.Time) ([]models.Expense, error) {
	return s.list(userID, func(e models.Expense) bool {
		return e.Category == category && e.Date.Equal(date)
	}), nil
}

func (s *MemExpenseStore) UpdateOwned(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[expense.ID]
	if !ok {
		return store.ErrExpenseNotFound
	}
	if existing.UserID != expense.UserID {
		return store.ErrExpenseForbidden
	}

	existing.Category = expense.Category
	existing.Amount = expense.Amount
	existing.Description = expense.Description
	existing.Date = expense.Date
	s.expenses[expense.ID] = existing
	return nil
}

func (s *MemExpenseStore) DeleteOwned(_ context.Context, id int64, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[id]
	if !ok {
		return store.ErrExpenseNotFound
	}
	if existing.UserID != userID {
		return store.ErrExpenseForbidden
	}

	delete(s.expenses, id)
	return nil
}
