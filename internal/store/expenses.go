package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expense-tracker-backend/internal/models"
)

// ExpenseStore persists expense records. Every lookup takes the owner's user
// id, so no query can see another user's records.
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByIDAndUser(ctx context.Context, id int64, userID uuid.UUID) (*models.Expense, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Expense, error)
	ListByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]models.Expense, error)
	ListByUserAndCategoryAndDateRange(ctx context.Context, userID uuid.UUID, category string, start, end time.Time) ([]models.Expense, error)
	ListByUserAndCategoryAndDate(ctx context.Context, userID uuid.UUID, category string, date time.Time) ([]models.Expense, error)
	UpdateOwned(ctx context.Context, expense *models.Expense) error
	DeleteOwned(ctx context.Context, id int64, userID uuid.UUID) error
}

// PostgresExpenseStore is the PostgreSQL implementation of ExpenseStore.
type PostgresExpenseStore struct {
	db *sql.DB
}

// NewPostgresExpenseStore creates a new PostgresExpenseStore instance
func NewPostgresExpenseStore(db *sql.DB) *PostgresExpenseStore {
	return &PostgresExpenseStore{db: db}
}

const expenseColumns = "id, category, amount, description, date, user_id"

// Create inserts a new expense and fills in the generated id.
func (s *PostgresExpenseStore) Create(ctx context.Context, expense *models.Expense) error {
	query := `INSERT INTO expenses (category, amount, description, date, user_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		expense.Category, expense.Amount, expense.Description, expense.Date, expense.UserID).
		Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	return nil
}

// GetByIDAndUser loads a single expense scoped to its owner. A foreign or
// unknown id is indistinguishable: both return ErrExpenseNotFound.
func (s *PostgresExpenseStore) GetByIDAndUser(ctx context.Context, id int64, userID uuid.UUID) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
	          WHERE id = $1 AND user_id = $2`

	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&expense.ID, &expense.Category, &expense.Amount, &expense.Description, &expense.Date, &expense.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("select expense: %w", err)
	}

	return expense, nil
}

// ListByUser returns all of a user's expenses, newest date first.
func (s *PostgresExpenseStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
	          WHERE user_id = $1
	          ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	return scanExpenses(rows)
}

// ListByUserAndDateRange returns a user's expenses with date within
// [start, end], both bounds inclusive.
func (s *PostgresExpenseStore) ListByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
	          WHERE user_id = $1 AND date BETWEEN $2 AND $3
	          ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	return scanExpenses(rows)
}

// ListByUserAndDate returns a user's expenses on an exact calendar date.
func (s *PostgresExpenseStore) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
	          WHERE user_id = $1 AND date = $2
	          ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	return scanExpenses(rows)
}

// ListByUserAndCategoryAndDateRange filters by exact-string category and an
// inclusive date range.
func (s *PostgresExpenseStore) ListByUserAndCategoryAndDateRange(ctx context.Context, userID uuid.UUID, category string, start, end time.Time) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
	          WHERE user_id = $1 AND category = $2 AND date BETWEEN $3 AND $4
	          ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, category, start, end)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	return scanExpenses(rows)
}

// ListByUserAndCategoryAndDate filters by exact-string category on an exact
// calendar date.
func (s *PostgresExpenseStore) ListByUserAndCategoryAndDate(ctx context.Context, userID uuid.UUID, category string, date time.Time) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
	          WHERE user_id = $1 AND category = $2 AND date = $3
	          ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, category, date)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	return scanExpenses(rows)
}

// UpdateOwned overwrites category/amount/description/date of expense.ID after
// verifying ownership. The check and the write run in one transaction with the
// row locked, so the verdict and the mutation see the same snapshot. Returns
// ErrExpenseNotFound for an unknown id and ErrExpenseForbidden when the row
// belongs to a different user.
func (s *PostgresExpenseStore) UpdateOwned(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ownerID, err := lockExpenseRow(ctx, tx, expense.ID)
	if err != nil {
		return err
	}
	if ownerID != expense.UserID {
		return ErrExpenseForbidden
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET category = $1, amount = $2, description = $3, date = $4 WHERE id = $5`,
		expense.Category, expense.Amount, expense.Description, expense.Date, expense.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	return tx.Commit()
}

// DeleteOwned removes an expense after verifying ownership, with the same
// transaction and error semantics as UpdateOwned.
func (s *PostgresExpenseStore) DeleteOwned(ctx context.Context, id int64, userID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ownerID, err := lockExpenseRow(ctx, tx, id)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrExpenseForbidden
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	return tx.Commit()
}

// lockExpenseRow locks the expense row for the rest of the transaction and
// returns its owner.
func lockExpenseRow(ctx context.Context, tx *sql.Tx, id int64) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := tx.QueryRowContext(ctx, `SELECT user_id FROM expenses WHERE id = $1 FOR UPDATE`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrExpenseNotFound
		}
		return uuid.Nil, fmt.Errorf("select expense owner: %w", err)
	}
	return ownerID, nil
}

func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Description, &e.Date, &e.UserID); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}
