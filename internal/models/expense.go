package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a single spending record owned by exactly one user
type Expense struct {
	ID          int64     `json:"id" db:"id"`
	Category    string    `json:"category" db:"category"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"` // calendar date, no time-of-day
	UserID      uuid.UUID `json:"-" db:"user_id"`
}
