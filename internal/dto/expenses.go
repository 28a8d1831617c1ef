package dto

// ExpenseRequest represents the payload for creating or updating an expense.
// The owner is never part of the payload; it is attached server-side from the
// authenticated caller.
type ExpenseRequest struct {
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
}
