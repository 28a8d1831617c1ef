package store

import "errors"

var (
	// ErrUserNotFound is returned when a username does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registration hits the unique username
	// constraint.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrExpenseNotFound is returned when an expense id does not exist, or is
	// not visible to the querying owner.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrExpenseForbidden is returned when an expense id exists but belongs to
	// a different user.
	ErrExpenseForbidden = errors.New("expense owned by another user")
)
