package ledger

import "errors"

var (
	// ErrInvalidMonth is returned when a month token is not a valid YYYY-MM value.
	ErrInvalidMonth = errors.New("invalid month, use YYYY-MM")
	// ErrMonthRequired is returned when an operation needs a month and none was given.
	ErrMonthRequired = errors.New("month is required (YYYY-MM)")
	ErrInvalidKind   = errors.New("type must be income or expense")
	ErrInvalidAmount = errors.New("amount must be an integer > 0 (in minor units)")
	ErrInvalidName   = errors.New("name must be between 1 and 50 characters")
	ErrNoteTooLong   = errors.New("note must be at most 200 characters")
	ErrKindMismatch  = errors.New("transaction type must match category type")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryExists      = errors.New("category already exists")
)
