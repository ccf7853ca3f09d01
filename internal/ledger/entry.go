package ledger

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
)

const (
	MaxCategoryNameLength = 50
	MaxNoteLength         = 200

	// UnknownCategoryName labels entries whose category cannot be resolved.
	UnknownCategoryName = "Unknown"
)

// Kind is the direction of a ledger entry.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind validates a kind token. An empty token is rejected.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Entry is a single recorded income or expense.
type Entry struct {
	ID         uuid.UUID
	UserID     string
	Kind       Kind
	CategoryID uuid.UUID
	Amount     Money
	OccurredAt time.Time
	Note       *string
	CreatedAt  time.Time
}

// Category groups entries of one kind for one user.
type Category struct {
	ID        uuid.UUID
	UserID    string
	Kind      Kind
	Name      string
	CreatedAt time.Time
}

// NormalizeCategoryName trims the name and enforces the length limits.
func NormalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeNote trims the note; blank notes become nil.
func NormalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > MaxNoteLength {
		return nil, ErrNoteTooLong
	}
	return &trimmed, nil
}

// ValidateAmount rejects zero and negative amounts.
func ValidateAmount(amount Money) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
