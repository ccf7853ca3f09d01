package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-api/internal/ledger"
)

// Transaction is a ledger entry together with its category. Category is a
// placeholder named Unknown when the entry's category no longer exists.
type Transaction struct {
	ledger.Entry
	Category ledger.Category
}

// TransactionFilter narrows a transaction listing. An empty Month lists
// every month.
type TransactionFilter struct {
	Month      string
	Kind       *ledger.Kind
	CategoryID *uuid.UUID
}

// NewTransaction is the input for recording a transaction.
type NewTransaction struct {
	CategoryID uuid.UUID
	Kind       ledger.Kind
	Amount     ledger.Money
	OccurredAt time.Time
	Note       *string
}

// TransactionPatch lists the fields to change; nil fields are kept.
type TransactionPatch struct {
	CategoryID *uuid.UUID
	Amount     *ledger.Money
	OccurredAt *time.Time
	Note       *string
}
