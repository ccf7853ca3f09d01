package budgetclient

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// Transaction amounts are minor currency units.
type Transaction struct {
	ID        uuid.UUID   `json:"id"`
	Type      string      `json:"type"`
	Amount    int64       `json:"amount"`
	Date      time.Time   `json:"date"`
	Note      *string     `json:"note"`
	CreatedAt time.Time   `json:"createdAt"`
	Category  CategoryRef `json:"category"`
}

// TransactionQuery filters listings and exports. Zero fields are not sent.
type TransactionQuery struct {
	Month      string
	Type       string
	CategoryID uuid.UUID
}

type NewTransaction struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Type       string    `json:"type"`
	Amount     int64     `json:"amount"`
	Date       time.Time `json:"date"`
	Note       *string   `json:"note,omitempty"`
}

// TransactionPatch lists the fields to change; nil fields are left alone.
// An empty Note clears the stored note.
type TransactionPatch struct {
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	Amount     *int64     `json:"amount,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Note       *string    `json:"note,omitempty"`
}

type CategorySpend struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Amount       int64     `json:"amount"`
}

type DailyExpense struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

type Summary struct {
	Month           string          `json:"month"`
	TotalIncome     int64           `json:"totalIncome"`
	TotalExpense    int64           `json:"totalExpense"`
	Net             int64           `json:"net"`
	SpendByCategory []CategorySpend `json:"spendByCategory"`
	DailyExpense    []DailyExpense  `json:"dailyExpense"`
}

type NarrationInput struct {
	Month    string `json:"month"`
	Currency string `json:"currency"`
	Totals   struct {
		Income  string `json:"income"`
		Expense string `json:"expense"`
		Net     string `json:"net"`
	} `json:"totals"`
	TopSpend []struct {
		Category string `json:"category"`
		Amount   string `json:"amount"`
	} `json:"topSpend"`
}

// AISummary is either generated text or, with Fallback set, a notice that
// the provider was rate limited.
type AISummary struct {
	Month    string          `json:"month"`
	AI       string          `json:"ai"`
	Fallback bool            `json:"fallback"`
	Reason   string          `json:"reason,omitempty"`
	Input    *NarrationInput `json:"input,omitempty"`
}

type Status struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	DB      string `json:"db"`
	Time    string `json:"time"`
}

// Export is a downloaded CSV file.
type Export struct {
	Filename string
	Data     []byte
}
