package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single monetary movement. BudgetID is nil for standalone
// transactions; when set, the amount is an expense magnitude debited against
// that budget's allocation.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	BudgetID    *int64          `json:"budget_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	BudgetName  *string         `json:"budget_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionsSummary aggregates all of a user's transactions.
type TransactionsSummary struct {
	Balance  decimal.Decimal `json:"balance"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}
