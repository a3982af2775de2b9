package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// BudgetAggregate is a budget row joined with its transaction aggregate.
// TotalSpent is zero for budgets with no transactions.
type BudgetAggregate struct {
	Budget
	TransactionCount int64
	TotalSpent       decimal.Decimal
}

// BudgetSummary is the derived per-budget view returned to clients.
type BudgetSummary struct {
	BudgetID         int64           `json:"budget_id"`
	BudgetName       string          `json:"budget_name"`
	Category         string          `json:"category"`
	TransactionCount int64           `json:"transaction_count"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	BudgetTotal      decimal.Decimal `json:"budget_total"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	PercentageUsed   decimal.Decimal `json:"percentage_used"`
}
