// Package ledger owns the budget/transaction consistency rules: the
// overspend invariant enforced at write time and the derived aggregates
// (totals, percentages, reached counts) computed at read time.
package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"spendwise-server/src/models"
)

// Store is the persistence boundary for the ledger. The production
// implementation lives in src/db/sql; tests substitute an in-memory fake.
type Store interface {
	CreateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID int64) error
	BudgetAggregates(ctx context.Context, userID int64) ([]models.BudgetAggregate, error)

	// CreateLinkedTransaction re-checks the overspend bound and inserts in
	// one atomic unit. Returns ErrNotFound if the budget is absent or owned
	// by another user, or a *BudgetExceededError on violation. The stored
	// transaction inherits the budget's category.
	CreateLinkedTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	CreateStandaloneTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID int64) error
	ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
	BudgetTransactions(ctx context.Context, userID, budgetID int64) ([]models.Transaction, error)
}

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) CreateBudget(ctx context.Context, userID int64, name string, amount decimal.Decimal, category string) (*models.Budget, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, ErrInvalidInput
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	budget := &models.Budget{
		UserID:   userID,
		Name:     name,
		Amount:   amount.Round(2),
		Category: category,
	}
	return l.store.CreateBudget(ctx, budget)
}

func (l *Ledger) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	return l.store.DeleteBudget(ctx, userID, budgetID)
}

// TransactionInput carries the client-supplied fields of a new transaction.
// BudgetID nil means a standalone transaction with a signed amount and a
// caller-supplied category; non-nil means an expense magnitude debited
// against that budget.
type TransactionInput struct {
	BudgetID    *int64
	Amount      decimal.Decimal
	Description string
	Category    string
}

func (l *Ledger) CreateTransaction(ctx context.Context, userID int64, in TransactionInput) (*models.Transaction, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, ErrInvalidInput
	}

	t := &models.Transaction{
		UserID:      userID,
		BudgetID:    in.BudgetID,
		Description: description,
		Amount:      in.Amount.Round(2),
	}

	if in.BudgetID != nil {
		if !in.Amount.IsPositive() {
			return nil, ErrInvalidInput
		}
		return l.store.CreateLinkedTransaction(ctx, t)
	}

	if in.Amount.IsZero() {
		return nil, ErrInvalidInput
	}
	t.Category = strings.TrimSpace(in.Category)
	if t.Category == "" {
		return nil, ErrInvalidInput
	}
	return l.store.CreateStandaloneTransaction(ctx, t)
}

func (l *Ledger) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	// Deletions only reduce spend, so the budget bound is not re-checked.
	return l.store.DeleteTransaction(ctx, userID, transactionID)
}

func (l *Ledger) Transactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return l.store.ListTransactions(ctx, userID)
}

func (l *Ledger) BudgetTransactions(ctx context.Context, userID, budgetID int64) ([]models.Transaction, error) {
	return l.store.BudgetTransactions(ctx, userID, budgetID)
}
