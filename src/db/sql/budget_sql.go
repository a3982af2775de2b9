package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"spendwise-server/src/ledger"
	"spendwise-server/src/models"
)

// LedgerStore is the pgx-backed implementation of ledger.Store. Monetary
// columns are NUMERIC(10,2) and travel as text so amounts never pass through
// binary floating point.
type LedgerStore struct {
	pool *pgxpool.Pool
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

func (s *LedgerStore) CreateBudget(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, name, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, amount::text, category, created_at
	`
	var b models.Budget
	var amountStr string
	err := s.pool.QueryRow(ctx, query, budget.UserID, budget.Name, budget.Amount.StringFixed(2), budget.Category).
		Scan(&b.ID, &b.UserID, &b.Name, &amountStr, &b.Category, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Amount, err = parseAmount(amountStr); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *LedgerStore) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	// Transactions go with the budget via the FK cascade.
	cmd, err := s.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (s *LedgerStore) BudgetAggregates(ctx context.Context, userID int64) ([]models.BudgetAggregate, error) {
	query := `
		SELECT b.id, b.user_id, b.name, b.amount::text, b.category, b.created_at,
			COUNT(t.id), COALESCE(SUM(t.amount), 0)::text
		FROM budgets b
		LEFT JOIN transactions t ON t.budget_id = b.id
		WHERE b.user_id = $1
		GROUP BY b.id
		ORDER BY b.created_at DESC
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []models.BudgetAggregate
	for rows.Next() {
		var a models.BudgetAggregate
		var amountStr, spentStr string
		err := rows.Scan(&a.ID, &a.UserID, &a.Name, &amountStr, &a.Category, &a.CreatedAt,
			&a.TransactionCount, &spentStr)
		if err != nil {
			return nil, err
		}
		if a.Amount, err = parseAmount(amountStr); err != nil {
			return nil, err
		}
		if a.TotalSpent, err = parseAmount(spentStr); err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}

// lockBudget loads a budget's allocation and category inside tx, locking the
// row so concurrent inserts on the same budget serialize.
func lockBudget(ctx context.Context, tx pgx.Tx, userID, budgetID int64) (allocation decimal.Decimal, category string, err error) {
	var amountStr string
	err = tx.QueryRow(ctx,
		`SELECT amount::text, category FROM budgets WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		budgetID, userID).Scan(&amountStr, &category)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, "", ledger.ErrNotFound
	}
	if err != nil {
		return decimal.Zero, "", err
	}
	allocation, err = parseAmount(amountStr)
	return allocation, category, err
}
