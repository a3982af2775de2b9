package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"spendwise-server/src/ledger"
	"spendwise-server/src/models"
)

const transactionColumns = `id, user_id, budget_id, description, amount::text, category, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var amountStr string
	err := row.Scan(&t.ID, &t.UserID, &t.BudgetID, &t.Description, &amountStr, &t.Category, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if t.Amount, err = parseAmount(amountStr); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateLinkedTransaction re-checks the budget bound and inserts inside one
// database transaction. The budget row is locked first, so two concurrent
// inserts on the same budget cannot both pass the check.
func (s *LedgerStore) CreateLinkedTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	allocation, category, err := lockBudget(ctx, tx, t.UserID, *t.BudgetID)
	if err != nil {
		return nil, err
	}

	var currentStr string
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text FROM transactions WHERE budget_id = $1`,
		*t.BudgetID).Scan(&currentStr)
	if err != nil {
		return nil, err
	}
	current, err := parseAmount(currentStr)
	if err != nil {
		return nil, err
	}

	if err := ledger.CheckOverspend(allocation, current, t.Amount); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (user_id, budget_id, description, amount, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + transactionColumns
	created, err := scanTransaction(tx.QueryRow(ctx, query,
		t.UserID, *t.BudgetID, t.Description, t.Amount.StringFixed(2), category))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *LedgerStore) CreateStandaloneTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, description, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + transactionColumns
	return scanTransaction(s.pool.QueryRow(ctx, query,
		t.UserID, t.Description, t.Amount.StringFixed(2), t.Category))
}

func (s *LedgerStore) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	// Ownership is transitive through the budget for linked transactions,
	// direct for standalone ones.
	query := `
		DELETE FROM transactions t
		WHERE t.id = $1 AND (
			(t.budget_id IS NULL AND t.user_id = $2) OR
			EXISTS (SELECT 1 FROM budgets b WHERE b.id = t.budget_id AND b.user_id = $2)
		)
	`
	cmd, err := s.pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (s *LedgerStore) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.budget_id, t.description, t.amount::text, t.category, t.created_at, b.name
		FROM transactions t
		LEFT JOIN budgets b ON t.budget_id = b.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amountStr string
		err := rows.Scan(&t.ID, &t.UserID, &t.BudgetID, &t.Description, &amountStr,
			&t.Category, &t.CreatedAt, &t.BudgetName)
		if err != nil {
			return nil, err
		}
		if t.Amount, err = parseAmount(amountStr); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *LedgerStore) BudgetTransactions(ctx context.Context, userID, budgetID int64) ([]models.Transaction, error) {
	var one int
	err := s.pool.QueryRow(ctx,
		`SELECT 1 FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ledger.ErrNotFound
		}
		return nil, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE budget_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amountStr string
		err := rows.Scan(&t.ID, &t.UserID, &t.BudgetID, &t.Description, &amountStr, &t.Category, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		if t.Amount, err = parseAmount(amountStr); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
