package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/models"
)

const groceryColumns = `id, user_id, text, is_completed, created_at`

func scanGrocery(row pgx.Row) (*models.Grocery, error) {
	var g models.Grocery
	err := row.Scan(&g.ID, &g.UserID, &g.Text, &g.IsCompleted, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func GetGroceries(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Grocery, error) {
	query := `SELECT ` + groceryColumns + ` FROM groceries WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groceries []models.Grocery
	for rows.Next() {
		var g models.Grocery
		if err := rows.Scan(&g.ID, &g.UserID, &g.Text, &g.IsCompleted, &g.CreatedAt); err != nil {
			return nil, err
		}
		groceries = append(groceries, g)
	}
	return groceries, rows.Err()
}

func AddGrocery(ctx context.Context, pool *pgxpool.Pool, userID int64, text string) (*models.Grocery, error) {
	query := `
		INSERT INTO groceries (user_id, text, is_completed)
		VALUES ($1, $2, FALSE)
		RETURNING ` + groceryColumns
	return scanGrocery(pool.QueryRow(ctx, query, userID, text))
}

func ToggleGrocery(ctx context.Context, pool *pgxpool.Pool, userID, groceryID int64) (*models.Grocery, error) {
	query := `
		UPDATE groceries SET is_completed = NOT is_completed
		WHERE id = $1 AND user_id = $2
		RETURNING ` + groceryColumns
	g, err := scanGrocery(pool.QueryRow(ctx, query, groceryID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

func UpdateGrocery(ctx context.Context, pool *pgxpool.Pool, userID, groceryID int64, text string) (*models.Grocery, error) {
	query := `
		UPDATE groceries SET text = $1
		WHERE id = $2 AND user_id = $3
		RETURNING ` + groceryColumns
	g, err := scanGrocery(pool.QueryRow(ctx, query, text, groceryID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

func DeleteGrocery(ctx context.Context, pool *pgxpool.Pool, userID, groceryID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM groceries WHERE id = $1 AND user_id = $2`, groceryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func ClearGroceries(ctx context.Context, pool *pgxpool.Pool, userID int64) (int64, error) {
	cmd, err := pool.Exec(ctx, `DELETE FROM groceries WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func GetGroceriesSummary(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.GroceriesSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0)
		FROM groceries
		WHERE user_id = $1
	`
	var summary models.GroceriesSummary
	if err := pool.QueryRow(ctx, query, userID).Scan(&summary.Total, &summary.Completed); err != nil {
		return nil, err
	}
	return &summary, nil
}
