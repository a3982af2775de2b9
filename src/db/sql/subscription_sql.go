package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"spendwise-server/src/models"
)

const subscriptionColumns = `id, user_id, label, amount::text, to_char(date, 'YYYY-MM-DD'), recurrence, rating, image_url, created_at`

func CreateSubscription(ctx context.Context, pool *pgxpool.Pool, sub *models.Subscription) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (user_id, label, amount, date, recurrence, rating, image_url)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7)
		RETURNING ` + subscriptionColumns
	var s models.Subscription
	var amountStr string
	err := pool.QueryRow(ctx, query,
		sub.UserID, sub.Label, sub.Amount.StringFixed(2), sub.Date, sub.Recurrence, sub.Rating, sub.ImageURL).
		Scan(&s.ID, &s.UserID, &s.Label, &amountStr, &s.Date, &s.Recurrence, &s.Rating, &s.ImageURL, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Amount, err = parseAmount(amountStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSubscriptions(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscriptions []models.Subscription
	for rows.Next() {
		var s models.Subscription
		var amountStr string
		err := rows.Scan(&s.ID, &s.UserID, &s.Label, &amountStr, &s.Date, &s.Recurrence, &s.Rating, &s.ImageURL, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		if s.Amount, err = parseAmount(amountStr); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, s)
	}
	return subscriptions, rows.Err()
}

func DeleteSubscription(ctx context.Context, pool *pgxpool.Pool, userID, subscriptionID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, subscriptionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	weeksPerMonth = decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	monthsPerYear = decimal.NewFromInt(12)
)

// GetSubscriptionsSummary totals spend per recurrence and normalizes the lot
// to a monthly-equivalent figure.
func GetSubscriptionsSummary(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.SubscriptionsSummary, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(amount) FILTER (WHERE recurrence = 'weekly'), 0)::text,
			COALESCE(SUM(amount) FILTER (WHERE recurrence = 'monthly'), 0)::text,
			COALESCE(SUM(amount) FILTER (WHERE recurrence = 'yearly'), 0)::text
		FROM subscriptions
		WHERE user_id = $1
	`
	var summary models.SubscriptionsSummary
	var weeklyStr, monthlyStr, yearlyStr string
	err := pool.QueryRow(ctx, query, userID).Scan(&summary.Count, &weeklyStr, &monthlyStr, &yearlyStr)
	if err != nil {
		return nil, err
	}
	if summary.WeeklyTotal, err = parseAmount(weeklyStr); err != nil {
		return nil, err
	}
	if summary.MonthlyTotal, err = parseAmount(monthlyStr); err != nil {
		return nil, err
	}
	if summary.YearlyTotal, err = parseAmount(yearlyStr); err != nil {
		return nil, err
	}
	summary.MonthlyEquivalent = summary.WeeklyTotal.Mul(weeksPerMonth).
		Add(summary.MonthlyTotal).
		Add(summary.YearlyTotal.Div(monthsPerYear)).
		Round(2)
	return &summary, nil
}
