package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Recurrence string          `json:"recurrence"`
	Rating     int             `json:"rating"`
	ImageURL   *string         `json:"image_url"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SubscriptionsSummary breaks spend down by recurrence. MonthlyEquivalent
// normalizes everything to a per-month figure (weekly x52/12, yearly /12).
type SubscriptionsSummary struct {
	Count             int64           `json:"count"`
	WeeklyTotal       decimal.Decimal `json:"weekly_total"`
	MonthlyTotal      decimal.Decimal `json:"monthly_total"`
	YearlyTotal       decimal.Decimal `json:"yearly_total"`
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
}
