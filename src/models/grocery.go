package models

import "time"

type Grocery struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroceriesSummary struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}
