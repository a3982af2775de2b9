package models

import "time"

// Notification types
const (
	NotificationTypeFollow  = "follow"
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`

	From NotificationActor `json:"from"`

	Post    *NotificationPost    `json:"post,omitempty"`
	Comment *NotificationComment `json:"comment,omitempty"`
}

type NotificationActor struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ProfileImage string `json:"profile_image"`
}

type NotificationPost struct {
	Title   *string `json:"title"`
	Content string  `json:"content"`
	Image   string  `json:"image"`
}

type NotificationComment struct {
	Content string `json:"content"`
}
