package util

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate accepts YYYY-MM-DD.
func ValidateDate(date string) bool {
	return dateRe.MatchString(date)
}

func ValidateRecurrence(recurrence string) bool {
	switch recurrence {
	case "weekly", "monthly", "yearly":
		return true
	}
	return false
}

func ValidateRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
