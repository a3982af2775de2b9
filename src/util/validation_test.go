package util

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "x_1@sub.domain.org"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "plain", "@example.com", "user@", "user@nodot", "user@example."}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true, want false", e)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if ValidateUsername("ab") {
		t.Error("two characters should be rejected")
	}
	if !ValidateUsername("abc") {
		t.Error("three characters should be accepted")
	}
	long := make([]byte, 31)
	for i := range long {
		long[i] = 'a'
	}
	if ValidateUsername(string(long)) {
		t.Error("31 characters should be rejected")
	}
}

func TestValidatePassword(t *testing.T) {
	if ValidatePassword("12345") {
		t.Error("five characters should be rejected")
	}
	if !ValidatePassword("123456") {
		t.Error("six characters should be accepted")
	}
}

func TestValidateDate(t *testing.T) {
	if !ValidateDate("2025-01-31") {
		t.Error("YYYY-MM-DD should be accepted")
	}
	for _, d := range []string{"", "2025-1-31", "31-01-2025", "2025/01/31", "2025-01-31T00:00:00Z"} {
		if ValidateDate(d) {
			t.Errorf("ValidateDate(%q) = true, want false", d)
		}
	}
}

func TestValidateRecurrence(t *testing.T) {
	for _, r := range []string{"weekly", "monthly", "yearly"} {
		if !ValidateRecurrence(r) {
			t.Errorf("ValidateRecurrence(%q) = false, want true", r)
		}
	}
	for _, r := range []string{"", "daily", "Monthly"} {
		if ValidateRecurrence(r) {
			t.Errorf("ValidateRecurrence(%q) = true, want false", r)
		}
	}
}

func TestValidateRating(t *testing.T) {
	for _, r := range []int{1, 3, 5} {
		if !ValidateRating(r) {
			t.Errorf("ValidateRating(%d) = false, want true", r)
		}
	}
	for _, r := range []int{0, 6, -1} {
		if ValidateRating(r) {
			t.Errorf("ValidateRating(%d) = true, want false", r)
		}
	}
}
