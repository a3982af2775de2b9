package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestParseTokenFromRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	r := httptest.NewRequest("GET", "/api/transactions", nil)
	r.Header.Set("Authorization", "Bearer "+signed)

	claims, err := ParseTokenFromRequest(r)
	if err != nil {
		t.Fatalf("ParseTokenFromRequest: %v", err)
	}
	userID, err := userIDFromClaims(claims)
	if err != nil {
		t.Fatalf("userIDFromClaims: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestParseTokenFromRequestRejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
			"user_id": float64(1),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", "Bearer " + signToken(t, "test-secret", jwt.MapClaims{
			"user_id": float64(1),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/transactions", nil)
			if tc.token != "" {
				r.Header.Set("Authorization", tc.token)
			}
			if _, err := ParseTokenFromRequest(r); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestUserIDFromClaimsMissing(t *testing.T) {
	if _, err := userIDFromClaims(jwt.MapClaims{}); err == nil {
		t.Error("expected an error for claims without user_id")
	}
	if _, err := userIDFromClaims(jwt.MapClaims{"user_id": "42"}); err == nil {
		t.Error("expected an error for a non-numeric user_id")
	}
}
