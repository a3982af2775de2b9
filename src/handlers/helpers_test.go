package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"

	sqldb "spendwise-server/src/db/sql"
)

func TestWriteStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing row", sqldb.ErrNotFound, http.StatusNotFound},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("delete post: %w", sqldb.ErrNotFound), http.StatusNotFound},
		{"database failure", errors.New("connection reset by peer"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeStoreError(w, tc.err, "post not found", "failed to delete post")
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}

	// An internal failure must not masquerade as a missing resource.
	w := httptest.NewRecorder()
	writeStoreError(w, errors.New("broken pipe"), "post not found", "failed to delete post")
	if body := w.Body.String(); body == "" || w.Code != http.StatusInternalServerError {
		t.Fatalf("internal failure answered %d %q, want 500 with the fallback message", w.Code, body)
	}
}
