package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	sqldb "spendwise-server/src/db/sql"
	"spendwise-server/src/ledger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeLedgerError maps the ledger error taxonomy onto HTTP statuses.
// Budget-exceeded responses carry the shortfall so clients can show it
// without a second round trip.
func writeLedgerError(w http.ResponseWriter, err error, fallback string) {
	var exceeded *ledger.BudgetExceededError
	switch {
	case errors.As(err, &exceeded):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "transaction amount exceeds the available budget",
			"details": map[string]string{
				"remaining": exceeded.Remaining.StringFixed(2),
				"attempted": exceeded.Attempted.StringFixed(2),
			},
		})
	case errors.Is(err, ledger.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// writeStoreError maps store lookup failures: absent or foreign-owned rows
// answer 404, anything else is an internal failure.
func writeStoreError(w http.ResponseWriter, err error, notFoundMessage, fallback string) {
	if errors.Is(err, sqldb.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	writeError(w, http.StatusInternalServerError, fallback)
}

func userIDFromContext(r *http.Request) int64 {
	userID, _ := r.Context().Value("user_id").(int64)
	return userID
}
