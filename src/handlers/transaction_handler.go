package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"spendwise-server/src/db"
	"spendwise-server/src/ledger"
)

func CreateTransaction(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		var req struct {
			BudgetID    *int64          `json:"budget_id"`
			Amount      decimal.Decimal `json:"amount"`
			Description string          `json:"description"`
			Category    string          `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		created, err := l.CreateTransaction(r.Context(), userID, ledger.TransactionInput{
			BudgetID:    req.BudgetID,
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			writeLedgerError(w, err, "failed to create transaction")
			return
		}

		db.DelSummaryCache(userID)
		log.Printf("INFO: Created transaction id %d for user %d", created.ID, userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func GetTransactions(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)

		transactions, err := l.Transactions(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get transactions")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
	}
}

func DeleteTransaction(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		transactionIDStr := chi.URLParam(r, "transactionId")
		transactionID, err := strconv.ParseInt(transactionIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", transactionIDStr)
			writeError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		if err := l.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", transactionID, userID, err)
			writeLedgerError(w, err, "failed to delete transaction")
			return
		}

		db.DelSummaryCache(userID)
		log.Printf("INFO: Deleted transaction id %d for user %d", transactionID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
	}
}

func GetTransactionsSummary(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)

		summary, err := l.TransactionsSummary(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions summary for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get transactions summary")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
