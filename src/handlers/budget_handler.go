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
	"spendwise-server/src/models"
)

func CreateBudget(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		var req struct {
			Name     string          `json:"name"`
			Amount   decimal.Decimal `json:"amount"`
			Category string          `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		created, err := l.CreateBudget(r.Context(), userID, req.Name, req.Amount, req.Category)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			writeLedgerError(w, err, "failed to create budget")
			return
		}

		db.DelSummaryCache(userID)
		log.Printf("INFO: Created budget id %d for user %d, category %s", created.ID, userID, created.Category)
		writeJSON(w, http.StatusCreated, created)
	}
}

func DeleteBudget(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		budgetIDStr := chi.URLParam(r, "budgetId")
		budgetID, err := strconv.ParseInt(budgetIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			writeError(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		if err := l.DeleteBudget(r.Context(), userID, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			writeLedgerError(w, err, "failed to delete budget")
			return
		}

		db.DelSummaryCache(userID)
		log.Printf("INFO: Deleted budget id %d for user %d", budgetID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "budget deleted"})
	}
}

func GetAllBudgetsSummary(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)

		cacheKey := db.SummaryCacheKey(userID)
		if cached, found := db.Cache.Get(cacheKey); found {
			if summaries, ok := cached.([]models.BudgetSummary); ok {
				writeJSON(w, http.StatusOK, map[string]interface{}{"budgets": summaries})
				return
			}
		}

		summaries, err := l.BudgetsSummary(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budget summaries for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get budget summaries")
			return
		}

		db.SetSummaryCache(cacheKey, summaries)
		writeJSON(w, http.StatusOK, map[string]interface{}{"budgets": summaries})
	}
}

func GetReachedBudgets(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)

		reached, total, err := l.ReachedCount(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to count reached budgets for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to count reached budgets")
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{"reached": reached, "total": total})
	}
}

func GetBudgetTransactions(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		budgetIDStr := chi.URLParam(r, "budgetId")
		budgetID, err := strconv.ParseInt(budgetIDStr, 10, 64)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			writeError(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		transactions, err := l.BudgetTransactions(r.Context(), userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for budget %d, user %d: %v", budgetID, userID, err)
			writeLedgerError(w, err, "failed to get budget transactions")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
	}
}
