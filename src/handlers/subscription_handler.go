package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	db "spendwise-server/src/db/sql"
	"spendwise-server/src/models"
	"spendwise-server/src/util"
)

func GetSubscriptions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		subscriptions, err := db.GetSubscriptions(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get subscriptions for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get subscriptions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"subscriptions": subscriptions})
	}
}

func CreateSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		var req struct {
			Label      string          `json:"label"`
			Amount     decimal.Decimal `json:"amount"`
			Date       string          `json:"date"`
			Recurrence string          `json:"recurrence"`
			Rating     int             `json:"rating"`
			ImageURL   *string         `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create subscription request body for user %d: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		var validationErrors []string
		if strings.TrimSpace(req.Label) == "" {
			validationErrors = append(validationErrors, "label is required")
		}
		if !req.Amount.IsPositive() {
			validationErrors = append(validationErrors, "amount must be a positive number")
		}
		if !util.ValidateDate(req.Date) {
			validationErrors = append(validationErrors, "invalid date format (YYYY-MM-DD required)")
		}
		if !util.ValidateRecurrence(req.Recurrence) {
			validationErrors = append(validationErrors, "recurrence must be one of: weekly, monthly, yearly")
		}
		if !util.ValidateRating(req.Rating) {
			validationErrors = append(validationErrors, "rating must be an integer between 1 and 5")
		}
		if len(validationErrors) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "validation failed",
				"errors":  validationErrors,
			})
			return
		}

		subscription := &models.Subscription{
			UserID:     userID,
			Label:      strings.TrimSpace(req.Label),
			Amount:     req.Amount.Round(2),
			Date:       req.Date,
			Recurrence: req.Recurrence,
			Rating:     req.Rating,
			ImageURL:   req.ImageURL,
		}
		created, err := db.CreateSubscription(r.Context(), pool, subscription)
		if err != nil {
			log.Printf("ERROR: Failed to create subscription for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to create subscription")
			return
		}

		log.Printf("INFO: Created subscription id %d for user %d", created.ID, userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func DeleteSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		idStr := chi.URLParam(r, "id")
		subscriptionID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || subscriptionID <= 0 {
			log.Printf("ERROR: Invalid subscription id param: %s", idStr)
			writeError(w, http.StatusBadRequest, "invalid subscription id")
			return
		}

		if err := db.DeleteSubscription(r.Context(), pool, userID, subscriptionID); err != nil {
			log.Printf("ERROR: Failed to delete subscription id %d for user %d: %v", subscriptionID, userID, err)
			writeStoreError(w, err, "subscription not found", "failed to delete subscription")
			return
		}

		log.Printf("INFO: Deleted subscription id %d for user %d", subscriptionID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "subscription deleted"})
	}
}

func GetSubscriptionsSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		summary, err := db.GetSubscriptionsSummary(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get subscriptions summary for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get subscriptions summary")
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
