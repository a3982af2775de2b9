package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "spendwise-server/src/db/sql"
)

func GetNotifications(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		notifications, err := db.GetNotifications(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get notifications for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get notifications")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
	}
}

func DeleteNotification(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		idStr := chi.URLParam(r, "notificationId")
		notificationID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || notificationID <= 0 {
			writeError(w, http.StatusBadRequest, "invalid notification id")
			return
		}

		if err := db.DeleteNotification(r.Context(), pool, userID, notificationID); err != nil {
			log.Printf("ERROR: Failed to delete notification %d for user %d: %v", notificationID, userID, err)
			writeStoreError(w, err, "notification not found", "failed to delete notification")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
	}
}
