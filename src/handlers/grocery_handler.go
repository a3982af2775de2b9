package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "spendwise-server/src/db/sql"
)

func groceryIDParam(r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	return id, err == nil && id > 0
}

func GetGroceries(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		groceries, err := db.GetGroceries(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get groceries for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get groceries")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"groceries": groceries})
	}
}

func AddGrocery(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode add grocery request body for user %d: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		grocery, err := db.AddGrocery(r.Context(), pool, userID, strings.TrimSpace(req.Text))
		if err != nil {
			log.Printf("ERROR: Failed to add grocery for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to add grocery")
			return
		}
		writeJSON(w, http.StatusCreated, grocery)
	}
}

func ToggleGrocery(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		groceryID, ok := groceryIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid grocery id")
			return
		}

		grocery, err := db.ToggleGrocery(r.Context(), pool, userID, groceryID)
		if err != nil {
			log.Printf("ERROR: Failed to toggle grocery id %d for user %d: %v", groceryID, userID, err)
			writeStoreError(w, err, "grocery not found", "failed to toggle grocery")
			return
		}
		writeJSON(w, http.StatusOK, grocery)
	}
}

func UpdateGrocery(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		groceryID, ok := groceryIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid grocery id")
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "invalid text")
			return
		}

		grocery, err := db.UpdateGrocery(r.Context(), pool, userID, groceryID, strings.TrimSpace(req.Text))
		if err != nil {
			log.Printf("ERROR: Failed to update grocery id %d for user %d: %v", groceryID, userID, err)
			writeStoreError(w, err, "grocery not found", "failed to update grocery")
			return
		}
		writeJSON(w, http.StatusOK, grocery)
	}
}

func DeleteGrocery(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		groceryID, ok := groceryIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid grocery id")
			return
		}

		if err := db.DeleteGrocery(r.Context(), pool, userID, groceryID); err != nil {
			log.Printf("ERROR: Failed to delete grocery id %d for user %d: %v", groceryID, userID, err)
			writeStoreError(w, err, "grocery not found", "failed to delete grocery")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "grocery deleted", "deleted_id": groceryID})
	}
}

func ClearGroceries(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		deleted, err := db.ClearGroceries(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to clear groceries for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to clear groceries")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "all groceries deleted", "deleted_count": deleted})
	}
}

func GetGroceriesSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		summary, err := db.GetGroceriesSummary(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get groceries summary for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get groceries summary")
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
