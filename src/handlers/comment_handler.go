package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/db"
	sqldb "spendwise-server/src/db/sql"
)

func commentIDParam(r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "commentId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	return id, err == nil && id > 0
}

func GetComments(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := userIDFromContext(r)
		postID, ok := postIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		comments, err := sqldb.GetPostComments(r.Context(), pool, postID, viewerID)
		if err != nil {
			log.Printf("ERROR: Failed to get comments for post %d: %v", postID, err)
			writeError(w, http.StatusInternalServerError, "failed to get comments")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
	}
}

func CreateComment(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		postID, ok := postIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "comment content is required")
			return
		}

		comment, err := sqldb.CreateComment(r.Context(), pool, userID, postID, strings.TrimSpace(req.Content))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			log.Printf("ERROR: Failed to create comment on post %d for user %d: %v", postID, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to create comment")
			return
		}

		db.ClearAllFeedCaches()
		log.Printf("INFO: Created comment id %d on post %d for user %d", comment.ID, postID, userID)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"comment": comment})
	}
}

func LikeComment(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		commentID, ok := commentIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid comment id")
			return
		}

		liked, err := sqldb.ToggleCommentLike(r.Context(), pool, userID, commentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "comment not found")
				return
			}
			log.Printf("ERROR: Failed to toggle like on comment %d by user %d: %v", commentID, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to like comment")
			return
		}

		message := "comment unliked successfully"
		if liked {
			message = "comment liked successfully"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": message, "liked": liked})
	}
}

func DeleteComment(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		commentID, ok := commentIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid comment id")
			return
		}

		if err := sqldb.DeleteComment(r.Context(), pool, userID, commentID); err != nil {
			log.Printf("ERROR: Failed to delete comment %d for user %d: %v", commentID, userID, err)
			writeStoreError(w, err, "comment not found", "failed to delete comment")
			return
		}

		db.ClearAllFeedCaches()
		log.Printf("INFO: Deleted comment id %d for user %d", commentID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
	}
}
