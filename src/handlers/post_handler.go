package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/db"
	sqldb "spendwise-server/src/db/sql"
	"spendwise-server/src/models"
)

func postIDParam(r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "postId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	return id, err == nil && id > 0
}

func GetPosts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := userIDFromContext(r)

		cacheKey := fmt.Sprintf("feed:%d", viewerID)
		if cached, found := db.Cache.Get(cacheKey); found {
			if posts, ok := cached.([]models.Post); ok {
				writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
				return
			}
		}

		posts, err := sqldb.GetPosts(r.Context(), pool, viewerID)
		if err != nil {
			log.Printf("ERROR: Failed to get posts: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to get posts")
			return
		}

		db.SetFeedCache(cacheKey, posts)
		writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
	}
}

func GetPost(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := userIDFromContext(r)
		postID, ok := postIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		post, err := sqldb.GetPost(r.Context(), pool, postID, viewerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			log.Printf("ERROR: Failed to get post %d: %v", postID, err)
			writeError(w, http.StatusInternalServerError, "failed to get post")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"post": post})
	}
}

func GetUserPosts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := userIDFromContext(r)
		username := chi.URLParam(r, "username")

		posts, err := sqldb.GetUserPosts(r.Context(), pool, username, viewerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "user not found")
				return
			}
			log.Printf("ERROR: Failed to get posts for username %s: %v", username, err)
			writeError(w, http.StatusInternalServerError, "failed to get posts")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
	}
}

func CreatePost(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		var req struct {
			Title   *string `json:"title"`
			Content string  `json:"content"`
			Image   string  `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create post request body for user %d: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		hasTitle := req.Title != nil && strings.TrimSpace(*req.Title) != ""
		if !hasTitle && strings.TrimSpace(req.Content) == "" && req.Image == "" {
			writeError(w, http.StatusBadRequest, "post must contain either title, text or image")
			return
		}

		post, err := sqldb.CreatePost(r.Context(), pool, userID, req.Title, req.Content, req.Image)
		if err != nil {
			log.Printf("ERROR: Failed to create post for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to create post")
			return
		}

		db.ClearAllFeedCaches()
		log.Printf("INFO: Created post id %d for user %d", post.ID, userID)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"post": post})
	}
}

func LikePost(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		postID, ok := postIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		liked, err := sqldb.TogglePostLike(r.Context(), pool, userID, postID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			log.Printf("ERROR: Failed to toggle like on post %d by user %d: %v", postID, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to like post")
			return
		}

		db.ClearAllFeedCaches()
		message := "post unliked successfully"
		if liked {
			message = "post liked successfully"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": message, "liked": liked})
	}
}

func DeletePost(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		postID, ok := postIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		if err := sqldb.DeletePost(r.Context(), pool, userID, postID); err != nil {
			log.Printf("ERROR: Failed to delete post %d for user %d: %v", postID, userID, err)
			writeStoreError(w, err, "post not found", "failed to delete post")
			return
		}

		db.ClearAllFeedCaches()
		log.Printf("INFO: Deleted post id %d for user %d", postID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
	}
}
