package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	db "spendwise-server/src/db/sql"
	"spendwise-server/src/models"
	"spendwise-server/src/util"
)

const tokenLifetime = 15 * 24 * time.Hour

func generateToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func defaultProfileImage(username string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(username)
}

func Register(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Username = strings.TrimSpace(req.Username)

		if req.Username == "" || req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username, email and password are required")
			return
		}
		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			writeError(w, http.StatusBadRequest, "invalid email format")
			return
		}
		if !util.ValidateUsername(req.Username) {
			log.Printf("ERROR: Username validation failed during registration - Username: %s", req.Username)
			writeError(w, http.StatusBadRequest, "username must be between 3 and 30 characters")
			return
		}
		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during registration - Username: %s", req.Username)
			writeError(w, http.StatusBadRequest, "password must be at least 6 characters long")
			return
		}

		conflict, err := db.FindUserConflict(r.Context(), pool, req.Username, req.Email, 0)
		if err != nil {
			log.Printf("ERROR: Failed to check user conflicts during registration: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if conflict != "" {
			log.Printf("ERROR: Registration failed - %s already exists - Email: %s, Username: %s", conflict, req.Email, req.Username)
			writeError(w, http.StatusBadRequest, conflict+" already exists")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", req.Username, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req, string(hashedPassword), defaultProfileImage(req.Username))
		if err != nil {
			log.Printf("ERROR: Failed to create user %s: %v", req.Username, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		token, err := generateToken(user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", user.Username, err)
			writeError(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", user.Username, user.ID)
		writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
	}
}

func Login(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "all fields are required")
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, strings.ToLower(req.Email))
		if err != nil {
			log.Printf("ERROR: Failed to find user during login - Email: %s: %v", req.Email, err)
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for email %s from IP %s", req.Email, r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := generateToken(user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", user.Username, err)
			writeError(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Successful login - User: %s, ID: %d", user.Username, user.ID)
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
	}
}

func GetCurrentUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value("current_user").(*models.User)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		followers, following, err := db.FollowCounts(r.Context(), pool, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to get follow counts for user %d: %v", user.ID, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		profile := models.UserProfile{User: *user, FollowersCount: followers, FollowingCount: following}
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
	}
}

func GetUserProfile(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := db.GetUserByUsername(r.Context(), pool, username)
		if err != nil {
			log.Printf("ERROR: Failed to load profile for username %s: %v", username, err)
			writeStoreError(w, err, "user not found", "internal error")
			return
		}

		followers, following, err := db.FollowCounts(r.Context(), pool, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to get follow counts for user %d: %v", user.ID, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		profile := models.UserProfile{User: *user, FollowersCount: followers, FollowingCount: following}
		if viewerID := userIDFromContext(r); viewerID != 0 {
			isFollowing, err := db.IsFollowing(r.Context(), pool, user.ID, viewerID)
			if err != nil {
				log.Printf("ERROR: Failed to check follow state for user %d: %v", user.ID, err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			profile.IsFollowing = isFollowing
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
	}
}

func UpdateProfile(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)

		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update profile request for user %d: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.Username != nil && !util.ValidateUsername(*req.Username) {
			writeError(w, http.StatusBadRequest, "username must be between 3 and 30 characters")
			return
		}
		if req.Email != nil && !util.ValidateEmail(*req.Email) {
			writeError(w, http.StatusBadRequest, "invalid email format")
			return
		}

		if req.Username != nil || req.Email != nil {
			var username, email string
			if req.Username != nil {
				username = *req.Username
			}
			if req.Email != nil {
				email = *req.Email
			}
			conflict, err := db.FindUserConflict(r.Context(), pool, username, email, userID)
			if err != nil {
				log.Printf("ERROR: Failed to check user conflicts for user %d: %v", userID, err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if conflict != "" {
				writeError(w, http.StatusBadRequest, conflict+" already exists")
				return
			}
		}

		user, err := db.UpdateUserProfile(r.Context(), pool, userID, req)
		if err != nil {
			log.Printf("ERROR: Failed to update profile for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: Updated profile for user %d", userID)
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}

func FollowUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r)
		targetIDStr := chi.URLParam(r, "targetUserId")
		targetID, err := strconv.ParseInt(targetIDStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		if targetID == userID {
			writeError(w, http.StatusBadRequest, "you cannot follow yourself")
			return
		}

		exists, err := db.UserExists(r.Context(), pool, targetID)
		if err != nil {
			log.Printf("ERROR: Failed to check user %d existence: %v", targetID, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		following, err := db.ToggleFollow(r.Context(), pool, targetID, userID)
		if err != nil {
			log.Printf("ERROR: Failed to toggle follow of user %d by user %d: %v", targetID, userID, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		message := "user unfollowed successfully"
		if following {
			message = "user followed successfully"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": message, "following": following})
	}
}

func GetProfileImages(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := db.ListProfileImages(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to list profile images: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"users": images})
	}
}
