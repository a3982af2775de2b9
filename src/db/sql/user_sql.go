package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/models"
)

const userColumns = `id, username, email, password, profile_image, first_name, last_name, bio, location, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfileImage,
		&u.FirstName, &u.LastName, &u.Bio, &u.Location, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, hashedPassword, profileImage string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password, profile_image, first_name, last_name, bio, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns
	return scanUser(pool.QueryRow(ctx, query,
		req.Username, req.Email, hashedPassword, profileImage,
		req.FirstName, req.LastName, req.Bio, req.Location))
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(pool.QueryRow(ctx, query, userID))
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(pool.QueryRow(ctx, query, email))
}

func GetUserByUsername(ctx context.Context, pool *pgxpool.Pool, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(pool.QueryRow(ctx, query, username))
}

// FindUserConflict reports which unique field (email or username) is already
// taken by a different user. Empty string means no conflict.
func FindUserConflict(ctx context.Context, pool *pgxpool.Pool, username, email string, excludeID int64) (string, error) {
	query := `
		SELECT username, email FROM users
		WHERE (email = $1 OR username = $2) AND id != $3
		LIMIT 1
	`
	var existingUsername, existingEmail string
	err := pool.QueryRow(ctx, query, email, username, excludeID).Scan(&existingUsername, &existingEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if email != "" && existingEmail == email {
		return "email", nil
	}
	return "username", nil
}

func UpdateUserProfile(ctx context.Context, pool *pgxpool.Pool, userID int64, req models.UpdateProfileRequest) (*models.User, error) {
	query := `
		UPDATE users SET
			username = COALESCE($1, username),
			email = COALESCE($2, email),
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			bio = COALESCE($5, bio),
			location = COALESCE($6, location),
			profile_image = COALESCE($7, profile_image),
			updated_at = NOW()
		WHERE id = $8
		RETURNING ` + userColumns
	return scanUser(pool.QueryRow(ctx, query,
		req.Username, req.Email, req.FirstName, req.LastName,
		req.Bio, req.Location, req.ProfileImage, userID))
}

func FollowCounts(ctx context.Context, pool *pgxpool.Pool, userID int64) (followers, following int64, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM followers WHERE user_id = $1),
			(SELECT COUNT(*) FROM followers WHERE follower_id = $1)
	`
	err = pool.QueryRow(ctx, query, userID).Scan(&followers, &following)
	return followers, following, err
}

func IsFollowing(ctx context.Context, pool *pgxpool.Pool, userID, followerID int64) (bool, error) {
	query := `SELECT 1 FROM followers WHERE user_id = $1 AND follower_id = $2 LIMIT 1`
	var one int
	err := pool.QueryRow(ctx, query, userID, followerID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFollow follows the target when no follow exists, unfollows otherwise.
// A new follow records a notification for the target user.
func ToggleFollow(ctx context.Context, pool *pgxpool.Pool, targetUserID, followerID int64) (following bool, err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM followers WHERE user_id = $1 AND follower_id = $2`, targetUserID, followerID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, `INSERT INTO followers (user_id, follower_id) VALUES ($1, $2)`, targetUserID, followerID)
		if err != nil {
			return false, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO notifications (from_user_id, to_user_id, type) VALUES ($1, $2, $3)`,
			followerID, targetUserID, models.NotificationTypeFollow)
		if err != nil {
			return false, err
		}
		following = true
	}
	return following, tx.Commit(ctx)
}

type ProfileImage struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
}

func ListProfileImages(ctx context.Context, pool *pgxpool.Pool) ([]ProfileImage, error) {
	rows, err := pool.Query(ctx, `SELECT username, profile_image FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []ProfileImage
	for rows.Next() {
		var p ProfileImage
		if err := rows.Scan(&p.Username, &p.ProfileImage); err != nil {
			return nil, err
		}
		images = append(images, p)
	}
	return images, rows.Err()
}

func UserExists(ctx context.Context, pool *pgxpool.Pool, userID int64) (bool, error) {
	var one int
	err := pool.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1`, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return true, nil
}
