package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/models"
)

// postComments returns a post's comments oldest-first for embedding in feed
// responses, without like details.
func postComments(ctx context.Context, pool *pgxpool.Pool, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.post_id, c.content, c.created_at,
			u.username, u.first_name, u.last_name, u.profile_image
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Content, &c.CreatedAt,
			&c.Username, &c.FirstName, &c.LastName, &c.ProfileImage)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetPostComments is the standalone comment listing, newest-first with like
// counts and the viewer's own like state.
func GetPostComments(ctx context.Context, pool *pgxpool.Pool, postID, viewerID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.post_id, c.content, c.created_at,
			u.username, u.first_name, u.last_name, u.profile_image,
			COUNT(DISTINCT cl.user_id),
			EXISTS(SELECT 1 FROM comment_likes WHERE comment_id = c.id AND user_id = $1)
		FROM comments c
		JOIN users u ON c.user_id = u.id
		LEFT JOIN comment_likes cl ON c.id = cl.comment_id
		WHERE c.post_id = $2
		GROUP BY c.id, u.id
		ORDER BY c.created_at DESC
	`
	rows, err := pool.Query(ctx, query, viewerID, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Content, &c.CreatedAt,
			&c.Username, &c.FirstName, &c.LastName, &c.ProfileImage, &c.Likes, &c.UserLiked)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment inserts a comment and, if the commenter is not the post's
// author, records a notification for the author.
func CreateComment(ctx context.Context, pool *pgxpool.Pool, userID, postID int64, content string) (*models.Comment, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var authorID int64
	err = tx.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if err != nil {
		return nil, err
	}

	var c models.Comment
	err = tx.QueryRow(ctx,
		`INSERT INTO comments (user_id, post_id, content) VALUES ($1, $2, $3)
		 RETURNING id, user_id, post_id, content, created_at`,
		userID, postID, content).
		Scan(&c.ID, &c.UserID, &c.PostID, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`SELECT username, first_name, last_name, profile_image FROM users WHERE id = $1`, userID).
		Scan(&c.Username, &c.FirstName, &c.LastName, &c.ProfileImage)
	if err != nil {
		return nil, err
	}

	if authorID != userID {
		_, err = tx.Exec(ctx,
			`INSERT INTO notifications (from_user_id, to_user_id, post_id, comment_id, type)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID, authorID, postID, c.ID, models.NotificationTypeComment)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

func ToggleCommentLike(ctx context.Context, pool *pgxpool.Pool, userID, commentID int64) (liked bool, err error) {
	var one int
	err = pool.QueryRow(ctx, `SELECT 1 FROM comments WHERE id = $1`, commentID).Scan(&one)
	if err != nil {
		return false, err
	}

	cmd, err := pool.Exec(ctx, `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		_, err = pool.Exec(ctx, `INSERT INTO comment_likes (user_id, comment_id) VALUES ($1, $2)`, userID, commentID)
		if err != nil {
			return false, err
		}
		liked = true
	}
	return liked, nil
}

func DeleteComment(ctx context.Context, pool *pgxpool.Pool, userID, commentID int64) error {
	// Likes and notifications go with the comment via FK cascades.
	cmd, err := pool.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
