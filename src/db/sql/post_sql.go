package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/models"
)

// viewerID is 0 for anonymous requests; no user row has id 0, so the liked
// checks come back false.

const postSelect = `
	SELECT p.id, p.user_id, p.title, p.content, p.image, p.created_at,
		u.username, u.first_name, u.last_name, u.profile_image,
		COUNT(DISTINCT pl.user_id),
		EXISTS(SELECT 1 FROM post_likes WHERE post_id = p.id AND user_id = $1)
	FROM posts p
	JOIN users u ON p.user_id = u.id
	LEFT JOIN post_likes pl ON p.id = pl.post_id
`

func scanPostRows(rows pgx.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Image, &p.CreatedAt,
			&p.Username, &p.FirstName, &p.LastName, &p.ProfileImage, &p.Likes, &p.UserLiked)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func attachComments(ctx context.Context, pool *pgxpool.Pool, posts []models.Post) error {
	for i := range posts {
		comments, err := postComments(ctx, pool, posts[i].ID)
		if err != nil {
			return err
		}
		posts[i].Comments = comments
	}
	return nil
}

func GetPosts(ctx context.Context, pool *pgxpool.Pool, viewerID int64) ([]models.Post, error) {
	query := postSelect + ` GROUP BY p.id, u.id ORDER BY p.created_at DESC`
	rows, err := pool.Query(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, err
	}
	if err := attachComments(ctx, pool, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func GetPost(ctx context.Context, pool *pgxpool.Pool, postID, viewerID int64) (*models.Post, error) {
	query := postSelect + ` WHERE p.id = $2 GROUP BY p.id, u.id`
	rows, err := pool.Query(ctx, query, viewerID, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}
	if err := attachComments(ctx, pool, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func GetUserPosts(ctx context.Context, pool *pgxpool.Pool, username string, viewerID int64) ([]models.Post, error) {
	var userID int64
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, username).Scan(&userID)
	if err != nil {
		return nil, err
	}

	query := postSelect + ` WHERE p.user_id = $2 GROUP BY p.id, u.id ORDER BY p.created_at DESC`
	rows, err := pool.Query(ctx, query, viewerID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, err
	}
	if err := attachComments(ctx, pool, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func CreatePost(ctx context.Context, pool *pgxpool.Pool, userID int64, title *string, content, image string) (*models.Post, error) {
	query := `
		INSERT INTO posts (user_id, title, content, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, content, image, created_at
	`
	var p models.Post
	err := pool.QueryRow(ctx, query, userID, title, content, image).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Image, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = pool.QueryRow(ctx,
		`SELECT username, first_name, last_name, profile_image FROM users WHERE id = $1`, userID).
		Scan(&p.Username, &p.FirstName, &p.LastName, &p.ProfileImage)
	if err != nil {
		return nil, err
	}
	p.Comments = []models.Comment{}
	return &p, nil
}

// TogglePostLike likes the post when no like exists, unlikes otherwise.
// Liking someone else's post records a notification for its author.
func TogglePostLike(ctx context.Context, pool *pgxpool.Pool, userID, postID int64) (liked bool, err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var authorID int64
	err = tx.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if err != nil {
		return false, err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, `INSERT INTO post_likes (user_id, post_id) VALUES ($1, $2)`, userID, postID)
		if err != nil {
			return false, err
		}
		if authorID != userID {
			_, err = tx.Exec(ctx,
				`INSERT INTO notifications (from_user_id, to_user_id, post_id, type) VALUES ($1, $2, $3, $4)`,
				userID, authorID, postID, models.NotificationTypeLike)
			if err != nil {
				return false, err
			}
		}
		liked = true
	}
	return liked, tx.Commit(ctx)
}

func DeletePost(ctx context.Context, pool *pgxpool.Pool, userID, postID int64) error {
	// Comments, likes, and notifications go with the post via FK cascades.
	cmd, err := pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
