package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/models"
)

func GetNotifications(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Notification, error) {
	query := `
		SELECT n.id, n.type, n.created_at,
			fu.username, fu.first_name, fu.last_name, fu.profile_image,
			p.id, p.title, p.content, p.image,
			c.id, c.content
		FROM notifications n
		JOIN users fu ON n.from_user_id = fu.id
		LEFT JOIN posts p ON n.post_id = p.id
		LEFT JOIN comments c ON n.comment_id = c.id
		WHERE n.to_user_id = $1
		ORDER BY n.created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var postID, commentID *int64
		var postTitle *string
		var postContent, postImage, commentContent *string
		err := rows.Scan(&n.ID, &n.Type, &n.CreatedAt,
			&n.From.Username, &n.From.FirstName, &n.From.LastName, &n.From.ProfileImage,
			&postID, &postTitle, &postContent, &postImage,
			&commentID, &commentContent)
		if err != nil {
			return nil, err
		}
		if postID != nil {
			n.Post = &models.NotificationPost{Title: postTitle}
			if postContent != nil {
				n.Post.Content = *postContent
			}
			if postImage != nil {
				n.Post.Image = *postImage
			}
		}
		if commentID != nil && commentContent != nil {
			n.Comment = &models.NotificationComment{Content: *commentContent}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func DeleteNotification(ctx context.Context, pool *pgxpool.Pool, userID, notificationID int64) error {
	cmd, err := pool.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND to_user_id = $2`, notificationID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
