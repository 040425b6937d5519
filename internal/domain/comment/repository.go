package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines comment data access interface
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByField(ctx context.Context, fieldID uuid.UUID, includeBlocked bool) ([]*CommentResponse, error)
	ToggleLike(ctx context.Context, userID, commentID uuid.UUID) (liked bool, err error)
	CountLikes(ctx context.Context, commentID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new comment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, field_id, author_id, text, is_blocked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.FieldID,
		c.AuthorID,
		c.Text,
		c.IsBlocked,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("comment repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	query := `SELECT * FROM comments WHERE id = $1`
	var c Comment
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListByField returns a field's comments newest-first with author names
// and like counts joined in. Blocked comments are included only for
// staff viewers.
func (r *repository) ListByField(ctx context.Context, fieldID uuid.UUID, includeBlocked bool) ([]*CommentResponse, error) {
	query := `
		SELECT c.id, c.field_id, c.author_id, c.text, c.is_blocked, c.created_at,
		       u.username AS author_username,
		       COUNT(l.id) AS likes_count
		FROM comments c
		JOIN users u ON u.id = c.author_id
		LEFT JOIN comment_likes l ON l.comment_id = c.id
		WHERE c.field_id = $1 AND (c.is_blocked = false OR $2)
		GROUP BY c.id, u.username
		ORDER BY c.created_at DESC
	`
	var comments []*CommentResponse
	err := r.db.SelectContext(ctx, &comments, query, fieldID, includeBlocked)
	return comments, err
}

func (r *repository) ToggleLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`, userID, commentID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO comment_likes (id, user_id, comment_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, comment_id) DO NOTHING
	`, uuid.New(), userID, commentID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) CountLikes(ctx context.Context, commentID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID)
	return count, err
}
