package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines profile comment data access interface
type Repository interface {
	CreateComment(ctx context.Context, c *ProfileComment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*ProfileComment, error)
	ListComments(ctx context.Context, profileUserID uuid.UUID) ([]*ProfileCommentResponse, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateComment(ctx context.Context, c *ProfileComment) error {
	query := `
		INSERT INTO profile_comments (id, profile_user_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProfileUserID,
		c.AuthorID,
		c.Text,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("profile repository create comment: %w", err)
	}
	return nil
}

func (r *repository) GetCommentByID(ctx context.Context, id uuid.UUID) (*ProfileComment, error) {
	var c ProfileComment
	err := r.db.GetContext(ctx, &c, `SELECT * FROM profile_comments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListComments(ctx context.Context, profileUserID uuid.UUID) ([]*ProfileCommentResponse, error) {
	query := `
		SELECT c.id, c.profile_user_id, c.author_id, c.text, c.created_at,
		       u.username AS author_username
		FROM profile_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.profile_user_id = $1
		ORDER BY c.created_at DESC
	`
	var comments []*ProfileCommentResponse
	err := r.db.SelectContext(ctx, &comments, query, profileUserID)
	return comments, err
}

func (r *repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profile_comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCommentNotFound
	}
	return nil
}
