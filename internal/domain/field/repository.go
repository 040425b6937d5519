package field

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines field data access interface
type Repository interface {
	Create(ctx context.Context, f *Field) error
	GetByID(ctx context.Context, id uuid.UUID) (*Field, error)
	Update(ctx context.Context, f *Field) error
	List(ctx context.Context, limit, offset int) ([]*Field, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*Field, error)
	ListLiked(ctx context.Context, userID uuid.UUID) ([]*Field, error)
	ListFavorited(ctx context.Context, userID uuid.UUID) ([]*Field, error)
	Search(ctx context.Context, query string) ([]*SearchResult, error)

	// Likes and favorites
	ToggleLike(ctx context.Context, userID, fieldID uuid.UUID) (liked bool, err error)
	ToggleFavorite(ctx context.Context, userID, fieldID uuid.UUID) (favorited bool, err error)
	CountLikes(ctx context.Context, fieldID uuid.UUID) (int, error)
	CountFavorites(ctx context.Context, fieldID uuid.UUID) (int, error)
	IsLiked(ctx context.Context, userID, fieldID uuid.UUID) (bool, error)
	IsFavorited(ctx context.Context, userID, fieldID uuid.UUID) (bool, error)

	// Walls
	AddWall(ctx context.Context, w *Wall) error
	GetWall(ctx context.Context, id uuid.UUID) (*Wall, error)
	DeleteWall(ctx context.Context, id uuid.UUID) error
	ListWalls(ctx context.Context, fieldID uuid.UUID) ([]*Wall, error)

	// Cells
	HasCells(ctx context.Context, fieldID uuid.UUID) (bool, error)
	CreateCells(ctx context.Context, cells []*Cell) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new field repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Field) error {
	query := `
		INSERT INTO fields (id, user_id, title, description, cols, rows, is_blocked, file_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.UserID,
		f.Title,
		f.Description,
		f.Cols,
		f.Rows,
		f.IsBlocked,
		f.FileID,
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("field repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Field, error) {
	query := `SELECT * FROM fields WHERE id = $1`
	var f Field
	err := r.db.GetContext(ctx, &f, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *repository) Update(ctx context.Context, f *Field) error {
	query := `
		UPDATE fields
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, f.Title, f.Description, f.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns non-blocked fields, newest first
func (r *repository) List(ctx context.Context, limit, offset int) ([]*Field, error) {
	query := `
		SELECT * FROM fields
		WHERE is_blocked = false
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var fields []*Field
	err := r.db.SelectContext(ctx, &fields, query, limit, offset)
	return fields, err
}

func (r *repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*Field, error) {
	query := `SELECT * FROM fields WHERE user_id = $1 ORDER BY created_at DESC`
	var fields []*Field
	err := r.db.SelectContext(ctx, &fields, query, userID)
	return fields, err
}

func (r *repository) ListLiked(ctx context.Context, userID uuid.UUID) ([]*Field, error) {
	query := `
		SELECT f.* FROM fields f
		JOIN field_likes l ON l.field_id = f.id
		WHERE l.user_id = $1 AND f.is_blocked = false
		ORDER BY l.created_at DESC
	`
	var fields []*Field
	err := r.db.SelectContext(ctx, &fields, query, userID)
	return fields, err
}

func (r *repository) ListFavorited(ctx context.Context, userID uuid.UUID) ([]*Field, error) {
	query := `
		SELECT f.* FROM fields f
		JOIN field_favorites fav ON fav.field_id = f.id
		WHERE fav.user_id = $1 AND f.is_blocked = false
		ORDER BY fav.created_at DESC
	`
	var fields []*Field
	err := r.db.SelectContext(ctx, &fields, query, userID)
	return fields, err
}

// Search matches title or description case-insensitively; blocked fields
// are never surfaced
func (r *repository) Search(ctx context.Context, query string) ([]*SearchResult, error) {
	q := `
		SELECT id, title, description, created_at FROM fields
		WHERE is_blocked = false
		  AND (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT 50
	`
	var results []*SearchResult
	err := r.db.SelectContext(ctx, &results, q, query)
	return results, err
}

// Likes and favorites

func (r *repository) ToggleLike(ctx context.Context, userID, fieldID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "field_likes", userID, fieldID)
}

func (r *repository) ToggleFavorite(ctx context.Context, userID, fieldID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "field_favorites", userID, fieldID)
}

// toggle removes the (user, field) row if present, inserts it otherwise.
// Returns whether the row exists after the call.
func (r *repository) toggle(ctx context.Context, table string, userID, fieldID uuid.UUID) (bool, error) {
	del := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND field_id = $2`, table)
	result, err := r.db.ExecContext(ctx, del, userID, fieldID)
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

	ins := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, field_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, field_id) DO NOTHING
	`, table)
	if _, err := r.db.ExecContext(ctx, ins, uuid.New(), userID, fieldID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) CountLikes(ctx context.Context, fieldID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM field_likes WHERE field_id = $1`, fieldID)
	return count, err
}

func (r *repository) CountFavorites(ctx context.Context, fieldID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM field_favorites WHERE field_id = $1`, fieldID)
	return count, err
}

func (r *repository) IsLiked(ctx context.Context, userID, fieldID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM field_likes WHERE user_id = $1 AND field_id = $2)`, userID, fieldID)
	return exists, err
}

func (r *repository) IsFavorited(ctx context.Context, userID, fieldID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM field_favorites WHERE user_id = $1 AND field_id = $2)`, userID, fieldID)
	return exists, err
}

// Walls

func (r *repository) AddWall(ctx context.Context, w *Wall) error {
	query := `
		INSERT INTO walls (id, field_id, x, y, width, height, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, w.ID, w.FieldID, w.X, w.Y, w.Width, w.Height, w.CreatedBy)
	return err
}

func (r *repository) GetWall(ctx context.Context, id uuid.UUID) (*Wall, error) {
	var w Wall
	err := r.db.GetContext(ctx, &w, `SELECT * FROM walls WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *repository) DeleteWall(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM walls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWallNotFound
	}
	return nil
}

func (r *repository) ListWalls(ctx context.Context, fieldID uuid.UUID) ([]*Wall, error) {
	query := `SELECT * FROM walls WHERE field_id = $1 ORDER BY y, x`
	var walls []*Wall
	err := r.db.SelectContext(ctx, &walls, query, fieldID)
	return walls, err
}

// Cells

func (r *repository) HasCells(ctx context.Context, fieldID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM cells WHERE field_id = $1)`, fieldID)
	return exists, err
}

func (r *repository) CreateCells(ctx context.Context, cells []*Cell) error {
	if len(cells) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO cells (id, field_id, x, y, is_blocked) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (field_id, x, y) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cells {
		if _, err := stmt.ExecContext(ctx, c.ID, c.FieldID, c.X, c.Y, c.IsBlocked); err != nil {
			return err
		}
	}
	return tx.Commit()
}
