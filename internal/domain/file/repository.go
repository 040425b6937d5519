package file

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when the file does not exist
var ErrNotFound = errors.New("file not found")

// Repository defines file data access interface
type Repository interface {
	Create(ctx context.Context, f *StoredFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*StoredFile, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new file repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *StoredFile) error {
	query := `
		INSERT INTO files (id, name, content_type, data, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.ContentType,
		f.Data,
		f.Size,
		f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("file repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*StoredFile, error) {
	query := `SELECT * FROM files WHERE id = $1`
	var f StoredFile
	err := r.db.GetContext(ctx, &f, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
