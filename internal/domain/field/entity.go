package field

import (
	"time"

	"github.com/google/uuid"
)

// Field is a user-created grid map
type Field struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Cols        int           `db:"cols" json:"cols"`
	Rows        int           `db:"rows" json:"rows"`
	IsBlocked   bool          `db:"is_blocked" json:"is_blocked"`
	FileID      uuid.NullUUID `db:"file_id" json:"file_id,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// Wall is a rectangular blocked area inside a field's grid
type Wall struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FieldID   uuid.UUID `db:"field_id" json:"field_id"`
	X         int       `db:"x" json:"x"`
	Y         int       `db:"y" json:"y"`
	Width     int       `db:"width" json:"width"`
	Height    int       `db:"height" json:"height"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
}

// Fits reports whether the wall lies entirely inside the grid
func (w *Wall) Fits(cols, rows int) bool {
	return w.X >= 0 && w.Y >= 0 && w.X+w.Width <= cols && w.Y+w.Height <= rows
}

// Cell is a single grid coordinate of a field, created lazily on the
// first detail view
type Cell struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FieldID   uuid.UUID `db:"field_id" json:"field_id"`
	X         int       `db:"x" json:"x"`
	Y         int       `db:"y" json:"y"`
	IsBlocked bool      `db:"is_blocked" json:"is_blocked"`
}
