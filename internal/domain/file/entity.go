package file

import (
	"time"

	"github.com/google/uuid"
)

// StoredFile is a file kept as a relational row, byte payload included.
// Field attachments and avatars both live here.
type StoredFile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	ContentType string    `db:"content_type" json:"content_type"`
	Data        []byte    `db:"data" json:"-"`
	Size        int64     `db:"size" json:"size"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
