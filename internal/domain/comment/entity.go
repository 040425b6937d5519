package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is text attached to exactly one field
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FieldID   uuid.UUID `db:"field_id" json:"field_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Text      string    `db:"text" json:"text"`
	IsBlocked bool      `db:"is_blocked" json:"is_blocked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentResponse is a comment with viewer-dependent data attached
type CommentResponse struct {
	*Comment
	AuthorUsername string `db:"author_username" json:"author_username"`
	LikesCount     int    `db:"likes_count" json:"likes_count"`
	IsLiked        bool   `json:"is_liked"`
}
