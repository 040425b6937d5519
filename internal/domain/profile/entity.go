package profile

import (
	"time"

	"github.com/google/uuid"
)

// ProfileComment is a message left on a user's profile page
type ProfileComment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ProfileUserID uuid.UUID `db:"profile_user_id" json:"profile_user_id"`
	AuthorID      uuid.UUID `db:"author_id" json:"author_id"`
	Text          string    `db:"text" json:"text"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ProfileCommentResponse is a profile comment with the author name joined in
type ProfileCommentResponse struct {
	*ProfileComment
	AuthorUsername string `db:"author_username" json:"author_username"`
}
