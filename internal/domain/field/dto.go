package field

import (
	"time"

	"github.com/google/uuid"
)

// CreateFieldRequest represents field creation payload
type CreateFieldRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"required"`
	Cols        int        `json:"cols" validate:"omitempty,gte=1,lte=100"`
	Rows        int        `json:"rows" validate:"omitempty,gte=1,lte=100"`
	FileID      *uuid.UUID `json:"file_id,omitempty"`
}

// UpdateFieldRequest represents field edit payload (owner only)
type UpdateFieldRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// AddWallRequest represents wall placement payload
type AddWallRequest struct {
	FieldID uuid.UUID `json:"field_id" validate:"required"`
	X       int       `json:"x" validate:"gte=0"`
	Y       int       `json:"y" validate:"gte=0"`
	Width   int       `json:"width" validate:"omitempty,gte=1"`
	Height  int       `json:"height" validate:"omitempty,gte=1"`
}

// FieldResponse is a field with viewer-dependent data attached
type FieldResponse struct {
	*Field
	LikesCount     int  `json:"likes_count"`
	FavoritesCount int  `json:"favorites_count"`
	IsLiked        bool `json:"is_liked"`
	IsFavorited    bool `json:"is_favorited"`
}

// FieldStateResponse is the grid geometry used by the map renderer
type FieldStateResponse struct {
	Cols  int     `json:"cols"`
	Rows  int     `json:"rows"`
	Walls []*Wall `json:"walls"`
}

// SearchResult is a compact match for the search box
type SearchResult struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
