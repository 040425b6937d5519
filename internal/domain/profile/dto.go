package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/domain/user"
)

// UpdateProfileRequest represents profile update payload. BirthDate
// uses the YYYY-MM-DD form the frontend date picker emits.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Bio       string `json:"bio" validate:"max=1000"`
	Location  string `json:"location" validate:"max=255"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// AddProfileCommentRequest represents profile comment payload
type AddProfileCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// ProfileResponse is the public profile view
type ProfileResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	AvatarFileID *uuid.UUID `json:"avatar_file_id,omitempty"`
	IsStaff      bool       `json:"is_staff"`
	CreatedAt    time.Time  `json:"created_at"`
}

// OwnProfileResponse is the authenticated user's own view; it adds the email
type OwnProfileResponse struct {
	ProfileResponse
	Email string `json:"email"`
}

// NewProfileResponse builds the public view of a user
func NewProfileResponse(u *user.User) *ProfileResponse {
	resp := &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Location:  u.Location,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
	if u.BirthDate.Valid {
		resp.BirthDate = &u.BirthDate.Time
	}
	if u.AvatarFileID.Valid {
		id := u.AvatarFileID.UUID
		resp.AvatarFileID = &id
	}
	return resp
}

// NewOwnProfileResponse builds the owner's view of their profile
func NewOwnProfileResponse(u *user.User) *OwnProfileResponse {
	return &OwnProfileResponse{
		ProfileResponse: *NewProfileResponse(u),
		Email:           u.Email,
	}
}
