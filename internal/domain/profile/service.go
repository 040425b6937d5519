package profile

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/domain/file"
	"github.com/algedu/algedu-api/internal/domain/user"
	"github.com/algedu/algedu-api/internal/pkg/imaging"
)

const minBirthYear = 1900

// Service handles profile business logic
type Service struct {
	users     user.Repository
	repo      Repository
	files     file.Repository
	processor *imaging.Processor
}

// NewService creates profile service
func NewService(users user.Repository, repo Repository, files file.Repository, processor *imaging.Processor) *Service {
	return &Service{users: users, repo: repo, files: files, processor: processor}
}

// GetOwn returns the caller's own profile
func (s *Service) GetOwn(ctx context.Context, userID uuid.UUID) (*OwnProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return NewOwnProfileResponse(u), nil
}

// GetByUsername returns a public profile. Deactivated accounts are hidden.
func (s *Service) GetByUsername(ctx context.Context, username string) (*ProfileResponse, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrNotFound
	}
	return NewProfileResponse(u), nil
}

// Update edits the caller's profile. Email must stay unique across
// other accounts; the birth year must be 1900 or later.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*OwnProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.users.ExistsByEmail(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	var birthDate sql.NullTime
	if req.BirthDate != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil || t.Year() < minBirthYear || t.After(time.Now()) {
			return nil, ErrInvalidBirthDate
		}
		birthDate = sql.NullTime{Time: t, Valid: true}
	}

	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.Email = email
	u.Bio = req.Bio
	u.Location = strings.TrimSpace(req.Location)
	u.BirthDate = birthDate

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return NewOwnProfileResponse(u), nil
}

// UploadAvatar normalizes the image and stores it as the user's avatar
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, name string) (*OwnProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	avatar, err := s.processor.Process(reader)
	if err != nil {
		return nil, ErrInvalidImage
	}

	f := &file.StoredFile{
		ID:          uuid.New(),
		Name:        name,
		ContentType: avatar.ContentType,
		Data:        avatar.Data,
		Size:        int64(avatar.Size),
		CreatedAt:   time.Now(),
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, err
	}
	if err := s.users.UpdateAvatar(ctx, userID, f.ID); err != nil {
		return nil, err
	}

	u.AvatarFileID = uuid.NullUUID{UUID: f.ID, Valid: true}
	return NewOwnProfileResponse(u), nil
}

// AddComment leaves a message on another user's profile
func (s *Service) AddComment(ctx context.Context, username string, authorID uuid.UUID, req *AddProfileCommentRequest) (*ProfileComment, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner == nil || !owner.IsActive {
		return nil, ErrNotFound
	}

	c := &ProfileComment{
		ID:            uuid.New(),
		ProfileUserID: owner.ID,
		AuthorID:      authorID,
		Text:          strings.TrimSpace(req.Text),
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns a profile's messages newest-first
func (s *Service) ListComments(ctx context.Context, username string) ([]*ProfileCommentResponse, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner == nil || !owner.IsActive {
		return nil, ErrNotFound
	}

	comments, err := s.repo.ListComments(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*ProfileCommentResponse{}
	}
	return comments, nil
}

// DeleteComment removes a profile message. The comment author, the
// profile owner and staff may delete.
func (s *Service) DeleteComment(ctx context.Context, commentID, callerID uuid.UUID, callerIsStaff bool) error {
	c, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if c.AuthorID != callerID && c.ProfileUserID != callerID && !callerIsStaff {
		return ErrNotAllowed
	}
	return s.repo.DeleteComment(ctx, commentID)
}
