package comment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/domain/field"
)

const maxTextLength = 1000

// FieldGetter resolves the field a comment attaches to, applying the
// same blocked-content visibility rules as the field detail view.
type FieldGetter interface {
	Get(ctx context.Context, id uuid.UUID, viewerID uuid.UUID, viewerIsStaff bool) (*field.Field, error)
}

// Service handles comment business logic
type Service struct {
	repo   Repository
	fields FieldGetter
}

// NewService creates comment service
func NewService(repo Repository, fields FieldGetter) *Service {
	return &Service{repo: repo, fields: fields}
}

// Add attaches a comment to a field. The field must be visible to the
// author; commenting on a blocked field fails as not found.
func (s *Service) Add(ctx context.Context, fieldID, authorID uuid.UUID, req *AddCommentRequest) (*Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > maxTextLength {
		return nil, ErrTextTooLong
	}

	if _, err := s.fields.Get(ctx, fieldID, authorID, false); err != nil {
		if err == field.ErrNotFound {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	c := &Comment{
		ID:        uuid.New(),
		FieldID:   fieldID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByField returns a field's comments for the given viewer. Blocked
// comments are visible to staff only.
func (s *Service) ListByField(ctx context.Context, fieldID uuid.UUID, viewerID uuid.UUID, viewerIsStaff bool) ([]*CommentResponse, error) {
	if _, err := s.fields.Get(ctx, fieldID, viewerID, viewerIsStaff); err != nil {
		if err == field.ErrNotFound {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	comments, err := s.repo.ListByField(ctx, fieldID, viewerIsStaff)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*CommentResponse{}
	}
	return comments, nil
}

// ToggleLike flips the viewer's like on a comment
func (s *Service) ToggleLike(ctx context.Context, userID, commentID uuid.UUID) (liked bool, count int, err error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return false, 0, err
	}
	if c == nil || c.IsBlocked {
		return false, 0, ErrNotFound
	}

	if liked, err = s.repo.ToggleLike(ctx, userID, commentID); err != nil {
		return false, 0, err
	}
	count, err = s.repo.CountLikes(ctx, commentID)
	return liked, count, err
}
