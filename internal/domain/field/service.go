package field

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultGridSize = 10
	maxGridSize     = 100
)

// Service handles field business logic
type Service struct {
	repo Repository
}

// NewService creates field service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a field owned by userID
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateFieldRequest) (*Field, error) {
	cols := req.Cols
	if cols == 0 {
		cols = defaultGridSize
	}
	rows := req.Rows
	if rows == 0 {
		rows = defaultGridSize
	}
	if cols < 1 || cols > maxGridSize || rows < 1 || rows > maxGridSize {
		return nil, ErrInvalidGridSize
	}

	now := time.Now()
	f := &Field{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Cols:        cols,
		Rows:        rows,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.FileID != nil {
		f.FileID = uuid.NullUUID{UUID: *req.FileID, Valid: true}
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get returns a field for the given viewer. Blocked fields are hidden
// from everyone except staff and the owner.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewerID uuid.UUID, viewerIsStaff bool) (*Field, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	if f.IsBlocked && !viewerIsStaff && f.UserID != viewerID {
		return nil, ErrNotFound
	}
	return f, nil
}

// GetWithViewerData returns the detail view, lazily creating the grid cells
func (s *Service) GetWithViewerData(ctx context.Context, id uuid.UUID, viewerID uuid.UUID, viewerIsStaff bool) (*FieldResponse, error) {
	f, err := s.Get(ctx, id, viewerID, viewerIsStaff)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCells(ctx, f); err != nil {
		return nil, err
	}

	resp := &FieldResponse{Field: f}
	if resp.LikesCount, err = s.repo.CountLikes(ctx, f.ID); err != nil {
		return nil, err
	}
	if resp.FavoritesCount, err = s.repo.CountFavorites(ctx, f.ID); err != nil {
		return nil, err
	}
	if viewerID != uuid.Nil {
		if resp.IsLiked, err = s.repo.IsLiked(ctx, viewerID, f.ID); err != nil {
			return nil, err
		}
		if resp.IsFavorited, err = s.repo.IsFavorited(ctx, viewerID, f.ID); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ensureCells creates the full cell grid on first access
func (s *Service) ensureCells(ctx context.Context, f *Field) error {
	has, err := s.repo.HasCells(ctx, f.ID)
	if err != nil || has {
		return err
	}
	cells := make([]*Cell, 0, f.Cols*f.Rows)
	for x := 0; x < f.Cols; x++ {
		for y := 0; y < f.Rows; y++ {
			cells = append(cells, &Cell{ID: uuid.New(), FieldID: f.ID, X: x, Y: y})
		}
	}
	return s.repo.CreateCells(ctx, cells)
}

// Update edits title/description; only the owner may edit
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateFieldRequest) (*Field, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	if f.UserID != userID {
		return nil, ErrNotOwner
	}

	f.Title = strings.TrimSpace(req.Title)
	f.Description = req.Description
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the public field listing (blocked fields excluded)
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Field, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

// Search returns public fields matching the query substring
func (s *Service) Search(ctx context.Context, query string) ([]*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*SearchResult{}, nil
	}
	return s.repo.Search(ctx, query)
}

// ToggleLike flips the viewer's like on a field
func (s *Service) ToggleLike(ctx context.Context, userID, fieldID uuid.UUID) (liked bool, count int, err error) {
	if _, err = s.Get(ctx, fieldID, userID, false); err != nil {
		return false, 0, err
	}
	if liked, err = s.repo.ToggleLike(ctx, userID, fieldID); err != nil {
		return false, 0, err
	}
	count, err = s.repo.CountLikes(ctx, fieldID)
	return liked, count, err
}

// ToggleFavorite flips the viewer's favorite on a field
func (s *Service) ToggleFavorite(ctx context.Context, userID, fieldID uuid.UUID) (bool, error) {
	if _, err := s.Get(ctx, fieldID, userID, false); err != nil {
		return false, err
	}
	return s.repo.ToggleFavorite(ctx, userID, fieldID)
}

// AddWall places a wall; it must fit inside the grid
func (s *Service) AddWall(ctx context.Context, userID uuid.UUID, req *AddWallRequest) (*Wall, error) {
	f, err := s.Get(ctx, req.FieldID, userID, false)
	if err != nil {
		return nil, err
	}

	w := &Wall{
		ID:        uuid.New(),
		FieldID:   f.ID,
		X:         req.X,
		Y:         req.Y,
		Width:     req.Width,
		Height:    req.Height,
		CreatedBy: userID,
	}
	if w.Width == 0 {
		w.Width = 1
	}
	if w.Height == 0 {
		w.Height = 1
	}
	if !w.Fits(f.Cols, f.Rows) {
		return nil, ErrWallOutOfBounds
	}

	if err := s.repo.AddWall(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// RemoveWall deletes a wall; only its creator or staff may remove it
func (s *Service) RemoveWall(ctx context.Context, wallID, userID uuid.UUID, isStaff bool) error {
	w, err := s.repo.GetWall(ctx, wallID)
	if err != nil {
		return err
	}
	if w == nil {
		return ErrWallNotFound
	}
	if w.CreatedBy != userID && !isStaff {
		return ErrNotOwner
	}
	return s.repo.DeleteWall(ctx, wallID)
}

// State returns the grid geometry for rendering
func (s *Service) State(ctx context.Context, fieldID uuid.UUID, viewerID uuid.UUID, viewerIsStaff bool) (*FieldStateResponse, error) {
	f, err := s.Get(ctx, fieldID, viewerID, viewerIsStaff)
	if err != nil {
		return nil, err
	}
	walls, err := s.repo.ListWalls(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	if walls == nil {
		walls = []*Wall{}
	}
	return &FieldStateResponse{Cols: f.Cols, Rows: f.Rows, Walls: walls}, nil
}

// ProfileFields returns field listings for the profile page tabs
func (s *Service) ProfileFields(ctx context.Context, userID uuid.UUID, kind string) ([]*Field, error) {
	switch kind {
	case "liked":
		return s.repo.ListLiked(ctx, userID)
	case "favorites":
		return s.repo.ListFavorited(ctx, userID)
	default:
		return s.repo.ListByOwner(ctx, userID)
	}
}
