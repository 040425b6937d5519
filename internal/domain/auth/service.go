package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/algedu/algedu-api/internal/domain/user"
	"github.com/algedu/algedu-api/internal/pkg/jwt"
	"github.com/algedu/algedu-api/internal/pkg/password"
)

// Service handles registration and authentication
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, redisClient *redis.Client) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redisClient,
	}
}

// Register creates a new account and returns it with a token pair
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, *TokenResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, nil, ErrPasswordMismatch
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, user.ErrUsernameTaken
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email, uuid.Nil)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, user.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Login authenticates by username and returns a token pair
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*user.User, *TokenResponse, error) {
	u, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, nil, ErrAccountDeactivated
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	ok, err := s.checkRefreshToken(ctx, claims.ID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return nil, ErrAccountDeactivated
	}

	// Rotate: old token is revoked before the new pair is issued
	if err := s.revokeRefreshToken(ctx, claims.ID); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, u)
}

// Logout revokes the presented refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.revokeRefreshToken(ctx, claims.ID)
}

// Me returns the account for the given id
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*TokenResponse, error) {
	access, err := s.jwtService.GenerateAccessToken(u.ID, u.IsStaff, u.IsActive)
	if err != nil {
		return nil, err
	}
	refresh, jti, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, jti, u.ID); err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

// Redis helpers (handle nil redis gracefully)

func (s *Service) storeRefreshToken(ctx context.Context, jti string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, "refresh:"+jti, userID.String(), s.jwtService.GetRefreshTTL()).Err()
}

func (s *Service) checkRefreshToken(ctx context.Context, jti string, userID uuid.UUID) (bool, error) {
	if s.redis == nil {
		return true, nil
	}
	val, err := s.redis.Get(ctx, "refresh:"+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == userID.String(), nil
}

func (s *Service) revokeRefreshToken(ctx context.Context, jti string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, "refresh:"+jti).Err()
}

// NewUserResponse maps an account to its public view
func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
