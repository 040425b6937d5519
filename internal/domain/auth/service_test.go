package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/domain/user"
	"github.com/algedu/algedu-api/internal/pkg/jwt"
	"github.com/algedu/algedu-api/internal/pkg/password"
)

// stubUserRepo is an in-memory user repository for tests
type stubUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, u *user.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *stubUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, fileID uuid.UUID) error {
	return nil
}

func (s *stubUserRepo) UpdateActive(ctx context.Context, id uuid.UUID, active bool) error {
	u, ok := s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *stubUserRepo) {
	repo := newStubUserRepo()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	return NewService(repo, jwtService, nil), repo
}

func registerRequest(username string) *RegisterRequest {
	return &RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _ := newTestService()

	req := registerRequest("alice")
	req.PasswordConfirm = "different"
	if _, _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegisterUsernameTaken(t *testing.T) {
	svc, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), registerRequest("bob")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), registerRequest("bob")); !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterEmailNormalized(t *testing.T) {
	svc, repo := newTestService()

	req := registerRequest("carol")
	req.Email = "  Carol@Example.COM "
	u, tokens, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.Email != "carol@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	other := registerRequest("dave")
	other.Email = "CAROL@example.com"
	if _, _, err := svc.Register(context.Background(), other); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if !repo.users[u.ID].IsActive {
		t.Fatal("new accounts should start active")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), registerRequest("erin")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), &LoginRequest{Username: "erin", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "pass1234"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, repo := newTestService()

	u, _, err := svc.Register(context.Background(), registerRequest("frank"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[u.ID].IsActive = false

	_, _, err = svc.Login(context.Background(), &LoginRequest{Username: "frank", Password: "pass1234"})
	if !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, _ := newTestService()

	_, tokens, err := svc.Register(context.Background(), registerRequest("gina"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Fatal("expected a fresh token pair")
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshDeactivatedAccount(t *testing.T) {
	svc, repo := newTestService()

	u, tokens, err := svc.Register(context.Background(), registerRequest("hank"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[u.ID].IsActive = false

	if _, err := svc.Refresh(context.Background(), tokens.RefreshToken); !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := password.Hash("secret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if strings.Contains(hash, "secret-pass") {
		t.Fatal("hash must not contain the plaintext")
	}
	if !password.Verify("secret-pass", hash) {
		t.Fatal("verify should accept the original password")
	}
	if password.Verify("other", hash) {
		t.Fatal("verify should reject a wrong password")
	}
}
