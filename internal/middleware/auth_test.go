package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/pkg/jwt"
)

func newJWT() *jwt.Service {
	return jwt.NewService("test-secret", 15*time.Minute, time.Hour)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	called := false
	handler := Auth(newJWT())(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run without a token")
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	jwtService := newJWT()
	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, false, true)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	var gotUser uuid.UUID
	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != userID {
		t.Fatalf("expected user %s in context, got %s", userID, gotUser)
	}
}

func TestAuthRejectsDeactivatedAccount(t *testing.T) {
	jwtService := newJWT()
	token, err := jwtService.GenerateAccessToken(uuid.New(), false, false)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	called := false
	handler := Auth(jwtService)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run for a deactivated account")
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	var gotUser uuid.UUID
	handler := OptionalAuth(newJWT())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != uuid.Nil {
		t.Fatalf("expected no user in context, got %s", gotUser)
	}
}

func TestOptionalAuthAttachesClaims(t *testing.T) {
	jwtService := newJWT()
	userID := uuid.New()
	token, _ := jwtService.GenerateAccessToken(userID, true, true)

	var gotUser uuid.UUID
	var gotStaff bool
	handler := OptionalAuth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
		gotStaff = IsStaff(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotUser != userID || !gotStaff {
		t.Fatalf("expected claims in context, got user=%s staff=%v", gotUser, gotStaff)
	}
}

func TestRequireStaffBlocksRegularUsers(t *testing.T) {
	jwtService := newJWT()
	regular, _ := jwtService.GenerateAccessToken(uuid.New(), false, true)
	staff, _ := jwtService.GenerateAccessToken(uuid.New(), true, true)

	called := false
	handler := Auth(jwtService)(RequireStaff()(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+regular)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden || called {
		t.Fatalf("regular user: expected 403 and no call, got %d called=%v", rec.Code, called)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+staff)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("staff: expected 200 and call, got %d called=%v", rec.Code, called)
	}
}
