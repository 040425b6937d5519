package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestEngineBlockUnknownKind(t *testing.T) {
	engine := NewEngine(newStubRepo())

	if err := engine.Block(context.Background(), ContentKind("page"), uuid.New()); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestEngineUnblockUserUnsupported(t *testing.T) {
	repo := newStubRepo()
	engine := NewEngine(repo)
	userID := uuid.New()
	repo.users[userID] = &stubUser{isActive: false}

	if err := engine.Unblock(context.Background(), KindUser, userID); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
	if repo.users[userID].isActive {
		t.Fatal("unsupported unblock must not reactivate the account")
	}
}

func TestEngineBlockIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	engine := NewEngine(repo)
	fieldID := seedField(repo, uuid.New())

	for i := 0; i < 3; i++ {
		if err := engine.Block(context.Background(), KindField, fieldID); err != nil {
			t.Fatalf("block %d failed: %v", i, err)
		}
	}
	if !repo.fields[fieldID].isBlocked {
		t.Fatal("field should be blocked")
	}
}

func TestSafeBlockReportsFailure(t *testing.T) {
	repo := newStubRepo()
	repo.failBlocks = true
	engine := NewEngine(repo)

	ok, err := engine.SafeBlock(context.Background(), KindField, uuid.New())
	if ok {
		t.Fatal("expected ok=false on storage failure")
	}
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected the storage error back, got %v", err)
	}
}

func TestSafeBanReportsFailure(t *testing.T) {
	repo := newStubRepo()
	repo.failBlocks = true
	engine := NewEngine(repo)

	ok, err := engine.SafeBan(context.Background(), uuid.New())
	if ok || err == nil {
		t.Fatalf("expected failure, got ok=%v err=%v", ok, err)
	}
}

func TestSafeUnblockSucceeds(t *testing.T) {
	repo := newStubRepo()
	engine := NewEngine(repo)
	commentID := seedComment(repo, uuid.New(), uuid.New())
	repo.comments[commentID].isBlocked = true

	ok, err := engine.SafeUnblock(context.Background(), KindComment, commentID)
	if !ok || err != nil {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
	if repo.comments[commentID].isBlocked {
		t.Fatal("comment should be unblocked")
	}
}
