package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/algedu/algedu-api/internal/pkg/logger"
)

// Engine applies block, unblock and ban transitions. Dispatch is a
// switch over the closed ContentKind set; every transition is
// idempotent at the database level.
type Engine struct {
	repo Repository
}

// NewEngine creates block engine
func NewEngine(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// Block hides content of the given kind. Blocking a field also blocks
// its comments; blocking a user is a ban.
func (e *Engine) Block(ctx context.Context, kind ContentKind, id uuid.UUID) error {
	switch kind {
	case KindField:
		return e.repo.BlockField(ctx, id)
	case KindComment:
		return e.repo.BlockComment(ctx, id)
	case KindUser:
		return e.repo.BanUser(ctx, id)
	default:
		return ErrUnsupportedKind
	}
}

// Unblock reverses a block for fields and comments. A field unblock
// does not touch its comments, and users have no generic unblock path.
func (e *Engine) Unblock(ctx context.Context, kind ContentKind, id uuid.UUID) error {
	switch kind {
	case KindField:
		return e.repo.UnblockField(ctx, id)
	case KindComment:
		return e.repo.UnblockComment(ctx, id)
	default:
		return ErrUnsupportedKind
	}
}

// SafeBlock blocks content, logging persistence failures instead of
// letting them escape the moderation flow. The error is still returned
// so callers can report it.
func (e *Engine) SafeBlock(ctx context.Context, kind ContentKind, id uuid.UUID) (bool, error) {
	if err := e.Block(ctx, kind, id); err != nil {
		logger.LogError(ctx, err, "failed to block content",
			"kind", string(kind), "id", id.String())
		return false, err
	}
	return true, nil
}

// SafeUnblock unblocks content with the same failure handling as SafeBlock
func (e *Engine) SafeUnblock(ctx context.Context, kind ContentKind, id uuid.UUID) (bool, error) {
	if err := e.Unblock(ctx, kind, id); err != nil {
		logger.LogError(ctx, err, "failed to unblock content",
			"kind", string(kind), "id", id.String())
		return false, err
	}
	return true, nil
}

// SafeBan deactivates a user and blocks their content
func (e *Engine) SafeBan(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := e.Block(ctx, KindUser, id); err != nil {
		logger.LogError(ctx, err, "failed to ban user", "id", id.String())
		return false, err
	}
	return true, nil
}
