package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines moderation data access interface
type Repository interface {
	// Report registry
	CreateReport(ctx context.Context, report *Report) error
	GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListPending(ctx context.Context, kind ContentKind) ([]*ReportResponse, error)
	HasOpenReport(ctx context.Context, reporterID uuid.UUID, kind ContentKind, targetID uuid.UUID) (bool, error)
	ResolvePending(ctx context.Context, id uuid.UUID, status string) (bool, error)

	// Block/unblock primitives
	BlockField(ctx context.Context, id uuid.UUID) error
	UnblockField(ctx context.Context, id uuid.UUID) error
	BlockComment(ctx context.Context, id uuid.UUID) error
	UnblockComment(ctx context.Context, id uuid.UUID) error
	BanUser(ctx context.Context, id uuid.UUID) error

	// Target lookups
	TargetExists(ctx context.Context, kind ContentKind, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Panel listings
	ListBlockedFields(ctx context.Context, limit int) ([]*BlockedField, error)
	ListBlockedComments(ctx context.Context, limit int) ([]*BlockedComment, error)
}

// ErrDuplicateReport surfaces the partial unique index on open reports.
// The service maps it to the duplicate_open_report validation error.
var ErrDuplicateReport = errors.New("duplicate open report")

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new moderation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReport(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, target_kind, target_id, reason,
		                     description, status, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ReporterID,
		report.TargetKind,
		report.TargetID,
		report.Reason,
		report.Description,
		report.Status,
		report.IsResolved,
		report.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReport
		}
		return fmt.Errorf("moderation repository create report: %w", err)
	}
	return nil
}

func (r *repository) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	var report Report
	err := r.db.GetContext(ctx, &report, `SELECT * FROM reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// ListPending returns unresolved reports newest-first, optionally
// filtered by target kind. Reporter names survive as empty strings when
// the reporter account is gone.
func (r *repository) ListPending(ctx context.Context, kind ContentKind) ([]*ReportResponse, error) {
	query := `
		SELECT rep.id, rep.reporter_id, rep.target_kind, rep.target_id, rep.reason,
		       rep.description, rep.status, rep.is_resolved, rep.created_at,
		       COALESCE(u.username, '') AS reporter_username
		FROM reports rep
		LEFT JOIN users u ON u.id = rep.reporter_id
		WHERE rep.status = 'pending' AND ($1 = '' OR rep.target_kind = $1)
		ORDER BY rep.created_at DESC
	`
	var reports []*ReportResponse
	err := r.db.SelectContext(ctx, &reports, query, string(kind))
	return reports, err
}

func (r *repository) HasOpenReport(ctx context.Context, reporterID uuid.UUID, kind ContentKind, targetID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND target_kind = $2 AND target_id = $3
			  AND is_resolved = false
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, reporterID, kind, targetID)
	return exists, err
}

// ResolvePending claims a pending report, setting status and is_resolved
// in one statement. The status guard makes concurrent resolutions lose
// cleanly: the second caller sees zero rows affected.
func (r *repository) ResolvePending(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	query := `
		UPDATE reports
		SET status = $1, is_resolved = true
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// BlockField sets the field's flag and blocks all its comments in one
// transaction. Idempotent: re-blocking changes nothing.
func (r *repository) BlockField(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE fields SET is_blocked = true, updated_at = NOW() WHERE id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE comments SET is_blocked = true WHERE field_id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// UnblockField clears the field flag only. Its comments stay blocked.
func (r *repository) UnblockField(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE fields SET is_blocked = false, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *repository) BlockComment(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET is_blocked = true WHERE id = $1`, id)
	return err
}

func (r *repository) UnblockComment(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET is_blocked = false WHERE id = $1`, id)
	return err
}

// BanUser deactivates the account and blocks every field it owns and
// every comment it authored, all in one transaction.
func (r *repository) BanUser(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE fields SET is_blocked = true, updated_at = NOW() WHERE user_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE comments SET is_blocked = true WHERE author_id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repository) TargetExists(ctx context.Context, kind ContentKind, id uuid.UUID) (bool, error) {
	var query string
	switch kind {
	case KindField:
		query = `SELECT EXISTS(SELECT 1 FROM fields WHERE id = $1)`
	case KindComment:
		query = `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`
	default:
		return false, ErrUnsupportedKind
	}
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}

func (r *repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	return exists, err
}

func (r *repository) ListBlockedFields(ctx context.Context, limit int) ([]*BlockedField, error) {
	query := `
		SELECT id, title, user_id, updated_at FROM fields
		WHERE is_blocked = true
		ORDER BY updated_at DESC
		LIMIT $1
	`
	var fields []*BlockedField
	err := r.db.SelectContext(ctx, &fields, query, limit)
	return fields, err
}

func (r *repository) ListBlockedComments(ctx context.Context, limit int) ([]*BlockedComment, error) {
	query := `
		SELECT id, field_id, author_id, text, created_at FROM comments
		WHERE is_blocked = true
		ORDER BY created_at DESC
		LIMIT $1
	`
	var comments []*BlockedComment
	err := r.db.SelectContext(ctx, &comments, query, limit)
	return comments, err
}
