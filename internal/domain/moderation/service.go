package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const panelListLimit = 10

// Service handles moderation business logic
type Service struct {
	repo   Repository
	engine *Engine
}

// NewService creates moderation service
func NewService(repo Repository, engine *Engine) *Service {
	return &Service{repo: repo, engine: engine}
}

// SubmitReport files a complaint against a field or comment. Validation
// runs in a fixed order so the frontend always shows the most relevant
// form error: reason first, then the other-description rule, then the
// duplicate check.
func (s *Service) SubmitReport(ctx context.Context, reporterID uuid.UUID, req *SubmitReportRequest) (*Report, error) {
	kind := ContentKind(req.TargetKind)
	if !kind.Reportable() {
		return nil, ErrUnsupportedKind
	}

	reason := strings.TrimSpace(req.Reason)
	switch reason {
	case ReasonSpam, ReasonAbuse, ReasonIllegal, ReasonOther:
	default:
		return nil, newValidationError(KindMissingReason, "Please select a reason")
	}

	description := strings.TrimSpace(req.Description)
	if reason == ReasonOther && description == "" {
		return nil, newValidationError(KindDescriptionRequired,
			"Please describe the problem when selecting Other")
	}

	exists, err := s.repo.TargetExists(ctx, kind, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	open, err := s.repo.HasOpenReport(ctx, reporterID, kind, req.TargetID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, newValidationError(KindDuplicateOpenReport,
			"You already have an open report for this content")
	}

	report := &Report{
		ID:          uuid.New(),
		ReporterID:  uuid.NullUUID{UUID: reporterID, Valid: true},
		TargetKind:  kind,
		TargetID:    req.TargetID,
		Reason:      reason,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		// A concurrent submission slipped past the HasOpenReport check;
		// the partial unique index catches it.
		if err == ErrDuplicateReport {
			return nil, newValidationError(KindDuplicateOpenReport,
				"You already have an open report for this content")
		}
		return nil, err
	}
	return report, nil
}

// ListPending returns the unresolved report queue, newest first
func (s *Service) ListPending(ctx context.Context, kind string) ([]*ReportResponse, error) {
	k := ContentKind(kind)
	if kind != "" && !k.Reportable() {
		return nil, ErrUnsupportedKind
	}

	reports, err := s.repo.ListPending(ctx, k)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*ReportResponse{}
	}
	return reports, nil
}

// ResolveReport closes a pending report. Action block hides the target
// through the engine before the report is claimed; block is idempotent,
// so a lost race leaves no stray state. Action ignore only claims.
func (s *Service) ResolveReport(ctx context.Context, id uuid.UUID, action string) (*Report, error) {
	report, err := s.repo.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.IsResolved {
		return nil, ErrAlreadyResolved
	}

	var status string
	switch action {
	case ActionBlock:
		if _, err := s.engine.SafeBlock(ctx, report.TargetKind, report.TargetID); err != nil {
			return nil, err
		}
		status = StatusApproved
	case ActionIgnore:
		status = StatusRejected
	default:
		return nil, ErrUnsupportedKind
	}

	claimed, err := s.repo.ResolvePending(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyResolved
	}

	report.Status = status
	report.IsResolved = true
	return report, nil
}

// Unblock reverses a block on a field or comment
func (s *Service) Unblock(ctx context.Context, req *UnblockRequest) error {
	kind := ContentKind(req.TargetKind)
	if !kind.Reportable() {
		return ErrUnsupportedKind
	}

	exists, err := s.repo.TargetExists(ctx, kind, req.TargetID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}

	_, err = s.engine.SafeUnblock(ctx, kind, req.TargetID)
	return err
}

// BanUser deactivates an account and blocks all its content
func (s *Service) BanUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	_, err = s.engine.SafeBan(ctx, id)
	return err
}

// Panel returns the moderation dashboard: the pending queue plus the
// most recently blocked fields and comments.
func (s *Service) Panel(ctx context.Context) (*PanelResponse, error) {
	reports, err := s.ListPending(ctx, "")
	if err != nil {
		return nil, err
	}

	fields, err := s.repo.ListBlockedFields(ctx, panelListLimit)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []*BlockedField{}
	}

	comments, err := s.repo.ListBlockedComments(ctx, panelListLimit)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*BlockedComment{}
	}

	return &PanelResponse{
		PendingReports:  reports,
		BlockedFields:   fields,
		BlockedComments: comments,
	}, nil
}
