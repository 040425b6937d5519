package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// stubRepo is an in-memory moderation repository for tests
type stubRepo struct {
	reports  map[uuid.UUID]*Report
	fields   map[uuid.UUID]*stubField
	comments map[uuid.UUID]*stubComment
	users    map[uuid.UUID]*stubUser

	failBlocks bool
}

type stubField struct {
	ownerID   uuid.UUID
	isBlocked bool
}

type stubComment struct {
	fieldID   uuid.UUID
	authorID  uuid.UUID
	isBlocked bool
}

type stubUser struct {
	isActive bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		reports:  make(map[uuid.UUID]*Report),
		fields:   make(map[uuid.UUID]*stubField),
		comments: make(map[uuid.UUID]*stubComment),
		users:    make(map[uuid.UUID]*stubUser),
	}
}

var errStorage = errors.New("storage failure")

func (s *stubRepo) CreateReport(ctx context.Context, report *Report) error {
	for _, r := range s.reports {
		if r.ReporterID == report.ReporterID && r.TargetKind == report.TargetKind &&
			r.TargetID == report.TargetID && !r.IsResolved {
			return ErrDuplicateReport
		}
	}
	cp := *report
	s.reports[report.ID] = &cp
	return nil
}

func (s *stubRepo) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	r, ok := s.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *stubRepo) ListPending(ctx context.Context, kind ContentKind) ([]*ReportResponse, error) {
	var out []*ReportResponse
	for _, r := range s.reports {
		if r.Status != StatusPending {
			continue
		}
		if kind != "" && r.TargetKind != kind {
			continue
		}
		cp := *r
		out = append(out, &ReportResponse{Report: &cp})
	}
	return out, nil
}

func (s *stubRepo) HasOpenReport(ctx context.Context, reporterID uuid.UUID, kind ContentKind, targetID uuid.UUID) (bool, error) {
	for _, r := range s.reports {
		if r.ReporterID.UUID == reporterID && r.TargetKind == kind &&
			r.TargetID == targetID && !r.IsResolved {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) ResolvePending(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	r, ok := s.reports[id]
	if !ok || r.Status != StatusPending {
		return false, nil
	}
	r.Status = status
	r.IsResolved = true
	return true, nil
}

func (s *stubRepo) BlockField(ctx context.Context, id uuid.UUID) error {
	if s.failBlocks {
		return errStorage
	}
	if f, ok := s.fields[id]; ok {
		f.isBlocked = true
	}
	for _, c := range s.comments {
		if c.fieldID == id {
			c.isBlocked = true
		}
	}
	return nil
}

func (s *stubRepo) UnblockField(ctx context.Context, id uuid.UUID) error {
	if f, ok := s.fields[id]; ok {
		f.isBlocked = false
	}
	return nil
}

func (s *stubRepo) BlockComment(ctx context.Context, id uuid.UUID) error {
	if s.failBlocks {
		return errStorage
	}
	if c, ok := s.comments[id]; ok {
		c.isBlocked = true
	}
	return nil
}

func (s *stubRepo) UnblockComment(ctx context.Context, id uuid.UUID) error {
	if c, ok := s.comments[id]; ok {
		c.isBlocked = false
	}
	return nil
}

func (s *stubRepo) BanUser(ctx context.Context, id uuid.UUID) error {
	if s.failBlocks {
		return errStorage
	}
	if u, ok := s.users[id]; ok {
		u.isActive = false
	}
	for _, f := range s.fields {
		if f.ownerID == id {
			f.isBlocked = true
		}
	}
	for _, c := range s.comments {
		if c.authorID == id {
			c.isBlocked = true
		}
	}
	return nil
}

func (s *stubRepo) TargetExists(ctx context.Context, kind ContentKind, id uuid.UUID) (bool, error) {
	switch kind {
	case KindField:
		_, ok := s.fields[id]
		return ok, nil
	case KindComment:
		_, ok := s.comments[id]
		return ok, nil
	}
	return false, ErrUnsupportedKind
}

func (s *stubRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s *stubRepo) ListBlockedFields(ctx context.Context, limit int) ([]*BlockedField, error) {
	var out []*BlockedField
	for id, f := range s.fields {
		if f.isBlocked && len(out) < limit {
			out = append(out, &BlockedField{ID: id, UserID: f.ownerID})
		}
	}
	return out, nil
}

func (s *stubRepo) ListBlockedComments(ctx context.Context, limit int) ([]*BlockedComment, error) {
	var out []*BlockedComment
	for id, c := range s.comments {
		if c.isBlocked && len(out) < limit {
			out = append(out, &BlockedComment{ID: id, FieldID: c.fieldID, AuthorID: c.authorID})
		}
	}
	return out, nil
}

func newTestService(repo *stubRepo) *Service {
	return NewService(repo, NewEngine(repo))
}

func seedField(repo *stubRepo, owner uuid.UUID) uuid.UUID {
	id := uuid.New()
	repo.fields[id] = &stubField{ownerID: owner}
	return id
}

func seedComment(repo *stubRepo, fieldID, author uuid.UUID) uuid.UUID {
	id := uuid.New()
	repo.comments[id] = &stubComment{fieldID: fieldID, authorID: author}
	return id
}

func TestSubmitReportMissingReason(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())

	for _, reason := range []string{"", "  ", "bogus"} {
		_, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
			TargetKind: "field",
			TargetID:   fieldID,
			Reason:     reason,
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("reason %q: expected validation error, got %v", reason, err)
		}
		if verr.Kind != KindMissingReason {
			t.Fatalf("reason %q: expected kind %s, got %s", reason, KindMissingReason, verr.Kind)
		}
	}
	if len(repo.reports) != 0 {
		t.Fatalf("expected no reports persisted, got %d", len(repo.reports))
	}
}

func TestSubmitReportOtherRequiresDescription(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())
	reporter := uuid.New()

	_, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind: "field",
		TargetID:   fieldID,
		Reason:     ReasonOther,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != KindDescriptionRequired {
		t.Fatalf("expected %s, got %v", KindDescriptionRequired, err)
	}

	// Same reason with a description passes
	report, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind:  "field",
		TargetID:    fieldID,
		Reason:      ReasonOther,
		Description: "something off about this one",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != StatusPending || report.IsResolved {
		t.Fatalf("expected pending unresolved report, got %s resolved=%v", report.Status, report.IsResolved)
	}
}

func TestSubmitReportTargetMissing(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	_, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "comment",
		TargetID:   uuid.New(),
		Reason:     ReasonSpam,
	})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestSubmitReportUserKindRejected(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	_, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "user",
		TargetID:   uuid.New(),
		Reason:     ReasonAbuse,
	})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestSubmitReportDuplicateOpen(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())
	reporter := uuid.New()

	if _, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	}); err != nil {
		t.Fatalf("first report failed: %v", err)
	}

	_, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonAbuse,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != KindDuplicateOpenReport {
		t.Fatalf("expected %s, got %v", KindDuplicateOpenReport, err)
	}

	// A different reporter may still report the same target
	if _, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	}); err != nil {
		t.Fatalf("second reporter failed: %v", err)
	}
}

// raceyRepo simulates a concurrent submission landing between the
// duplicate check and the insert.
type raceyRepo struct {
	*stubRepo
}

func (r *raceyRepo) HasOpenReport(ctx context.Context, reporterID uuid.UUID, kind ContentKind, targetID uuid.UUID) (bool, error) {
	return false, nil
}

func TestSubmitReportDuplicateRaceMapsToValidationError(t *testing.T) {
	base := newStubRepo()
	fieldID := seedField(base, uuid.New())
	reporter := uuid.New()
	base.reports[uuid.New()] = &Report{
		ID:         uuid.New(),
		ReporterID: uuid.NullUUID{UUID: reporter, Valid: true},
		TargetKind: KindField,
		TargetID:   fieldID,
		Status:     StatusPending,
	}

	repo := &raceyRepo{stubRepo: base}
	svc := NewService(repo, NewEngine(repo))

	_, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != KindDuplicateOpenReport {
		t.Fatalf("expected %s from index violation, got %v", KindDuplicateOpenReport, err)
	}
}

func TestResolveReportBlockCascades(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	owner := uuid.New()
	fieldID := seedField(repo, owner)
	commentID := seedComment(repo, fieldID, uuid.New())

	report, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonIllegal,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	resolved, err := svc.ResolveReport(context.Background(), report.ID, ActionBlock)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != StatusApproved || !resolved.IsResolved {
		t.Fatalf("expected approved+resolved, got %s resolved=%v", resolved.Status, resolved.IsResolved)
	}
	if !repo.fields[fieldID].isBlocked {
		t.Fatal("field was not blocked")
	}
	if !repo.comments[commentID].isBlocked {
		t.Fatal("field block did not cascade to its comment")
	}
}

func TestResolveReportIgnoreLeavesContentAlone(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())

	report, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	resolved, err := svc.ResolveReport(context.Background(), report.ID, ActionIgnore)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != StatusRejected || !resolved.IsResolved {
		t.Fatalf("expected rejected+resolved, got %s resolved=%v", resolved.Status, resolved.IsResolved)
	}
	if repo.fields[fieldID].isBlocked {
		t.Fatal("ignore must not block content")
	}
}

func TestResolveReportTwiceRejected(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())

	report, _ := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	})
	if _, err := svc.ResolveReport(context.Background(), report.ID, ActionIgnore); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}

	if _, err := svc.ResolveReport(context.Background(), report.ID, ActionBlock); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if repo.fields[fieldID].isBlocked {
		t.Fatal("losing resolution must not mutate content after the claim failed")
	}
}

// staleReadRepo returns a pending report even after it has been
// claimed, modeling two moderators reading before either resolves.
type staleReadRepo struct {
	*stubRepo
}

func (r *staleReadRepo) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	report, err := r.stubRepo.GetReportByID(ctx, id)
	if report != nil {
		report.Status = StatusPending
		report.IsResolved = false
	}
	return report, err
}

func TestResolveReportConcurrentClaimLoses(t *testing.T) {
	base := newStubRepo()
	fieldID := seedField(base, uuid.New())
	reportID := uuid.New()
	base.reports[reportID] = &Report{
		ID:         reportID,
		TargetKind: KindField,
		TargetID:   fieldID,
		Status:     StatusApproved,
		IsResolved: true,
		CreatedAt:  time.Now(),
	}

	repo := &staleReadRepo{stubRepo: base}
	svc := NewService(repo, NewEngine(repo))

	if _, err := svc.ResolveReport(context.Background(), reportID, ActionIgnore); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on lost claim, got %v", err)
	}
}

func TestResolveReportNotFound(t *testing.T) {
	svc := newTestService(newStubRepo())

	if _, err := svc.ResolveReport(context.Background(), uuid.New(), ActionBlock); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestUnblockFieldKeepsCommentsBlocked(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())
	commentID := seedComment(repo, fieldID, uuid.New())

	if err := repo.BlockField(context.Background(), fieldID); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	if err := svc.Unblock(context.Background(), &UnblockRequest{
		TargetKind: "field", TargetID: fieldID,
	}); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}

	if repo.fields[fieldID].isBlocked {
		t.Fatal("field should be unblocked")
	}
	if !repo.comments[commentID].isBlocked {
		t.Fatal("unblocking a field must not unblock its comments")
	}
}

func TestBanUserCascade(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	userID := uuid.New()
	repo.users[userID] = &stubUser{isActive: true}
	ownField := seedField(repo, userID)
	otherField := seedField(repo, uuid.New())
	ownComment := seedComment(repo, otherField, userID)

	if err := svc.BanUser(context.Background(), userID); err != nil {
		t.Fatalf("ban failed: %v", err)
	}

	if repo.users[userID].isActive {
		t.Fatal("banned user should be deactivated")
	}
	if !repo.fields[ownField].isBlocked {
		t.Fatal("banned user's field should be blocked")
	}
	if !repo.comments[ownComment].isBlocked {
		t.Fatal("banned user's comment should be blocked")
	}
	if repo.fields[otherField].isBlocked {
		t.Fatal("other users' fields must stay untouched")
	}
}

func TestBanUserMissing(t *testing.T) {
	svc := newTestService(newStubRepo())

	if err := svc.BanUser(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestReportLifecycleAllowsReReport(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())
	reporter := uuid.New()

	first, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.ResolveReport(context.Background(), first.ID, ActionBlock); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Resolution closes the report, so the same reporter may file again
	second, err := svc.SubmitReport(context.Background(), reporter, &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonAbuse,
	})
	if err != nil {
		t.Fatalf("re-report after resolution failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected a fresh report")
	}
}

func TestPanelCollectsQueueAndBlockedContent(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	fieldID := seedField(repo, uuid.New())
	commentID := seedComment(repo, fieldID, uuid.New())
	repo.BlockComment(context.Background(), commentID)

	if _, err := svc.SubmitReport(context.Background(), uuid.New(), &SubmitReportRequest{
		TargetKind: "field", TargetID: fieldID, Reason: ReasonSpam,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	panel, err := svc.Panel(context.Background())
	if err != nil {
		t.Fatalf("panel failed: %v", err)
	}
	if len(panel.PendingReports) != 1 {
		t.Fatalf("expected 1 pending report, got %d", len(panel.PendingReports))
	}
	if len(panel.BlockedComments) != 1 {
		t.Fatalf("expected 1 blocked comment, got %d", len(panel.BlockedComments))
	}
	if len(panel.BlockedFields) != 0 {
		t.Fatalf("expected no blocked fields, got %d", len(panel.BlockedFields))
	}
}
