package moderation

import "github.com/google/uuid"

// SubmitReportRequest represents a user's report form
type SubmitReportRequest struct {
	TargetKind  string    `json:"target_kind" validate:"required,target_kind"`
	TargetID    uuid.UUID `json:"target_id" validate:"required"`
	Reason      string    `json:"reason"`
	Description string    `json:"description" validate:"max=2000"`
}

// ResolveReportRequest represents a staff resolution decision
type ResolveReportRequest struct {
	Action string `json:"action" validate:"required,resolve_action"`
}

// UnblockRequest identifies content to unblock
type UnblockRequest struct {
	TargetKind string    `json:"target_kind" validate:"required,target_kind"`
	TargetID   uuid.UUID `json:"target_id" validate:"required"`
}

// PanelResponse is the moderation dashboard payload
type PanelResponse struct {
	PendingReports  []*ReportResponse `json:"pending_reports"`
	BlockedFields   []*BlockedField   `json:"blocked_fields"`
	BlockedComments []*BlockedComment `json:"blocked_comments"`
}
