package moderation

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind identifies what a moderation action targets. The set is
// closed; dispatch is a switch, never reflection.
type ContentKind string

const (
	KindField   ContentKind = "field"
	KindComment ContentKind = "comment"
	KindUser    ContentKind = "user"
)

// Valid reports whether the kind is one of the known values
func (k ContentKind) Valid() bool {
	switch k {
	case KindField, KindComment, KindUser:
		return true
	}
	return false
}

// Reportable reports whether users can file reports against this kind.
// Users are banned via moderator action, not via reports.
func (k ContentKind) Reportable() bool {
	return k == KindField || k == KindComment
}

// Report reasons
const (
	ReasonSpam    = "spam"
	ReasonAbuse   = "abuse"
	ReasonIllegal = "illegal"
	ReasonOther   = "other"
)

// Report statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Resolution actions
const (
	ActionBlock  = "block"
	ActionIgnore = "ignore"
)

// Report is a user complaint against a piece of content. ReporterID is
// nullable so reports survive reporter account deletion.
type Report struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	ReporterID  uuid.NullUUID `db:"reporter_id" json:"reporter_id"`
	TargetKind  ContentKind   `db:"target_kind" json:"target_kind"`
	TargetID    uuid.UUID     `db:"target_id" json:"target_id"`
	Reason      string        `db:"reason" json:"reason"`
	Description string        `db:"description" json:"description"`
	Status      string        `db:"status" json:"status"`
	IsResolved  bool          `db:"is_resolved" json:"is_resolved"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// ReportResponse is a report with the reporter name joined in
type ReportResponse struct {
	*Report
	ReporterUsername string `db:"reporter_username" json:"reporter_username"`
}

// BlockedField is a panel row for a recently blocked field
type BlockedField struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BlockedComment is a panel row for a recently blocked comment
type BlockedComment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FieldID   uuid.UUID `db:"field_id" json:"field_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
