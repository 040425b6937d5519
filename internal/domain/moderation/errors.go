package moderation

import "errors"

// ValidationError kinds, in the order report validation checks them
const (
	KindMissingReason       = "missing_reason"
	KindDescriptionRequired = "description_required_for_other"
	KindDuplicateOpenReport = "duplicate_open_report"
)

// ValidationError is a user-correctable report form error. It carries a
// machine-readable kind for the frontend and never indicates a fault in
// the system itself.
type ValidationError struct {
	Kind    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(kind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrTargetNotFound  = errors.New("report target not found")
	ErrAlreadyResolved = errors.New("report already resolved")
	ErrUnsupportedKind = errors.New("unsupported content kind")
	ErrUserNotFound    = errors.New("user not found")
)
