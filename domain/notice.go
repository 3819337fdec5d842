package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoticeKind classifies a transient user-facing notice
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// String returns a human-readable representation of the notice kind
func (k NoticeKind) String() string {
	switch k {
	case NoticeInfo:
		return "Info"
	case NoticeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Notice is a dismissible message surfaced to the user, typically after
// a background operation fails
type Notice struct {
	ID        string     // Unique identifier used for dismissal
	Kind      NoticeKind // Severity
	Message   string     // Display text
	CreatedAt int64      // Unix timestamp
}

// NewNotice returns a notice with a fresh ID and the current timestamp
func NewNotice(kind NoticeKind, message string) Notice {
	return Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().Unix(),
	}
}
