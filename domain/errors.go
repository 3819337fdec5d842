package domain

import "errors"

// Sentinel errors for engine operations
var (
	// ErrBackendUnreachable indicates the discovery backend cannot be reached
	ErrBackendUnreachable = errors.New("discovery backend is unreachable")

	// ErrUnauthorized indicates the session token was missing or rejected
	ErrUnauthorized = errors.New("session token was rejected")

	// ErrContentNotFound indicates the requested content does not exist
	ErrContentNotFound = errors.New("content not found")

	// ErrClosed indicates an operation on an engine that has been shut down
	ErrClosed = errors.New("engine is closed")
)

// UserMessage converts an operation error into display text suitable for
// a notice or a stream error banner.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBackendUnreachable):
		return "Can't reach Vela right now. Check your connection."
	case errors.Is(err, ErrUnauthorized):
		return "Your session has expired. Sign in again."
	case errors.Is(err, ErrContentNotFound):
		return "That content is no longer available."
	default:
		return err.Error()
	}
}
