package workshop

import "errors"

var (
	// ErrUnavailable indicates the agenda collaborator is unreachable.
	ErrUnavailable = errors.New("agenda collaborator unavailable")

	// ErrTimeout indicates the generation request exceeded the configured timeout.
	ErrTimeout = errors.New("agenda generation timed out")

	// ErrInvalidOutput indicates the collaborator response could not be
	// parsed into a structured agenda.
	ErrInvalidOutput = errors.New("invalid agenda output format")

	// ErrDisabled indicates generation was requested with no collaborator
	// configured (missing endpoint or credential).
	ErrDisabled = errors.New("agenda generation is not configured")
)
