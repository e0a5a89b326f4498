package domain

import "time"

// ChangeEntry is one human-readable audit line for a sprint. The change log
// is append-only and display-only; nothing reads it back into behavior.
type ChangeEntry struct {
	ID        string
	SprintID  string
	Summary   string
	Actor     string
	CreatedAt time.Time
}
