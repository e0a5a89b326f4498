package workshop

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SprintContext is the structured input the collaborator works from.
type SprintContext struct {
	SprintID      string               `json:"sprint_id"`
	SprintName    string               `json:"sprint_name"`
	WeekCount     int                  `json:"week_count"`
	ClientContext string               `json:"client_context,omitempty"`
	Deliverables  []DeliverableContext `json:"deliverables"`
}

// DeliverableContext summarizes one composition row for the collaborator.
type DeliverableContext struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Complexity float64 `json:"complexity"`
	Quantity   int     `json:"quantity"`
}

// Agenda is a structured workshop agenda returned by the collaborator.
type Agenda struct {
	Title    string    `json:"title"`
	Summary  string    `json:"summary,omitempty"`
	Sessions []Session `json:"sessions"`
}

// Session is one block of the agenda.
type Session struct {
	Week   int      `json:"week"`
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

// ParseAgenda decodes a raw collaborator response into an Agenda.
// The raw text may carry surrounding whitespace. An agenda with no
// sessions or an empty title is rejected as invalid output.
func ParseAgenda(raw string) (*Agenda, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}

	var agenda Agenda
	if err := json.Unmarshal([]byte(trimmed), &agenda); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if agenda.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidOutput)
	}
	if len(agenda.Sessions) == 0 {
		return nil, fmt.Errorf("%w: no sessions", ErrInvalidOutput)
	}
	for i, s := range agenda.Sessions {
		if s.Title == "" {
			return nil, fmt.Errorf("%w: session %d missing title", ErrInvalidOutput, i)
		}
	}
	return &agenda, nil
}

// Text renders the agenda as a human-readable outline for storage on the
// sprint row.
func (a *Agenda) Text() string {
	var b strings.Builder
	b.WriteString(a.Title)
	if a.Summary != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Summary)
	}
	for _, s := range a.Sessions {
		b.WriteString("\n\n")
		if s.Week > 0 {
			fmt.Fprintf(&b, "Week %d: %s", s.Week, s.Title)
		} else {
			b.WriteString(s.Title)
		}
		for _, t := range s.Topics {
			b.WriteString("\n  - ")
			b.WriteString(t)
		}
	}
	return b.String()
}
