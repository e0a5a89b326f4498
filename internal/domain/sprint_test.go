package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to SprintStatus
		want     bool
	}{
		{SprintDraft, SprintStudioReview, true},
		{SprintDraft, SprintPendingClient, true},
		{SprintStudioReview, SprintPendingClient, true},
		{SprintPendingClient, SprintComplete, true},
		{SprintPendingClient, SprintStudioReview, true}, // workshop removal
		{SprintComplete, SprintDraft, false},
		{SprintComplete, SprintPendingClient, false},
		{SprintStudioReview, SprintDraft, false},
		{SprintDraft, SprintComplete, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestSprint_CompositionOpen(t *testing.T) {
	s := &Sprint{Status: SprintDraft}
	assert.True(t, s.CompositionOpen())

	for _, status := range []SprintStatus{SprintStudioReview, SprintPendingClient, SprintComplete} {
		s.Status = status
		assert.False(t, s.CompositionOpen(), string(status))
	}
}

func TestSprint_ContentEditable(t *testing.T) {
	s := &Sprint{Status: SprintPendingClient}
	assert.True(t, s.ContentEditable(false))
	assert.True(t, s.ContentEditable(true))

	s.Status = SprintComplete
	assert.False(t, s.ContentEditable(false))
	assert.True(t, s.ContentEditable(true))
}
