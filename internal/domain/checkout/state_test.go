package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		allowed bool
	}{
		{"select to fill", StateSelectingMethod, StateFillingDetails, true},
		{"select skips review", StateSelectingMethod, StateReviewing, false},
		{"fill to review", StateFillingDetails, StateReviewing, true},
		{"resubmit while filling", StateFillingDetails, StateFillingDetails, true},
		{"fill back to select", StateFillingDetails, StateSelectingMethod, true},
		{"review to settling", StateReviewing, StateSettling, true},
		{"review back to fill", StateReviewing, StateFillingDetails, true},
		{"settling to succeeded", StateSettling, StateSucceeded, true},
		{"settling to failed", StateSettling, StateFailed, true},
		{"settling cannot go back", StateSettling, StateFillingDetails, false},
		{"failed retries to fill", StateFailed, StateFillingDetails, true},
		{"failed cannot settle directly", StateFailed, StateSettling, false},
		{"succeeded is final", StateSucceeded, StateFillingDetails, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestState_IsTerminal(t *testing.T) {
	assert.True(t, StateSucceeded.IsTerminal())
	assert.False(t, StateFailed.IsTerminal(), "failed drafts survive for retry")
	assert.False(t, StateSettling.IsTerminal())
}
