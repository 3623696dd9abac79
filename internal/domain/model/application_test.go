package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from ApplicationStatus
		to   ApplicationStatus
		ok   bool
	}{
		{StatusSent, StatusUnderReview, true},
		{StatusUnderReview, StatusInterviewing, true},
		{StatusInterviewing, StatusHired, true},

		// Rejection is allowed from any non-terminal stage.
		{StatusSent, StatusRejected, true},
		{StatusUnderReview, StatusRejected, true},
		{StatusInterviewing, StatusRejected, true},

		// No skipping stages.
		{StatusSent, StatusInterviewing, false},
		{StatusSent, StatusHired, false},
		{StatusUnderReview, StatusHired, false},

		// No moving backwards.
		{StatusUnderReview, StatusSent, false},
		{StatusInterviewing, StatusUnderReview, false},

		// Terminal states are final.
		{StatusHired, StatusRejected, false},
		{StatusHired, StatusSent, false},
		{StatusRejected, StatusSent, false},
		{StatusRejected, StatusUnderReview, false},

		// Self-transitions are not transitions.
		{StatusSent, StatusSent, false},
		{StatusHired, StatusHired, false},

		// Unknown statuses never transition.
		{ApplicationStatus("Pending"), StatusUnderReview, false},
		{StatusSent, ApplicationStatus("Archived"), false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplicationStatus_Terminal(t *testing.T) {
	assert.True(t, StatusHired.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusSent.Terminal())
	assert.False(t, StatusUnderReview.Terminal())
	assert.False(t, StatusInterviewing.Terminal())
}

func TestApplication_Transition(t *testing.T) {
	app := &Application{Status: StatusSent}

	require.NoError(t, app.Transition(StatusUnderReview))
	assert.Equal(t, StatusUnderReview, app.Status)

	err := app.Transition(StatusHired)
	require.ErrorIs(t, err, ErrIllegalTransition)
	// A failed transition leaves the status untouched.
	assert.Equal(t, StatusUnderReview, app.Status)

	require.NoError(t, app.Transition(StatusInterviewing))
	require.NoError(t, app.Transition(StatusHired))
	assert.ErrorIs(t, app.Transition(StatusRejected), ErrIllegalTransition)
}
