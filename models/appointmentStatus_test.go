package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted} {
		assert.True(t, status.Valid(), "%s should be valid", status)
	}
	assert.False(t, AppointmentStatus("Rescheduled").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestLenientTransitions(t *testing.T) {
	assert.NoError(t, LenientTransitions(StatusCompleted, StatusScheduled))
	assert.NoError(t, LenientTransitions(StatusCancelled, StatusConfirmed))
	assert.Error(t, LenientTransitions(StatusScheduled, "Rescheduled"))
}

func TestTransitionRejectionsAreValidationErrors(t *testing.T) {
	// A rejected status edit is a bad request, not a server fault.
	err := LenientTransitions(StatusScheduled, "Rescheduled")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	err = StrictTransitions(StatusCompleted, StatusScheduled)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	err = StrictTransitions(StatusScheduled, "Rescheduled")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestStrictTransitions(t *testing.T) {
	allowed := []struct{ from, to AppointmentStatus }{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusScheduled, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusCompleted, StatusCompleted}, // same-status no-op
	}
	for _, tc := range allowed {
		assert.NoError(t, StrictTransitions(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to AppointmentStatus }{
		{StatusCompleted, StatusScheduled},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusConfirmed},
		{StatusConfirmed, StatusScheduled},
	}
	for _, tc := range denied {
		assert.Error(t, StrictTransitions(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.Error(t, StrictTransitions(StatusScheduled, "Rescheduled"))
}
