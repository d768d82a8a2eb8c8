package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AppointmentStatus is a closed set of appointment lifecycle states.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// TransitionPolicy decides whether a status edit is allowed. It is kept
// separate from the data model so strictness can be tightened without
// touching stored records.
type TransitionPolicy func(from, to AppointmentStatus) error

// Policy rejections are field validation failures, not server faults, so
// they are reported as validation.Errors keyed on the status field.

// LenientTransitions allows any edit between known statuses, including
// reopening a completed appointment. This matches the historical behavior
// of generic updates.
func LenientTransitions(from, to AppointmentStatus) error {
	if !to.Valid() {
		return validation.Errors{"status": fmt.Errorf("unknown appointment status %q", to)}
	}
	return nil
}

var strictNext = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// StrictTransitions enforces the lifecycle diagram: Cancelled and Completed
// are terminal. A no-op edit to the same status is always allowed.
func StrictTransitions(from, to AppointmentStatus) error {
	if !to.Valid() {
		return validation.Errors{"status": fmt.Errorf("unknown appointment status %q", to)}
	}
	if from == to {
		return nil
	}
	for _, allowed := range strictNext[from] {
		if to == allowed {
			return nil
		}
	}
	return validation.Errors{"status": fmt.Errorf("appointment status cannot change from %s to %s", from, to)}
}
