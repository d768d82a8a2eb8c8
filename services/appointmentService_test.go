package services

import (
	"ClinicFlow/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentCreateDefaultsToScheduled(t *testing.T) {
	store := newFakeAppointmentStore()
	service := NewAppointmentService(store)

	appointment := &models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		DateTime:  "2026-09-14T10:30",
	}
	require.NoError(t, service.Create(context.Background(), appointment))

	saved, err := service.GetByID(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, saved.Status)
}

func TestAppointmentCreateValidation(t *testing.T) {
	store := newFakeAppointmentStore()
	service := NewAppointmentService(store)

	cases := []struct {
		name        string
		appointment models.Appointment
	}{
		{"missing patient", models.Appointment{DoctorID: "doctor-1", DateTime: "2026-09-14T10:30"}},
		{"missing doctor", models.Appointment{PatientID: "patient-1", DateTime: "2026-09-14T10:30"}},
		{"missing date-time", models.Appointment{PatientID: "patient-1", DoctorID: "doctor-1"}},
		{"garbage date-time", models.Appointment{PatientID: "patient-1", DoctorID: "doctor-1", DateTime: "next tuesday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appointment := tc.appointment
			err := service.Create(context.Background(), &appointment)
			require.Error(t, err)
			assert.True(t, models.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "rejected appointments must not be stored")
}

func TestAppointmentCancelIsIdempotent(t *testing.T) {
	store := newFakeAppointmentStore()
	service := NewAppointmentService(store)

	appointment := &models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		DateTime:  "2026-09-14T10:30",
	}
	require.NoError(t, service.Create(context.Background(), appointment))

	first, err := service.Cancel(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, first.Status)
	writesAfterFirst := store.updates

	second, err := service.Cancel(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, second.Status)
	assert.Equal(t, writesAfterFirst, store.updates, "second cancel must not write to storage")
}

func TestAppointmentCancelUnknownID(t *testing.T) {
	service := NewAppointmentService(newFakeAppointmentStore())

	_, err := service.Cancel(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestAppointmentUpdateKeepsBlankFields(t *testing.T) {
	store := newFakeAppointmentStore()
	service := NewAppointmentService(store)

	appointment := &models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		DateTime:  "2026-09-14T10:30",
		Notes:     "first visit",
	}
	require.NoError(t, service.Create(context.Background(), appointment))

	updated, err := service.Update(context.Background(), appointment.ID, &models.Appointment{
		DateTime: "2026-09-21T09:00",
		Notes:    "rescheduled",
	})
	require.NoError(t, err)
	assert.Equal(t, "patient-1", updated.PatientID)
	assert.Equal(t, "doctor-1", updated.DoctorID)
	assert.Equal(t, "2026-09-21T09:00", updated.DateTime)
	assert.Equal(t, "rescheduled", updated.Notes)
	assert.Equal(t, models.StatusScheduled, updated.Status)
}

func TestAppointmentTransitionPolicies(t *testing.T) {
	newCompleted := func(t *testing.T, service *AppointmentService) uint {
		t.Helper()
		appointment := &models.Appointment{
			PatientID: "patient-1",
			DoctorID:  "doctor-1",
			DateTime:  "2026-09-14T10:30",
		}
		require.NoError(t, service.Create(context.Background(), appointment))
		_, err := service.Update(context.Background(), appointment.ID, &models.Appointment{Status: models.StatusCompleted})
		require.NoError(t, err)
		return appointment.ID
	}

	t.Run("lenient allows reopening a completed appointment", func(t *testing.T) {
		service := NewAppointmentService(newFakeAppointmentStore())
		id := newCompleted(t, service)

		updated, err := service.Update(context.Background(), id, &models.Appointment{Status: models.StatusScheduled})
		require.NoError(t, err)
		assert.Equal(t, models.StatusScheduled, updated.Status)
	})

	t.Run("strict treats completed as terminal", func(t *testing.T) {
		service := NewAppointmentService(newFakeAppointmentStore())
		id := newCompleted(t, service)

		service.WithTransitionPolicy(models.StrictTransitions)
		_, err := service.Update(context.Background(), id, &models.Appointment{Status: models.StatusScheduled})
		require.Error(t, err)
		assert.True(t, models.IsValidation(err), "policy rejection must surface as a validation error")

		saved, getErr := service.GetByID(context.Background(), id)
		require.NoError(t, getErr)
		assert.Equal(t, models.StatusCompleted, saved.Status, "rejected transition must not change stored status")
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		store := newFakeAppointmentStore()
		service := NewAppointmentService(store)
		appointment := &models.Appointment{
			PatientID: "patient-1",
			DoctorID:  "doctor-1",
			DateTime:  "2026-09-14T10:30",
		}
		require.NoError(t, service.Create(context.Background(), appointment))

		_, err := service.Update(context.Background(), appointment.ID, &models.Appointment{Status: "Rescheduled"})
		require.Error(t, err)
		assert.True(t, models.IsValidation(err), "unknown status must surface as a validation error")
	})
}

func TestListUpcoming(t *testing.T) {
	store := newFakeAppointmentStore()
	service := NewAppointmentService(store)

	seed := []models.Appointment{
		{PatientID: "p1", DoctorID: "d1", DateTime: "2026-09-20T14:00"},                                  // later this month
		{PatientID: "p2", DoctorID: "d1", DateTime: "2026-09-15T08:00"},                                  // same day, earlier hour
		{PatientID: "p3", DoctorID: "d2", DateTime: "2026-09-10T09:00"},                                  // past
		{PatientID: "p4", DoctorID: "d2", DateTime: "2026-09-16T11:00", Status: models.StatusCancelled},  // cancelled
		{PatientID: "p5", DoctorID: "d1", DateTime: "2026-09-15T16:30", Status: models.StatusConfirmed},  // same day, later hour
	}
	for i := range seed {
		require.NoError(t, service.Create(context.Background(), &seed[i]))
	}

	// Reference mid-afternoon: the 08:00 same-day appointment still counts
	// because the window opens at the start of the day.
	ref := time.Date(2026, time.September, 15, 15, 0, 0, 0, time.UTC)
	upcoming, err := service.ListUpcoming(context.Background(), ref)
	require.NoError(t, err)

	require.Len(t, upcoming, 3)
	assert.Equal(t, "p2", upcoming[0].PatientID)
	assert.Equal(t, "p5", upcoming[1].PatientID)
	assert.Equal(t, "p1", upcoming[2].PatientID)
}

func TestListUpcomingSkipsUnparseable(t *testing.T) {
	store := newFakeAppointmentStore()
	service := NewAppointmentService(store)

	// Bypass the service so a corrupt date-time can end up in storage.
	require.NoError(t, store.Create(context.Background(), &models.Appointment{
		PatientID: "p1", DoctorID: "d1", DateTime: "not-a-date", Status: models.StatusScheduled,
	}))
	require.NoError(t, store.Create(context.Background(), &models.Appointment{
		PatientID: "p2", DoctorID: "d1", DateTime: "2026-09-20T10:00", Status: models.StatusScheduled,
	}))

	upcoming, err := service.ListUpcoming(context.Background(), time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "p2", upcoming[0].PatientID)
}
