package services

import (
	"ClinicFlow/models"
	"ClinicFlow/utils"
	"context"
	"sort"
	"time"
)

// AppointmentStore is the persistence collaborator for appointments,
// implemented by repositories.AppointmentRepository.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	GetAll(ctx context.Context) ([]models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uint) error
}

// AppointmentService governs the appointment lifecycle. Status edits go
// through a swappable transition policy; the default matches the historical
// lenient behavior. Double-booking of a doctor/time slot is deliberately not
// prevented.
type AppointmentService struct {
	store  AppointmentStore
	policy models.TransitionPolicy
}

func NewAppointmentService(store AppointmentStore) *AppointmentService {
	return &AppointmentService{store: store, policy: models.LenientTransitions}
}

// WithTransitionPolicy swaps the status transition policy and returns the
// service for chaining.
func (s *AppointmentService) WithTransitionPolicy(policy models.TransitionPolicy) *AppointmentService {
	s.policy = policy
	return s
}

// Create books a new appointment. The status defaults to Scheduled.
func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = models.StatusScheduled
	}
	if err := utils.ValidateAppointment(*appointment); err != nil {
		return err
	}
	if err := s.policy(models.StatusScheduled, appointment.Status); err != nil {
		return err
	}
	return s.store.Create(ctx, appointment)
}

func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.store.GetByID(ctx, id)
}

func (s *AppointmentService) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return s.store.GetAll(ctx)
}

// Update applies the provided fields to an existing appointment. Blank
// required fields keep their current values; notes are replaced as given.
// Status changes are checked against the transition policy.
func (s *AppointmentService) Update(ctx context.Context, id uint, fields *models.Appointment) (*models.Appointment, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.PatientID != "" {
		current.PatientID = fields.PatientID
	}
	if fields.DoctorID != "" {
		current.DoctorID = fields.DoctorID
	}
	if fields.DateTime != "" {
		current.DateTime = fields.DateTime
	}
	current.Notes = fields.Notes
	if fields.Status != "" && fields.Status != current.Status {
		if err := s.policy(current.Status, fields.Status); err != nil {
			return nil, err
		}
		current.Status = fields.Status
	}

	if err := utils.ValidateAppointment(*current); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Cancel marks an appointment Cancelled. Cancelling an already-cancelled
// appointment is a no-op that succeeds without touching storage.
func (s *AppointmentService) Cancel(ctx context.Context, id uint) (*models.Appointment, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.StatusCancelled {
		return current, nil
	}
	if err := s.policy(current.Status, models.StatusCancelled); err != nil {
		return nil, err
	}
	current.Status = models.StatusCancelled
	if err := s.store.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete removes an appointment record outright. The normal flow cancels
// instead; hard deletion exists for cleanup and is idempotent.
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}

// ListUpcoming returns the non-cancelled appointments from the start of
// ref's day onward, soonest first. Appointments with unparseable date-times
// are skipped rather than failing the listing.
func (s *AppointmentService) ListUpcoming(ctx context.Context, ref time.Time) ([]models.Appointment, error) {
	appointments, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// Stored values parse as UTC; comparisons are wall-clock only.
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	type timed struct {
		appointment models.Appointment
		at          time.Time
	}
	upcoming := make([]timed, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.Status == models.StatusCancelled {
			continue
		}
		at, err := appointment.When()
		if err != nil {
			continue
		}
		if at.Before(dayStart) {
			continue
		}
		upcoming = append(upcoming, timed{appointment: appointment, at: at})
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].at.Before(upcoming[j].at) })

	result := make([]models.Appointment, len(upcoming))
	for i, entry := range upcoming {
		result[i] = entry.appointment
	}
	return result, nil
}
