package repositories

import (
	"ClinicFlow/cache"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 7 * 24 * time.Hour
)

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := database.DB.Create(appointment).Error; err != nil {
		return &models.PersistenceError{Op: "create appointment", Err: err}
	}
	return r.flushCaches(ctx, appointment)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cachedAppointment, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAppointment != "" {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointment), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = withReadRetry(func() error {
		res := database.DB.
			Preload("Patient", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, full_name")
			}).
			Preload("Doctor", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, full_name")
			}).
			First(&appointment, "id = ?", id)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return res.Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "get appointment", Err: err}
	}
	if appointment.ID == 0 {
		return nil, &models.NotFoundError{Entity: "appointment", Key: strconv.FormatUint(uint64(id), 10)}
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "appointments_cache"
	cachedAppointments, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAppointments != "" {
		var appointments []models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointments), &appointments); err == nil {
			return appointments, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	var appointments []models.Appointment
	err = withReadRetry(func() error {
		return database.DB.
			Preload("Patient", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, full_name")
			}).
			Preload("Doctor", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, full_name")
			}).
			Order("date_time ASC").
			Find(&appointments).Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "list appointments", Err: err}
	}

	appointmentsJSON, err := json.Marshal(appointments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentsJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}

	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return withLock(ctx, r.getAppointmentLockKey(appointment.ID), func() error {
		if err := database.DB.Save(appointment).Error; err != nil {
			return &models.PersistenceError{Op: "update appointment", Err: err}
		}
		return r.flushCaches(ctx, appointment)
	})
}

// Delete removes an appointment outright. Deleting an id that no longer
// exists is not an error, so the operation is idempotent for callers.
func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	return withLock(ctx, r.getAppointmentLockKey(id), func() error {
		if err := database.DB.Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
			return &models.PersistenceError{Op: "delete appointment", Err: err}
		}
		if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
			return fmt.Errorf("failed to delete appointment cache: %w", err)
		}
		return r.cache.Delete(ctx, "appointments_cache")
	})
}

func (r *AppointmentRepository) flushCaches(ctx context.Context, appointment *models.Appointment) error {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(appointment.ID)); err != nil {
		return fmt.Errorf("failed to delete appointment cache: %w", err)
	}
	if err := r.cache.Delete(ctx, "appointments_cache"); err != nil {
		return fmt.Errorf("failed to delete appointments cache: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(appointment.PatientID)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache")
}

func (r *AppointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}

func (r *AppointmentRepository) getAppointmentLockKey(id uint) string {
	return fmt.Sprintf("appointment_lock:%d", id)
}

func (r *AppointmentRepository) getPatientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}
