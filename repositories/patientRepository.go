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
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 7 * 24 * time.Hour
)

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.Create(patient).Error; err != nil {
		return &models.PersistenceError{Op: "create patient", Err: err}
	}
	return r.flushCaches(ctx, patient.ID)
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	cachedPatient, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatient != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cachedPatient), &patient); err == nil {
			return &patient, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = withReadRetry(func() error {
		res := database.DB.First(&patient, "id = ?", id)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return res.Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "get patient", Err: err}
	}
	if patient.ID == "" {
		return nil, &models.NotFoundError{Entity: "patient", Key: id}
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patient: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "patients_cache"
	cachedPatients, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatients != "" {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cachedPatients), &patients); err == nil {
			return patients, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	err = withReadRetry(func() error {
		return database.DB.Order("full_name ASC").Find(&patients).Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "list patients", Err: err}
	}

	patientsJSON, err := json.Marshal(patients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patients: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientsJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}

	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return withLock(ctx, r.getPatientLockKey(patient.ID), func() error {
		if err := database.DB.Save(patient).Error; err != nil {
			return &models.PersistenceError{Op: "update patient", Err: err}
		}
		return r.flushCaches(ctx, patient.ID)
	})
}

// Delete removes the patient along with their appointments and bills in one
// transaction; a patient's bills release their reserved stock first.
func (r *PatientRepository) Delete(ctx context.Context, id string, bills *BillRepository) error {
	return withLock(ctx, r.getPatientLockKey(id), func() error {
		var owned []models.Bill
		if err := database.DB.Where("patient_id = ?", id).Select("id").Find(&owned).Error; err != nil {
			return &models.PersistenceError{Op: "list patient bills", Err: err}
		}
		for _, bill := range owned {
			if err := bills.Delete(ctx, bill.ID); err != nil && !models.IsNotFound(err) {
				return err
			}
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.Appointment{}, "patient_id = ?", id).Error; err != nil {
				return &models.PersistenceError{Op: "delete patient appointments", Err: err}
			}
			if err := tx.Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
				return &models.PersistenceError{Op: "delete patient", Err: err}
			}
			return nil
		})
		if err != nil {
			return err
		}

		if err := r.cache.DeleteAll(ctx, "appointment_cache:*"); err != nil {
			return fmt.Errorf("failed to delete appointment caches: %w", err)
		}
		if err := r.cache.Delete(ctx, "appointments_cache"); err != nil {
			return fmt.Errorf("failed to delete appointments cache: %w", err)
		}
		return r.flushCaches(ctx, id)
	})
}

func (r *PatientRepository) flushCaches(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.Delete(ctx, "patients_cache")
}

func (r *PatientRepository) getPatientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}

func (r *PatientRepository) getPatientLockKey(id string) string {
	return fmt.Sprintf("patient_lock:%s", id)
}
