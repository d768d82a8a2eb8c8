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
	DoctorCacheExpiry = 7 * 24 * time.Hour
)

type DoctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := database.DB.Create(doctor).Error; err != nil {
		return &models.PersistenceError{Op: "create doctor", Err: err}
	}
	return r.flushCaches(ctx, doctor.ID)
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorCacheKey(id)
	cachedDoctor, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDoctor != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctor), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = withReadRetry(func() error {
		res := database.DB.First(&doctor, "id = ?", id)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return res.Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "get doctor", Err: err}
	}
	if doctor.ID == "" {
		return nil, &models.NotFoundError{Entity: "doctor", Key: id}
	}

	doctorJSON, err := json.Marshal(doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctor: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}

	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "doctors_cache"
	cachedDoctors, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDoctors != "" {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctors), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	err = withReadRetry(func() error {
		return database.DB.Order("full_name ASC").Find(&doctors).Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "list doctors", Err: err}
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctors: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}

	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return withLock(ctx, r.getDoctorLockKey(doctor.ID), func() error {
		if err := database.DB.Save(doctor).Error; err != nil {
			return &models.PersistenceError{Op: "update doctor", Err: err}
		}
		return r.flushCaches(ctx, doctor.ID)
	})
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	return withLock(ctx, r.getDoctorLockKey(id), func() error {
		if err := database.DB.Delete(&models.Doctor{}, "id = ?", id).Error; err != nil {
			return &models.PersistenceError{Op: "delete doctor", Err: err}
		}
		return r.flushCaches(ctx, id)
	})
}

func (r *DoctorRepository) flushCaches(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getDoctorCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete doctor cache: %w", err)
	}
	return r.cache.Delete(ctx, "doctors_cache")
}

func (r *DoctorRepository) getDoctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}

func (r *DoctorRepository) getDoctorLockKey(id string) string {
	return fmt.Sprintf("doctor_lock:%s", id)
}
