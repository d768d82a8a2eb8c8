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
	BillCacheExpiry = 7 * 24 * time.Hour
)

// BillFilter narrows bill listings. Zero values mean no filtering.
type BillFilter struct {
	PatientID     string
	PaymentStatus string
	StartDate     string
	EndDate       string
}

func (f BillFilter) empty() bool {
	return f == BillFilter{}
}

type BillRepository struct {
	cache     *cache.Cache
	inventory *InventoryRepository
}

func NewBillRepository(cache *cache.Cache, inventory *InventoryRepository) *BillRepository {
	return &BillRepository{cache: cache, inventory: inventory}
}

// Create reserves stock for every catalog-bound line and persists the bill
// with its items as one transaction. If the insert fails after the stock
// decrement, the transaction rollback restores the stock, so a deduction is
// never left stranded. The per-item distributed locks keep two concurrent
// creations against the same catalog items from interleaving.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	lockKeys := append(r.inventory.StockLockKeys(bill.Items), r.getPatientLockKey(bill.PatientID))
	return withLocks(ctx, lockKeys, func() error {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := r.inventory.ReserveForBill(tx, bill.Items); err != nil {
				return err
			}
			if err := tx.Create(bill).Error; err != nil {
				return &models.PersistenceError{Op: "create bill", Err: err}
			}
			return nil
		})
		if err != nil {
			return err
		}
		return r.flushCaches(ctx, bill)
	})
}

func (r *BillRepository) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	cachedBill, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBill != "" {
		var bill models.Bill
		if err := json.Unmarshal([]byte(cachedBill), &bill); err == nil {
			return &bill, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get bill from cache: %v", err)
	}

	var bill models.Bill
	err = withReadRetry(func() error {
		res := database.DB.
			Preload("Items").
			Preload("Patient", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, full_name")
			}).
			First(&bill, "id = ?", id)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return res.Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "get bill", Err: err}
	}
	if bill.ID == 0 {
		return nil, &models.NotFoundError{Entity: "bill", Key: strconv.FormatUint(uint64(id), 10)}
	}

	billJSON, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bill: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, billJSON, BillCacheExpiry); err != nil {
		log.Printf("Failed to set bill in cache: %v", err)
	}

	return &bill, nil
}

// GetAll lists bills newest first. Only the unfiltered listing is cached.
func (r *BillRepository) GetAll(ctx context.Context, filter BillFilter) ([]models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "bills_cache"
	if filter.empty() {
		cachedBills, err := r.cache.Get(ctx, cacheKey)
		if err == nil && cachedBills != "" {
			var bills []models.Bill
			if err := json.Unmarshal([]byte(cachedBills), &bills); err == nil {
				return bills, nil
			}
		} else if err != nil && err != redis.Nil {
			log.Printf("Failed to get bills from cache: %v", err)
		}
	}

	var bills []models.Bill
	err := withReadRetry(func() error {
		query := database.DB.
			Preload("Items").
			Preload("Patient", func(db *gorm.DB) *gorm.DB {
				return db.Select("id, full_name")
			}).
			Order("bill_date DESC, id DESC")
		if filter.PatientID != "" {
			query = query.Where("patient_id = ?", filter.PatientID)
		}
		if filter.PaymentStatus != "" {
			query = query.Where("payment_status ILIKE ?", "%"+filter.PaymentStatus+"%")
		}
		if filter.StartDate != "" {
			query = query.Where("bill_date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("bill_date <= ?", filter.EndDate)
		}
		return query.Find(&bills).Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "list bills", Err: err}
	}

	if filter.empty() {
		billsJSON, err := json.Marshal(bills)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bills: %w", err)
		}
		if err := r.cache.Set(ctx, cacheKey, billsJSON, BillCacheExpiry); err != nil {
			log.Printf("Failed to set bills in cache: %v", err)
		}
	}

	return bills, nil
}

// Update persists payment status and notes. When restock is set (the bill
// was just voided), the stock committed at creation time is released in the
// same transaction.
func (r *BillRepository) Update(ctx context.Context, bill *models.Bill, restock bool) error {
	lockKeys := []string{r.getBillLockKey(bill.ID)}
	if restock {
		lockKeys = append(lockKeys, r.inventory.StockLockKeys(bill.Items)...)
	}
	return withLocks(ctx, lockKeys, func() error {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Bill{}).
				Where("id = ?", bill.ID).
				Updates(map[string]interface{}{
					"payment_status": bill.PaymentStatus,
					"notes":          bill.Notes,
				})
			if res.Error != nil {
				return &models.PersistenceError{Op: "update bill", Err: res.Error}
			}
			if res.RowsAffected == 0 {
				return &models.NotFoundError{Entity: "bill", Key: strconv.FormatUint(uint64(bill.ID), 10)}
			}
			if restock {
				return r.inventory.ReleaseForBill(tx, bill.Items)
			}
			return nil
		})
		if err != nil {
			return err
		}
		return r.flushCaches(ctx, bill)
	})
}

// Delete removes the bill and its items, releasing the reserved stock in the
// same transaction so each item's pre-creation quantity is restored exactly.
func (r *BillRepository) Delete(ctx context.Context, id uint) error {
	return withLock(ctx, r.getBillLockKey(id), func() error {
		var bill models.Bill
		if err := database.DB.Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "bill", Key: strconv.FormatUint(uint64(id), 10)}
			}
			return &models.PersistenceError{Op: "find bill", Err: err}
		}

		err := withLocks(ctx, r.inventory.StockLockKeys(bill.Items), func() error {
			return database.DB.Transaction(func(tx *gorm.DB) error {
				// A voided bill already gave its stock back.
				if bill.PaymentStatus != models.PaymentVoided {
					if err := r.inventory.ReleaseForBill(tx, bill.Items); err != nil {
						return err
					}
				}
				if err := tx.Delete(&models.BillItem{}, "bill_id = ?", id).Error; err != nil {
					return &models.PersistenceError{Op: "delete bill items", Err: err}
				}
				if err := tx.Delete(&models.Bill{}, "id = ?", id).Error; err != nil {
					return &models.PersistenceError{Op: "delete bill", Err: err}
				}
				return nil
			})
		})
		if err != nil {
			return err
		}
		return r.flushCaches(ctx, &bill)
	})
}

func (r *BillRepository) flushCaches(ctx context.Context, bill *models.Bill) error {
	if err := r.cache.Delete(ctx, r.getBillCacheKey(bill.ID)); err != nil {
		return fmt.Errorf("failed to delete bill cache: %w", err)
	}
	if err := r.cache.Delete(ctx, "bills_cache"); err != nil {
		return fmt.Errorf("failed to delete bills cache: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(bill.PatientID)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	if err := r.cache.DeleteAll(ctx, "patients_cache"); err != nil {
		return fmt.Errorf("failed to delete all patients cache: %w", err)
	}
	return r.inventory.FlushCache(ctx)
}

func (r *BillRepository) getBillCacheKey(id uint) string {
	return fmt.Sprintf("bill_cache:%d", id)
}

func (r *BillRepository) getBillLockKey(id uint) string {
	return fmt.Sprintf("bill_lock:%d", id)
}

func (r *BillRepository) getPatientLockKey(patientID string) string {
	return fmt.Sprintf("bill_patient_lock:%s", patientID)
}

func (r *BillRepository) getPatientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}
