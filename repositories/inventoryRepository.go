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
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	InventoryCacheExpiry = 7 * 24 * time.Hour
)

type InventoryRepository struct {
	cache *cache.Cache
}

func NewInventoryRepository(cache *cache.Cache) *InventoryRepository {
	return &InventoryRepository{cache: cache}
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	err := database.DB.Create(item).Error
	if err != nil {
		return &models.PersistenceError{Op: "create inventory item", Err: err}
	}
	return r.FlushCache(ctx)
}

func (r *InventoryRepository) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getItemCacheKey(id)
	cachedItem, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedItem != "" {
		var item models.InventoryItem
		if err := json.Unmarshal([]byte(cachedItem), &item); err == nil {
			return &item, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get inventory item from cache: %v", err)
	}

	var item models.InventoryItem
	err = withReadRetry(func() error {
		res := database.DB.First(&item, "id = ?", id)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return res.Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "get inventory item", Err: err}
	}
	if item.ID == 0 {
		return nil, &models.NotFoundError{Entity: "inventory item", Key: strconv.FormatUint(uint64(id), 10)}
	}

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inventory item: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, itemJSON, InventoryCacheExpiry); err != nil {
		log.Printf("Failed to set inventory item in cache: %v", err)
	}

	return &item, nil
}

// GetAll lists catalog entries, optionally filtered by category substring and
// low-stock state. Only the unfiltered listing is cached.
func (r *InventoryRepository) GetAll(ctx context.Context, category string, lowStockOnly bool) ([]models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filtered := category != "" || lowStockOnly
	cacheKey := "inventory_cache"
	if !filtered {
		cachedItems, err := r.cache.Get(ctx, cacheKey)
		if err == nil && cachedItems != "" {
			var items []models.InventoryItem
			if err := json.Unmarshal([]byte(cachedItems), &items); err == nil {
				return items, nil
			}
		} else if err != nil && err != redis.Nil {
			log.Printf("Failed to get inventory items from cache: %v", err)
		}
	}

	var items []models.InventoryItem
	err := withReadRetry(func() error {
		query := database.DB.Order("name ASC")
		if category != "" {
			query = query.Where("category ILIKE ?", "%"+category+"%")
		}
		if lowStockOnly {
			query = query.Where("quantity_on_hand <= reorder_level")
		}
		return query.Find(&items).Error
	})
	if err != nil {
		return nil, &models.PersistenceError{Op: "list inventory items", Err: err}
	}

	if !filtered {
		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal inventory items: %w", err)
		}
		if err := r.cache.Set(ctx, cacheKey, itemsJSON, InventoryCacheExpiry); err != nil {
			log.Printf("Failed to set inventory items in cache: %v", err)
		}
	}

	return items, nil
}

// LowStock lists items at or below their configured reorder threshold.
func (r *InventoryRepository) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return r.GetAll(ctx, "", true)
}

func (r *InventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	return withLock(ctx, r.getItemLockKey(item.ID), func() error {
		if err := database.DB.Save(item).Error; err != nil {
			return &models.PersistenceError{Op: "update inventory item", Err: err}
		}
		return r.FlushCache(ctx)
	})
}

func (r *InventoryRepository) Delete(ctx context.Context, id uint) error {
	return withLock(ctx, r.getItemLockKey(id), func() error {
		if err := database.DB.Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
			return &models.PersistenceError{Op: "delete inventory item", Err: err}
		}
		return r.FlushCache(ctx)
	})
}

// stockMove is one aggregated stock mutation for a reservation or release.
type stockMove struct {
	itemID   uint
	quantity int
}

// movesFor folds the catalog-bound lines of a bill into one move per
// inventory item, ordered by item id so lock and update order is stable.
func movesFor(items []models.BillItem) []stockMove {
	byItem := make(map[uint]int)
	for _, item := range items {
		if item.InventoryItemID == nil {
			continue
		}
		byItem[*item.InventoryItemID] += item.Quantity
	}
	moves := make([]stockMove, 0, len(byItem))
	for id, qty := range byItem {
		moves = append(moves, stockMove{itemID: id, quantity: qty})
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].itemID < moves[j].itemID })
	return moves
}

// ReserveForBill decrements quantity-on-hand for every catalog-bound line.
// It runs inside the caller's transaction: any failure aborts the whole
// transaction, so no partial deduction is ever left in place. The decrement
// carries a floor check so stock can never go negative, even under
// concurrent reservations against the same item.
func (r *InventoryRepository) ReserveForBill(tx *gorm.DB, items []models.BillItem) error {
	for _, move := range movesFor(items) {
		var inv models.InventoryItem
		if err := tx.First(&inv, "id = ?", move.itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "inventory item", Key: strconv.FormatUint(uint64(move.itemID), 10)}
			}
			return &models.PersistenceError{Op: "load inventory item", Err: err}
		}
		if !inv.Depletable() {
			continue
		}

		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity_on_hand >= ?", move.itemID, move.quantity).
			UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", move.quantity))
		if res.Error != nil {
			return &models.PersistenceError{Op: "reserve stock", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return &models.InsufficientStockError{
				ItemID:    inv.ID,
				Name:      inv.Name,
				Requested: move.quantity,
				Available: inv.QuantityOnHand,
			}
		}
	}
	return nil
}

// ReleaseForBill is the exact inverse of ReserveForBill: it restores the
// stock committed when the bill was created. Used on bill deletion and when
// a bill is voided.
func (r *InventoryRepository) ReleaseForBill(tx *gorm.DB, items []models.BillItem) error {
	for _, move := range movesFor(items) {
		var inv models.InventoryItem
		if err := tx.First(&inv, "id = ?", move.itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The catalog entry was removed after billing; nothing to restock.
				continue
			}
			return &models.PersistenceError{Op: "load inventory item", Err: err}
		}
		if !inv.Depletable() {
			continue
		}

		res := tx.Model(&models.InventoryItem{}).
			Where("id = ?", move.itemID).
			UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", move.quantity))
		if res.Error != nil {
			return &models.PersistenceError{Op: "release stock", Err: res.Error}
		}
	}
	return nil
}

// StockLockKeys returns the distributed-lock keys guarding the catalog items
// a bill touches, deduplicated and in stable order.
func (r *InventoryRepository) StockLockKeys(items []models.BillItem) []string {
	moves := movesFor(items)
	keys := make([]string, 0, len(moves))
	for _, move := range moves {
		keys = append(keys, r.getItemLockKey(move.itemID))
	}
	return keys
}

// FlushCache invalidates all cached inventory reads. Called after any write,
// including stock moves performed by bill creation and deletion.
func (r *InventoryRepository) FlushCache(ctx context.Context) error {
	if err := r.cache.DeleteAll(ctx, "inventory_item_cache:*"); err != nil {
		return fmt.Errorf("failed to delete inventory item caches: %w", err)
	}
	return r.cache.Delete(ctx, "inventory_cache")
}

func (r *InventoryRepository) getItemCacheKey(id uint) string {
	return fmt.Sprintf("inventory_item_cache:%d", id)
}

func (r *InventoryRepository) getItemLockKey(id uint) string {
	return fmt.Sprintf("inventory_lock:%d", id)
}
