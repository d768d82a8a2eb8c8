package services

import (
	"ClinicFlow/models"
	"ClinicFlow/utils"
	"context"
)

// InventoryStore is the persistence collaborator for the inventory catalog,
// implemented by repositories.InventoryRepository.
type InventoryStore interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	GetAll(ctx context.Context, category string, lowStockOnly bool) ([]models.InventoryItem, error)
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uint) error
}

type InventoryService struct {
	store InventoryStore
}

func NewInventoryService(store InventoryStore) *InventoryService {
	return &InventoryService{store: store}
}

func (s *InventoryService) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := utils.ValidateInventoryItem(*item); err != nil {
		return err
	}
	return s.store.Create(ctx, item)
}

func (s *InventoryService) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	return s.store.GetByID(ctx, id)
}

func (s *InventoryService) GetAll(ctx context.Context, category string, lowStockOnly bool) ([]models.InventoryItem, error) {
	return s.store.GetAll(ctx, category, lowStockOnly)
}

// LowStock lists items at or below their reorder threshold. Low stock never
// blocks billing; it only feeds reporting.
func (s *InventoryService) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return s.store.LowStock(ctx)
}

func (s *InventoryService) Update(ctx context.Context, item *models.InventoryItem) error {
	if err := utils.ValidateInventoryItem(*item); err != nil {
		return err
	}
	return s.store.Update(ctx, item)
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}
