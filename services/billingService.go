package services

import (
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BillStore is the persistence collaborator for bills, implemented by
// repositories.BillRepository. Create must reserve stock and persist the
// bill as one atomic unit; Delete must release it the same way.
type BillStore interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id uint) (*models.Bill, error)
	GetAll(ctx context.Context, filter repositories.BillFilter) ([]models.Bill, error)
	Update(ctx context.Context, bill *models.Bill, restock bool) error
	Delete(ctx context.Context, id uint) error
}

// InventoryCatalog resolves catalog entries when pricing bill lines.
type InventoryCatalog interface {
	GetByID(ctx context.Context, id uint) (*models.InventoryItem, error)
}

// BillUpdate carries the only fields the baseline update path supports.
// Item edits after creation are not supported.
type BillUpdate struct {
	PaymentStatus *string `json:"payment_status"`
	Notes         *string `json:"notes"`
}

// BillingService orchestrates bill validation, pricing, totals and the
// stock reservation lifecycle.
type BillingService struct {
	store   BillStore
	catalog InventoryCatalog
}

func NewBillingService(store BillStore, catalog InventoryCatalog) *BillingService {
	return &BillingService{store: store, catalog: catalog}
}

// Create validates the candidate bill, prices its catalog-bound lines from
// the live inventory, computes the derived total, and hands the result to
// the store, which reserves stock and persists atomically. Validation runs
// before any stock is touched, so a rejected bill never moves inventory.
func (s *BillingService) Create(ctx context.Context, bill *models.Bill) error {
	if bill.BillDate == "" {
		bill.BillDate = time.Now().Format(models.DateLayout)
	}
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = models.PaymentUnpaid
	}
	if bill.PaymentStatus == models.PaymentVoided {
		return validation.Errors{"payment_status": errors.New("a bill cannot be created voided")}
	}

	if err := utils.ValidateBill(bill); err != nil {
		return err
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.Catalog() {
			inv, err := s.catalog.GetByID(ctx, *item.InventoryItemID)
			if err != nil {
				return err
			}
			item.BindCatalog(inv)
		} else {
			item.SetCustom(strings.TrimSpace(item.ServiceDescription))
		}
		item.SubTotal = LineSubTotal(*item).Round(2)
	}
	bill.TotalAmount = ComputeTotal(bill.Items)

	return s.store.Create(ctx, bill)
}

func (s *BillingService) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	return s.store.GetByID(ctx, id)
}

func (s *BillingService) GetAll(ctx context.Context, filter repositories.BillFilter) ([]models.Bill, error) {
	return s.store.GetAll(ctx, filter)
}

// Update changes payment status and notes only. Voiding a bill releases the
// stock it reserved; a voided bill cannot be reopened, since its stock is
// already back on the shelf.
func (s *BillingService) Update(ctx context.Context, id uint, update BillUpdate) (*models.Bill, error) {
	if update.PaymentStatus == nil && update.Notes == nil {
		return nil, validation.Errors{"bill": errors.New("no updatable fields provided (payment_status, notes)")}
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restock := false
	if update.PaymentStatus != nil {
		next := *update.PaymentStatus
		if !models.ValidPaymentStatus(next) {
			return nil, validation.Errors{"payment_status": errors.New("unknown payment status")}
		}
		if current.PaymentStatus == models.PaymentVoided && next != models.PaymentVoided {
			return nil, validation.Errors{"payment_status": errors.New("a voided bill cannot be reopened")}
		}
		restock = next == models.PaymentVoided && current.PaymentStatus != models.PaymentVoided
		current.PaymentStatus = next
	}
	if update.Notes != nil {
		current.Notes = *update.Notes
	}

	if err := s.store.Update(ctx, current, restock); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete removes the bill; the store restores the reserved stock as part of
// the same operation.
func (s *BillingService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}
