package services

import (
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"sort"
	"strconv"
	"sync"
)

// fakeAppointmentStore is an in-memory AppointmentStore.
type fakeAppointmentStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]models.Appointment
	updates int
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{records: make(map[uint]models.Appointment)}
}

func (s *fakeAppointmentStore) Create(ctx context.Context, appointment *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	appointment.ID = s.nextID
	s.records[appointment.ID] = *appointment
	return nil
}

func (s *fakeAppointmentStore) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "appointment", Key: strconv.FormatUint(uint64(id), 10)}
	}
	copied := record
	return &copied, nil
}

func (s *fakeAppointmentStore) GetAll(ctx context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Appointment, 0, len(s.records))
	for _, record := range s.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *fakeAppointmentStore) Update(ctx context.Context, appointment *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[appointment.ID]; !ok {
		return &models.NotFoundError{Entity: "appointment", Key: strconv.FormatUint(uint64(appointment.ID), 10)}
	}
	s.records[appointment.ID] = *appointment
	s.updates++
	return nil
}

func (s *fakeAppointmentStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// fakeInventory doubles as the InventoryCatalog and the stock book the
// fake bill store moves quantities against.
type fakeInventory struct {
	mu    sync.Mutex
	items map[uint]models.InventoryItem
}

func newFakeInventory(items ...models.InventoryItem) *fakeInventory {
	inv := &fakeInventory{items: make(map[uint]models.InventoryItem)}
	for _, item := range items {
		inv.items[item.ID] = item
	}
	return inv
}

func (f *fakeInventory) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "inventory item", Key: strconv.FormatUint(uint64(id), 10)}
	}
	copied := item
	return &copied, nil
}

func (f *fakeInventory) stock(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].QuantityOnHand
}

// reserve deducts all moves atomically under the lock, or none of them.
func (f *fakeInventory) reserve(items []models.BillItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	moves := aggregateMoves(items)
	for _, move := range moves {
		item, ok := f.items[move.id]
		if !ok {
			return &models.NotFoundError{Entity: "inventory item", Key: strconv.FormatUint(uint64(move.id), 10)}
		}
		if !item.Depletable() {
			continue
		}
		if item.QuantityOnHand < move.quantity {
			return &models.InsufficientStockError{
				ItemID:    item.ID,
				Name:      item.Name,
				Requested: move.quantity,
				Available: item.QuantityOnHand,
			}
		}
	}
	for _, move := range moves {
		item := f.items[move.id]
		if !item.Depletable() {
			continue
		}
		item.QuantityOnHand -= move.quantity
		f.items[move.id] = item
	}
	return nil
}

func (f *fakeInventory) release(items []models.BillItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, move := range aggregateMoves(items) {
		item, ok := f.items[move.id]
		if !ok || !item.Depletable() {
			continue
		}
		item.QuantityOnHand += move.quantity
		f.items[move.id] = item
	}
}

type fakeMove struct {
	id       uint
	quantity int
}

func aggregateMoves(items []models.BillItem) []fakeMove {
	byItem := make(map[uint]int)
	for _, item := range items {
		if item.InventoryItemID == nil {
			continue
		}
		byItem[*item.InventoryItemID] += item.Quantity
	}
	moves := make([]fakeMove, 0, len(byItem))
	for id, quantity := range byItem {
		moves = append(moves, fakeMove{id: id, quantity: quantity})
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].id < moves[j].id })
	return moves
}

// fakeBillStore is an in-memory BillStore honoring the atomicity contract:
// Create reserves stock and persists as one unit, and a persistence failure
// after the reservation releases it again.
type fakeBillStore struct {
	mu         sync.Mutex
	nextID     uint
	bills      map[uint]models.Bill
	inventory  *fakeInventory
	failCreate error
}

func newFakeBillStore(inventory *fakeInventory) *fakeBillStore {
	return &fakeBillStore{bills: make(map[uint]models.Bill), inventory: inventory}
}

func (s *fakeBillStore) Create(ctx context.Context, bill *models.Bill) error {
	if err := s.inventory.reserve(bill.Items); err != nil {
		return err
	}
	if s.failCreate != nil {
		// Compensating release, mirroring the production transaction rollback.
		s.inventory.release(bill.Items)
		return &models.PersistenceError{Op: "create bill", Err: s.failCreate}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	bill.ID = s.nextID
	s.bills[bill.ID] = *bill
	return nil
}

func (s *fakeBillStore) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, ok := s.bills[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "bill", Key: strconv.FormatUint(uint64(id), 10)}
	}
	copied := bill
	return &copied, nil
}

func (s *fakeBillStore) GetAll(ctx context.Context, filter repositories.BillFilter) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Bill, 0, len(s.bills))
	for _, bill := range s.bills {
		if filter.PatientID != "" && bill.PatientID != filter.PatientID {
			continue
		}
		all = append(all, bill)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *fakeBillStore) Update(ctx context.Context, bill *models.Bill, restock bool) error {
	s.mu.Lock()
	if _, ok := s.bills[bill.ID]; !ok {
		s.mu.Unlock()
		return &models.NotFoundError{Entity: "bill", Key: strconv.FormatUint(uint64(bill.ID), 10)}
	}
	s.bills[bill.ID] = *bill
	s.mu.Unlock()
	if restock {
		s.inventory.release(bill.Items)
	}
	return nil
}

func (s *fakeBillStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	bill, ok := s.bills[id]
	if !ok {
		s.mu.Unlock()
		return &models.NotFoundError{Entity: "bill", Key: strconv.FormatUint(uint64(id), 10)}
	}
	delete(s.bills, id)
	s.mu.Unlock()
	if bill.PaymentStatus != models.PaymentVoided {
		s.inventory.release(bill.Items)
	}
	return nil
}
