package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment date-times are stored as local wall-clock strings; no timezone
// arithmetic is performed anywhere, comparisons are by calendar day.
const (
	DateTimeLayout = "2006-01-02T15:04"
	DateLayout     = "2006-01-02"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	DateTimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseClinicTime parses a stored date-time value in any of the accepted layouts.
func ParseClinicTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Doctor model
type Doctor struct {
	ID                string        `gorm:"primaryKey;column:id" json:"id"`
	FullName          string        `gorm:"column:full_name;not null;index" json:"full_name"`
	Specialty         string        `gorm:"column:specialty" json:"specialty"`
	Email             string        `gorm:"column:email" json:"email"`
	Phone             string        `gorm:"column:phone" json:"phone"`
	AvailabilityNotes string        `gorm:"column:availability_notes" json:"availability_notes"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments      []Appointment `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// DisplayName returns the name shown on calendar cells and bills.
func (d *Doctor) DisplayName() string {
	return d.FullName
}

// Patient model
type Patient struct {
	ID                    string        `gorm:"primaryKey;column:id" json:"id"`
	FullName              string        `gorm:"column:full_name;not null;index" json:"full_name"`
	Email                 string        `gorm:"column:email" json:"email"`
	Phone                 string        `gorm:"column:phone;not null" json:"phone"`
	DateOfBirth           string        `gorm:"column:date_of_birth" json:"date_of_birth"`
	Address               string        `gorm:"column:address" json:"address"`
	MedicalHistorySummary string        `gorm:"column:medical_history_summary" json:"medical_history_summary"`
	CreatedAt             time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments          []Appointment `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Bills                 []Bill        `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

func (p *Patient) DisplayName() string {
	return p.FullName
}

// Appointment model
type Appointment struct {
	ID        uint              `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID string            `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID  string            `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	DateTime  string            `gorm:"column:date_time;not null;index" json:"date_time"`
	Status    AppointmentStatus `gorm:"column:status;check:status IN ('Scheduled', 'Confirmed', 'Cancelled', 'Completed');not null" json:"status"`
	Notes     string            `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient   Patient           `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor    Doctor            `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// When returns the parsed appointment date-time.
func (a *Appointment) When() (time.Time, error) {
	return ParseClinicTime(a.DateTime)
}

// Day returns the appointment's calendar day, time-of-day stripped.
func (a *Appointment) Day() (time.Time, error) {
	t, err := a.When()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// CategoryService marks catalog entries that carry no depletable stock.
const CategoryService = "Service"

// InventoryItem model
type InventoryItem struct {
	ID             uint            `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	Name           string          `gorm:"column:name;unique;not null" json:"name"`
	Category       string          `gorm:"column:category;index" json:"category"`
	Description    string          `gorm:"column:description" json:"description"`
	QuantityOnHand int             `gorm:"column:quantity_on_hand;not null;default:0;check:quantity_on_hand >= 0" json:"quantity_on_hand"`
	ReorderLevel   int             `gorm:"column:reorder_level;default:0" json:"reorder_level"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	SupplierInfo   string          `gorm:"column:supplier_info" json:"supplier_info"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_item"
}

// Depletable reports whether billing this item moves stock.
func (i *InventoryItem) Depletable() bool {
	return i.Category != CategoryService
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i *InventoryItem) LowStock() bool {
	return i.QuantityOnHand <= i.ReorderLevel
}

// Bill payment statuses
const (
	PaymentUnpaid        = "Unpaid"
	PaymentPaid          = "Paid"
	PaymentPartiallyPaid = "Partially Paid"
	PaymentVoided        = "Voided"
)

// ValidPaymentStatus reports whether s is one of the closed payment statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentPartiallyPaid, PaymentVoided:
		return true
	}
	return false
}

// Bill model. TotalAmount is derived from the items and recomputed on every
// create; it is never trusted from the caller.
type Bill struct {
	ID            uint            `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID     string          `gorm:"column:patient_id;not null;index" json:"patient_id"`
	BillDate      string          `gorm:"column:bill_date;not null;index" json:"bill_date"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	PaymentStatus string          `gorm:"column:payment_status;check:payment_status IN ('Unpaid', 'Paid', 'Partially Paid', 'Voided');not null" json:"payment_status"`
	Notes         string          `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Items         []BillItem      `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE" json:"bill_items"`
	Patient       Patient         `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Bill) TableName() string {
	return "bill"
}

// BillItem model. Exactly one of InventoryItemID and ServiceDescription is
// populated; assigning one clears the other.
type BillItem struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BillID             uint            `gorm:"column:bill_id;not null;index" json:"bill_id"`
	InventoryItemID    *uint           `gorm:"column:inventory_item_id;index" json:"inventory_item_id"`
	ServiceDescription string          `gorm:"column:service_description" json:"service_description"`
	Quantity           int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	SubTotal           decimal.Decimal `gorm:"column:sub_total;type:decimal(10,2);not null" json:"sub_total"`
	InventoryItem      *InventoryItem  `gorm:"foreignKey:InventoryItemID;references:ID" json:"-"`
}

func (BillItem) TableName() string {
	return "bill_item"
}

// Catalog reports whether the item is bound to an inventory catalog entry.
func (it *BillItem) Catalog() bool {
	return it.InventoryItemID != nil
}

// BindCatalog binds the line to an inventory item. The unit price is always
// taken from the catalog entry and the custom description is cleared.
func (it *BillItem) BindCatalog(inv *InventoryItem) {
	id := inv.ID
	it.InventoryItemID = &id
	it.UnitPrice = inv.UnitPrice
	it.ServiceDescription = ""
}

// SetCustom turns the line into a free-text service entry, dropping any
// catalog binding so the entered unit price stands.
func (it *BillItem) SetCustom(description string) {
	it.ServiceDescription = description
	it.InventoryItemID = nil
	it.InventoryItem = nil
}
