package utils

import (
	"ClinicFlow/models"
	"errors"
	"fmt"
	"log"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidPrice     = errors.New("unit price must not be negative")
	ErrItemKindMissing  = errors.New("either an inventory item or a service description is required")
	ErrItemKindConflict = errors.New("an item cannot carry both an inventory binding and a service description")
)

// ValidateAppointment validates the required appointment fields using
// ozzo-validation.
func ValidateAppointment(appointment models.Appointment) error {
	err := validation.ValidateStruct(&appointment,
		validation.Field(&appointment.PatientID, validation.Required),
		validation.Field(&appointment.DoctorID, validation.Required),
		validation.Field(&appointment.DateTime, validation.Required, validation.By(validateClinicTime)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validateClinicTime checks that a date-time value is parseable.
func validateClinicTime(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required handles blanks
	}
	if _, err := models.ParseClinicTime(s); err != nil {
		return errors.New("must be a valid date-time (YYYY-MM-DDTHH:MM)")
	}
	return nil
}

// ValidateBill checks a candidate bill and its items, accumulating every
// failure before returning so callers can render all offending items at once.
func ValidateBill(bill *models.Bill) error {
	errs := validation.Errors{}

	if strings.TrimSpace(bill.PatientID) == "" {
		errs["patient_id"] = errors.New("patient is required")
	}
	if bill.BillDate != "" {
		if _, err := models.ParseClinicTime(bill.BillDate); err != nil {
			errs["bill_date"] = errors.New("must be a valid date (YYYY-MM-DD)")
		}
	}
	if bill.PaymentStatus != "" && !models.ValidPaymentStatus(bill.PaymentStatus) {
		errs["payment_status"] = fmt.Errorf("unknown payment status %q", bill.PaymentStatus)
	}
	if len(bill.Items) == 0 {
		errs["bill_items"] = errors.New("at least one item is required")
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		hasCatalog := item.Catalog()
		hasCustom := strings.TrimSpace(item.ServiceDescription) != ""
		switch {
		case !hasCatalog && !hasCustom:
			errs[itemField(i, "item")] = ErrItemKindMissing
		case hasCatalog && hasCustom:
			errs[itemField(i, "item")] = ErrItemKindConflict
		}
		if item.Quantity < 1 {
			errs[itemField(i, "quantity")] = ErrInvalidQuantity
		}
		// Catalog-bound lines are priced from inventory; only a custom
		// line's caller-supplied price is worth checking.
		if !hasCatalog && item.UnitPrice.IsNegative() {
			errs[itemField(i, "unit_price")] = ErrInvalidPrice
		}
	}

	if err := errs.Filter(); err != nil {
		log.Printf("Validation error: %v\n", err)
		return err
	}
	return nil
}

func itemField(index int, field string) string {
	return fmt.Sprintf("bill_items.%d.%s", index, field)
}

// ValidateInventoryItem validates an inventory catalog entry.
func ValidateInventoryItem(item models.InventoryItem) error {
	err := validation.ValidateStruct(&item,
		validation.Field(&item.Name, validation.Required, validation.Length(1, 150)),
		validation.Field(&item.QuantityOnHand, validation.Min(0)),
		validation.Field(&item.ReorderLevel, validation.Min(0)),
		validation.Field(&item.UnitPrice, validation.By(nonNegativePrice)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

func nonNegativePrice(value interface{}) error {
	price, ok := value.(interface{ IsNegative() bool })
	if ok && price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// ValidatePatient validates patient data.
func ValidatePatient(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.FullName, validation.Required, validation.Length(1, 150)),
		validation.Field(&patient.Phone, validation.Required),
		validation.Field(&patient.Email, is.Email),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateDoctor validates doctor data.
func ValidateDoctor(doctor models.Doctor) error {
	err := validation.ValidateStruct(&doctor,
		validation.Field(&doctor.FullName, validation.Required, validation.Length(1, 150)),
		validation.Field(&doctor.Email, is.Email),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}
