package utils

import (
	"ClinicFlow/models"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var errs validation.Errors
	require.True(t, errors.As(err, &errs), "expected validation.Errors, got %T", err)
	return errs
}

func TestValidateAppointment(t *testing.T) {
	valid := models.Appointment{PatientID: "p1", DoctorID: "d1", DateTime: "2026-09-14T10:30"}
	require.NoError(t, ValidateAppointment(valid))

	missing := models.Appointment{DateTime: "bogus"}
	errs := fieldErrors(t, ValidateAppointment(missing))
	assert.Contains(t, errs, "patient_id")
	assert.Contains(t, errs, "doctor_id")
	assert.Contains(t, errs, "date_time")
}

func TestValidateBillAccumulatesAllItemErrors(t *testing.T) {
	item1 := uint(1)
	bill := models.Bill{
		BillDate:      "31/08/2026",
		PaymentStatus: "Refunded",
		Items: []models.BillItem{
			{InventoryItemID: &item1, ServiceDescription: "also custom", Quantity: 1},
			{Quantity: 0},
			{ServiceDescription: "X-Ray", Quantity: 2, UnitPrice: decimal.NewFromFloat(-1)},
		},
	}
	errs := fieldErrors(t, ValidateBill(&bill))

	assert.Contains(t, errs, "patient_id")
	assert.Contains(t, errs, "bill_date")
	assert.Contains(t, errs, "payment_status")
	assert.ErrorIs(t, errs["bill_items.0.item"], ErrItemKindConflict)
	assert.ErrorIs(t, errs["bill_items.1.item"], ErrItemKindMissing)
	assert.ErrorIs(t, errs["bill_items.1.quantity"], ErrInvalidQuantity)
	assert.ErrorIs(t, errs["bill_items.2.unit_price"], ErrInvalidPrice)
}

func TestValidateBillRequiresItems(t *testing.T) {
	bill := models.Bill{PatientID: "p1", BillDate: "2026-08-30"}
	errs := fieldErrors(t, ValidateBill(&bill))
	assert.Contains(t, errs, "bill_items")
}

func TestValidateBillIgnoresSuppliedPriceOnCatalogLines(t *testing.T) {
	// A catalog-bound line is priced from inventory, so whatever price the
	// caller typed is irrelevant and must not fail validation.
	item4 := uint(4)
	bill := models.Bill{
		PatientID: "p1",
		BillDate:  "2026-08-30",
		Items: []models.BillItem{
			{InventoryItemID: &item4, Quantity: 2, UnitPrice: decimal.NewFromFloat(-9.99)},
		},
	}
	require.NoError(t, ValidateBill(&bill))
}

func TestValidateBillAcceptsCatalogAndCustomLines(t *testing.T) {
	item2 := uint(2)
	bill := models.Bill{
		PatientID: "p1",
		BillDate:  "2026-08-30",
		Items: []models.BillItem{
			{InventoryItemID: &item2, Quantity: 3},
			{ServiceDescription: "Consultation", Quantity: 1, UnitPrice: decimal.Zero},
		},
	}
	require.NoError(t, ValidateBill(&bill))
}

func TestValidateInventoryItem(t *testing.T) {
	require.NoError(t, ValidateInventoryItem(models.InventoryItem{
		Name: "Gauze Pack", QuantityOnHand: 10, ReorderLevel: 2, UnitPrice: decimal.NewFromFloat(1.50),
	}))

	errs := fieldErrors(t, ValidateInventoryItem(models.InventoryItem{
		QuantityOnHand: -1, UnitPrice: decimal.NewFromFloat(-2),
	}))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "quantity_on_hand")
	assert.Contains(t, errs, "unit_price")
}

func TestValidatePatient(t *testing.T) {
	require.NoError(t, ValidatePatient(models.Patient{FullName: "Jane Mwangi", Phone: "0712345678"}))

	errs := fieldErrors(t, ValidatePatient(models.Patient{Email: "not-an-email"}))
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "email")
}
