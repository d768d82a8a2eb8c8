package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClinicTimeLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2026-09-14T10:30:00": time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC),
		"2026-09-14T10:30":    time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC),
		"2026-09-14 10:30:00": time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC),
		"2026-09-14 10:30":    time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC),
		"2026-09-14":          time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
	}
	for value, want := range cases {
		got, err := ParseClinicTime(value)
		require.NoError(t, err, value)
		assert.True(t, got.Equal(want), "%s parsed to %v", value, got)
	}

	_, err := ParseClinicTime("14/09/2026")
	assert.Error(t, err)
	_, err = ParseClinicTime("")
	assert.Error(t, err)
}

func TestAppointmentDayStripsTime(t *testing.T) {
	appointment := Appointment{DateTime: "2026-09-14T16:45"}
	day, err := appointment.Day()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC), day)
}

func TestInventoryItemDepletable(t *testing.T) {
	consumable := InventoryItem{Category: "Consumable"}
	service := InventoryItem{Category: CategoryService}
	assert.True(t, consumable.Depletable())
	assert.False(t, service.Depletable())
}

func TestInventoryItemLowStock(t *testing.T) {
	assert.True(t, (&InventoryItem{QuantityOnHand: 2, ReorderLevel: 2}).LowStock())
	assert.True(t, (&InventoryItem{QuantityOnHand: 0, ReorderLevel: 2}).LowStock())
	assert.False(t, (&InventoryItem{QuantityOnHand: 3, ReorderLevel: 2}).LowStock())
}

func TestBillItemBindCatalogOverridesClientInput(t *testing.T) {
	inv := InventoryItem{ID: 9, Name: "Suture Kit", UnitPrice: decimal.RequireFromString("12.50")}
	item := BillItem{
		ServiceDescription: "client typed this",
		UnitPrice:          decimal.RequireFromString("1.00"),
		Quantity:           2,
	}
	item.BindCatalog(&inv)

	require.True(t, item.Catalog())
	assert.Equal(t, uint(9), *item.InventoryItemID)
	assert.Equal(t, "12.50", item.UnitPrice.StringFixed(2))
	assert.Empty(t, item.ServiceDescription)
}

func TestBillItemSetCustomDropsBinding(t *testing.T) {
	id := uint(9)
	item := BillItem{
		InventoryItemID: &id,
		UnitPrice:       decimal.RequireFromString("30.00"),
		Quantity:        1,
	}
	item.SetCustom("Night guard fitting")

	assert.False(t, item.Catalog())
	assert.Nil(t, item.InventoryItemID)
	assert.Equal(t, "Night guard fitting", item.ServiceDescription)
	assert.Equal(t, "30.00", item.UnitPrice.StringFixed(2), "the entered price stands")
}
