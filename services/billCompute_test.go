package services

import (
	"ClinicFlow/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalRoundsOnlyAtTheEnd(t *testing.T) {
	// Three lines of 0.335 each: per-line rounding would give 0.34 x 3 = 1.02,
	// a single final rounding gives 1.01.
	items := []models.BillItem{
		{Quantity: 1, UnitPrice: price("0.335")},
		{Quantity: 1, UnitPrice: price("0.335")},
		{Quantity: 1, UnitPrice: price("0.335")},
	}
	assert.Equal(t, "1.01", ComputeTotal(items).StringFixed(2))
}

func TestComputeTotalOrderIndependent(t *testing.T) {
	items := []models.BillItem{
		{Quantity: 3, UnitPrice: price("15.00")},
		{Quantity: 1, UnitPrice: price("0.99")},
		{Quantity: 7, UnitPrice: price("4.25")},
	}
	reversed := []models.BillItem{items[2], items[1], items[0]}
	assert.True(t, ComputeTotal(items).Equal(ComputeTotal(reversed)))
	assert.Equal(t, "75.74", ComputeTotal(items).StringFixed(2))
}

func TestComputeTotalEmpty(t *testing.T) {
	assert.Equal(t, "0.00", ComputeTotal(nil).StringFixed(2))
}

func TestLineSubTotalZeroPrice(t *testing.T) {
	line := models.BillItem{Quantity: 4, UnitPrice: price("0.00")}
	assert.True(t, LineSubTotal(line).IsZero())
}
