package services

import (
	"ClinicFlow/models"

	"github.com/shopspring/decimal"
)

// LineSubTotal is unit price times quantity for one line, unrounded. Prices
// carry at most two decimal places so the product is exact; rounding happens
// once, on the final total.
func LineSubTotal(item models.BillItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// ComputeTotal sums the line subtotals and rounds the result to two decimal
// places. Summation order does not affect the result.
func ComputeTotal(items []models.BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineSubTotal(item))
	}
	return total.Round(2)
}
