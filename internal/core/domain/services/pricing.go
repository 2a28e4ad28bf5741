package services

import "github.com/shopspring/decimal"

// ComputeTotals prices an order from the menu's per-person price, the
// headcount and the delivery fee.
//
// subtotal = unitPrice × headcount and total = subtotal + deliveryFee, both
// rounded to 2 decimal places with round-half-away-from-zero. All arithmetic
// is fixed-point: prices are persisted as fixed-precision decimals and binary
// floating point would drift at the cent level.
//
// The caller guarantees a positive headcount and a non-negative fee.
func ComputeTotals(unitPrice decimal.Decimal, headcount int, deliveryFee decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = unitPrice.Mul(decimal.NewFromInt(int64(headcount))).Round(2)
	total = subtotal.Add(deliveryFee).Round(2)
	return subtotal, total
}
