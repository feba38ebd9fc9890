package serviceorder

import "github.com/shopspring/decimal"

// CalculateTotal returns sum(item totals) + laborCost - discount.
// A negative result is clamped to zero and reported through clamped.
func CalculateTotal(items []*Item, laborCost, discount decimal.Decimal) (total decimal.Decimal, clamped bool) {
	total = laborCost.Sub(discount)
	for _, it := range items {
		total = total.Add(it.TotalPrice())
	}
	if total.IsNegative() {
		return decimal.Zero, true
	}
	return total, false
}
