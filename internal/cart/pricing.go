package cart

import "github.com/shopspring/decimal"

// TaxRate is applied to every subtotal. It is not configurable per product or jurisdiction.
var TaxRate = decimal.RequireFromString("0.21")

// Summary holds the aggregates derived from a list of lines.
type Summary struct {
	NumberOfItems int             `json:"numberOfItems"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	Taxes         decimal.Decimal `json:"taxes"`
	Total         decimal.Decimal `json:"total"`
}

// CalculateTotals computes taxes and total for a subtotal, both rounded to cents.
func CalculateTotals(subTotal decimal.Decimal) (taxes, total decimal.Decimal) {
	raw := subTotal.Mul(TaxRate)
	return raw.Round(2), subTotal.Add(raw).Round(2)
}

// Summarize derives the aggregates of lines.
func Summarize(lines []Line) Summary {
	var (
		items    int
		subTotal = decimal.Zero
	)
	for _, l := range lines {
		items += l.Quantity
		subTotal = subTotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	taxes, total := CalculateTotals(subTotal)
	return Summary{
		NumberOfItems: items,
		SubTotal:      subTotal.Round(2),
		Taxes:         taxes,
		Total:         total,
	}
}
