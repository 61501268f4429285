package services

// CalcCombinationTotal sums the unit prices of the chosen options.
func CalcCombinationTotal(options map[string]Option) float64 {
	var sum float64
	for _, o := range options {
		sum += o.UnitPrice
	}
	return sum
}

// CalcEffectiveUnitPrice returns the price used on a quote line. With a
// derivable area the total is normalized to a price per m²; otherwise it is
// the price per piece unchanged. The unit of the result therefore depends
// only on whether the combination carried dimensions.
func CalcEffectiveUnitPrice(totalPrice, area float64) float64 {
	if area > 0 {
		return totalPrice / area
	}
	return totalPrice
}

// CalcLineTotal returns unit price × max(area, 1) × quantity.
func CalcLineTotal(unitPrice, area, qty float64) float64 {
	return unitPrice * max(area, 1) * qty
}

// QuoteTotals summarizes a list of quote lines.
type QuoteTotals struct {
	LineCount  int
	Quantity   float64
	TotalArea  float64
	GrandTotal float64
}

// CalcQuoteTotals sums quantities, area and line totals. Area counts once per
// unit of quantity.
func CalcQuoteTotals(lines []QuoteLine) QuoteTotals {
	var totals QuoteTotals
	for _, l := range lines {
		totals.LineCount++
		totals.Quantity += l.Quantity
		totals.TotalArea += l.Area * l.Quantity
		totals.GrandTotal += l.TotalPrice
	}
	return totals
}
