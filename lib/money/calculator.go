package money

import "math"

// Totals holds the derived monetary fields of a payment request.
type Totals struct {
	GstAmount   float64
	TdsAmount   float64
	TotalAmount float64
}

// Round2 rounds to currency precision (2 decimal places for INR).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals derives GST, TDS and the total payable from the base amount
// and tax flags. Pure and deterministic. It never clamps; the caller validates
// that TDS does not exceed base plus GST.
func ComputeTotals(baseAmount float64, gstApplicable bool, gstPercentage float64, tdsApplicable bool, tdsPercentage float64) Totals {
	var gstAmount, tdsAmount float64
	if gstApplicable {
		gstAmount = Round2(baseAmount * gstPercentage / 100)
	}
	if tdsApplicable {
		tdsAmount = Round2(baseAmount * tdsPercentage / 100)
	}
	return Totals{
		GstAmount:   gstAmount,
		TdsAmount:   tdsAmount,
		TotalAmount: Round2(baseAmount + gstAmount - tdsAmount),
	}
}
