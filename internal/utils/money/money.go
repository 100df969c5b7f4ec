package money

import "github.com/shopspring/decimal"

// Tolerance is the maximum accepted difference between a caller-supplied
// total and the recomputed one. Matches one cent.
var Tolerance = decimal.New(1, -2)

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// ComputeTotal derives the effective total of a title or settlement:
// principal plus additions (interest/fees) minus discounts, rounded to
// 2 decimal places.
func ComputeTotal(principal, additions, discounts decimal.Decimal) decimal.Decimal {
	return Round2(principal.Add(additions).Sub(discounts))
}

// SplitInstallments divides total into n parts that sum exactly to total.
// Parts 1..n-1 are total/n truncated to 2 decimals; the last part absorbs
// the residual.
func SplitInstallments(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	parts := make([]decimal.Decimal, n)
	if n == 1 {
		parts[0] = Round2(total)
		return parts
	}
	per := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = per
		running = running.Add(per)
	}
	parts[n-1] = Round2(total.Sub(running))
	return parts
}
