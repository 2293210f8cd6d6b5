package simulation

import "math"

// MonthlyPayment computes the fixed monthly installment for a loan using the
// standard amortization formula P*r*(1+r)^n / ((1+r)^n - 1), where r is the
// monthly rate as a fraction and n the term in months. The result is
// truncated to a whole currency unit.
//
// Rate and term must be strictly positive; intake validation guarantees this
// for stored requests, and quoting callers are expected to do the same.
func MonthlyPayment(amount int64, annualRate float64, termYears int32) int64 {
	p := float64(amount)
	r := annualRate / 12 / 100
	n := float64(termYears) * 12
	pow := math.Pow(1+r, n)
	return int64(p * (r * pow) / (pow - 1))
}
