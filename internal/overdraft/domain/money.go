package domain

import "math"

// Cents is a monetary amount in integer hundredths of the currency unit.
// Limits are stored and compared as integers; conversion to the decimal
// wire representation happens only at the HTTP boundary.
type Cents int64

// CentsFromDecimal converts a decimal amount (e.g. 5000.00) to Cents,
// rounding to the nearest cent.
func CentsFromDecimal(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Decimal renders the amount as a decimal number for JSON responses.
func (c Cents) Decimal() float64 {
	return float64(c) / 100
}
