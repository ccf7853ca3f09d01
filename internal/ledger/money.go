package ledger

import "github.com/shopspring/decimal"

// Money is an amount in minor currency units (pence, cents).
type Money int64

// Major formats the amount in major units with exactly two decimals, e.g. 1234 -> "12.34".
func (m Money) Major() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}
