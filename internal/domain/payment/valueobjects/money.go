package valueobjects

import "fmt"

const CurrencyIDR = "IDR"

// Money is an amount in whole currency units. Rupiah has no minor unit in practice, so
// amounts are never fractional.
type Money struct {
	amount   int64
	currency string
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = CurrencyIDR
	}
	return Money{amount: amount, currency: currency}
}

func NewIDR(amount int64) Money {
	return NewMoney(amount, CurrencyIDR)
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%s %d", m.currency, m.amount)
}
