package money

import (
	"fmt"
	"math"
	"strings"
)

// Currency codes supported by the shop.
const (
	PLN Currency = "PLN"
	EUR Currency = "EUR"
)

const (
	// DefaultVATRate is the Polish standard VAT rate.
	DefaultVATRate = 0.23

	// DefaultEURRate is how many PLN one EUR buys. Stored prices are
	// always net PLN; conversion happens at read time.
	DefaultEURRate = 4.30
)

type Currency string

// ParseCurrency normalizes a currency code. Unknown codes fall back to PLN.
func ParseCurrency(code string) Currency {
	switch Currency(strings.ToUpper(strings.TrimSpace(code))) {
	case EUR:
		return EUR
	default:
		return PLN
	}
}

// Convert converts an amount between the two supported currencies using the
// package default exchange rate. Same-currency conversion is the identity.
func Convert(amount float64, from, to Currency) float64 {
	return ConvertAt(amount, from, to, DefaultEURRate)
}

// ConvertAt converts using an explicit PLN-per-EUR rate.
func ConvertAt(amount float64, from, to Currency, eurRate float64) float64 {
	if from == to || eurRate <= 0 {
		return amount
	}
	if from == PLN && to == EUR {
		return amount / eurRate
	}
	if from == EUR && to == PLN {
		return amount * eurRate
	}
	return amount
}

// VAT returns the tax portion for a net amount.
func VAT(net, rate float64) float64 {
	return net * rate
}

// Gross returns the VAT-inclusive amount for a net amount.
func Gross(net, rate float64) float64 {
	return net + VAT(net, rate)
}

// Net recovers the pre-VAT amount from a gross amount.
func Net(gross, rate float64) float64 {
	if rate <= -1 {
		return gross
	}
	return gross / (1 + rate)
}

// Round2 rounds to two decimal places, the display precision for both
// supported currencies.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders an amount with its currency code, e.g. "120.00 PLN".
func Format(amount float64, currency Currency) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
