package cart

import (
	"strings"
)

// DiscountResult is the typed outcome of a code lookup. Unknown codes are a
// rejection, never an error. Exactly one of Percent or Amount is set on an
// accepted result; Amount is a net value in the reference currency.
type DiscountResult struct {
	Accepted bool    `json:"accepted"`
	Message  string  `json:"message"`
	Percent  float64 `json:"percent,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
}

// discountCodes is the fixed promotion table. Codes are stored lowercase.
var discountCodes = map[string]DiscountResult{
	"save10": {Accepted: true, Message: "10% off your order", Percent: 10},
	"print20": {Accepted: true, Message: "20% off your order", Percent: 20},
	"welcome": {Accepted: true, Message: "15 PLN off your first order", Amount: 15},
	"freeship": {Accepted: true, Message: "Delivery on us: 15.90 PLN off", Amount: 15.90},
}

// ApplyDiscount validates a discount code, case-insensitively and with
// surrounding whitespace ignored. It never touches cart state; folding the
// adjustment into displayed totals is the caller's job.
func ApplyDiscount(code string) DiscountResult {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if result, ok := discountCodes[normalized]; ok {
		return result
	}
	return DiscountResult{Message: "Invalid discount code"}
}
