package cart

import (
	"printcart/internal/money"
)

// Totals is the derived view over a set of line items. All amounts are in
// the requested display currency.
type Totals struct {
	PrintingNet float64        `json:"printing_net"`
	DeliveryNet float64        `json:"delivery_net"`
	TotalNet    float64        `json:"total_net"`
	VATAmount   float64        `json:"vat_amount"`
	TotalGross  float64        `json:"total_gross"`
	ItemCount   int            `json:"item_count"`
	Currency    money.Currency `json:"currency"`
}

// Calculate recomputes cart totals from scratch over the given items. Sums
// run over the stored per-item estimates in the reference currency; the
// requested currency is applied uniformly to every amount at the end.
// Caching, if any, is the caller's business.
func Calculate(items []LineItem, currency money.Currency, rates PriceRates) Totals {
	currency = money.ParseCurrency(string(currency))

	var printing, delivery float64
	count := 0
	for _, item := range items {
		printing += item.Estimate.PrintingCost
		delivery += item.Estimate.DeliveryCost
		count += item.Quantity
	}

	totalNet := printing + delivery
	vat := money.VAT(totalNet, rates.VATRate)

	return Totals{
		PrintingNet: convert(printing, currency, rates),
		DeliveryNet: convert(delivery, currency, rates),
		TotalNet:    convert(totalNet, currency, rates),
		VATAmount:   convert(vat, currency, rates),
		TotalGross:  convert(totalNet+vat, currency, rates),
		ItemCount:   count,
		Currency:    currency,
	}
}

// ApplyDiscount returns a copy of the totals with an accepted discount
// folded into the net/VAT/gross amounts. The cart itself is never mutated
// by a discount; this is a display-time adjustment. Rejected results return
// the totals unchanged.
func (t Totals) ApplyDiscount(d DiscountResult, rates PriceRates) Totals {
	if !d.Accepted {
		return t
	}

	discounted := t.TotalNet
	switch {
	case d.Percent > 0:
		discounted = t.TotalNet * (1 - d.Percent/100)
	case d.Amount > 0:
		discounted = t.TotalNet - convert(d.Amount, t.Currency, rates)
	}
	if discounted < 0 {
		discounted = 0
	}

	out := t
	out.TotalNet = money.Round2(discounted)
	out.VATAmount = money.Round2(money.VAT(discounted, rates.VATRate))
	out.TotalGross = money.Round2(out.TotalNet + out.VATAmount)
	return out
}

func convert(amount float64, to money.Currency, rates PriceRates) float64 {
	return money.Round2(money.ConvertAt(amount, money.PLN, to, rates.EURRate))
}
