package cart

import (
	"strings"

	"printcart/internal/money"
)

// PriceRates carries the pricing knobs that are deployment configuration
// rather than catalog data.
type PriceRates struct {
	BaseUnitRate float64 // fallback per-unit net rate when the catalog gives none
	DeliveryFee  float64 // flat fee per line, not quantity-dependent
	VATRate      float64
	EURRate      float64 // PLN per EUR
}

// DefaultPriceRates returns the platform defaults.
func DefaultPriceRates() PriceRates {
	return PriceRates{
		BaseUnitRate: 0.25,
		DeliveryFee:  15.90,
		VATRate:      money.DefaultVATRate,
		EURRate:      money.DefaultEURRate,
	}
}

// Estimate is the priced breakdown for one configured line. Amounts are net,
// in the reference currency.
type Estimate struct {
	UnitPrice    float64        `json:"unit_price"`
	PrintingCost float64        `json:"printing_cost"`
	DeliveryCost float64        `json:"delivery_cost"`
	NetPrice     float64        `json:"net_price"`
	Currency     money.Currency `json:"currency"`
}

type adjustment struct {
	match      string
	multiplier float64
}

// Adjustment tables are scanned top to bottom; the first substring match on
// an axis wins. An axis with no match keeps the running unit price. Heavier
// entries sit above lighter ones so e.g. "350" is tried before "50".
var formatAdjustments = []adjustment{
	{"a2", 1.80},
	{"a3", 1.40},
	{"a5", 0.85},
	{"a6", 0.70},
	{"dl", 0.75},
}

var paperAdjustments = []adjustment{
	{"350", 1.35},
	{"300", 1.30},
	{"250", 1.20},
	{"170", 1.10},
	{"90", 0.90},
	{"80", 0.85},
}

var colorAdjustments = []adjustment{
	{"4/4", 1.25},
	{"1/1", 0.90},
	{"1/0", 0.80},
}

// Known finishings and their multipliers. Unrecognized finishings still
// cost something.
var finishingMultipliers = map[string]float64{
	"matte-lamination":  1.15,
	"glossy-lamination": 1.12,
	"soft-touch-foil":   1.25,
	"uv-varnish":        1.10,
	"rounded-corners":   1.05,
	"creasing":          1.08,
}

const defaultFinishingMultiplier = 1.05

// Price computes the configuration-aware estimate for one line.
//
// The unit price starts from basePrice (falling back to the platform base
// rate when non-positive) and is scaled by the format, paper and color
// adjustments in that order, then by one multiplier per finishing in the
// order the finishings appear. Printing cost scales with quantity; delivery
// is a flat fee. The function is pure and assumes quantity >= 1 — the store
// clamps quantities before they reach it.
func Price(quantity int, cfg Configuration, basePrice float64, rates PriceRates) Estimate {
	unit := basePrice
	if unit <= 0 {
		unit = rates.BaseUnitRate
	}

	unit *= axisMultiplier(cfg.Format, formatAdjustments)
	unit *= axisMultiplier(cfg.Paper, paperAdjustments)
	unit *= axisMultiplier(cfg.Colors, colorAdjustments)

	for _, finishing := range cfg.Finishings {
		unit *= finishingMultiplier(finishing)
	}

	printing := money.Round2(float64(quantity) * unit)
	delivery := money.Round2(rates.DeliveryFee)

	return Estimate{
		UnitPrice:    unit,
		PrintingCost: printing,
		DeliveryCost: delivery,
		NetPrice:     money.Round2(printing + delivery),
		Currency:     money.PLN,
	}
}

func axisMultiplier(value string, table []adjustment) float64 {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return 1
	}
	for _, adj := range table {
		if strings.Contains(v, adj.match) {
			return adj.multiplier
		}
	}
	return 1
}

func finishingMultiplier(name string) float64 {
	key := strings.ToLower(strings.TrimSpace(name))
	if m, ok := finishingMultipliers[key]; ok {
		return m
	}
	return defaultFinishingMultiplier
}
