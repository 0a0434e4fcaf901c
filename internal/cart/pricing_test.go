package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"printcart/internal/money"
)

// neutralConfig matches no adjustment table entry, so the unit price stays
// at the base rate.
func neutralConfig() Configuration {
	return Configuration{
		Format: "a4",
		Paper:  "standard-130",
		Colors: "4/0",
	}
}

func TestPriceKnownScenario(t *testing.T) {
	rates := DefaultPriceRates()

	est := Price(1000, neutralConfig(), 0.12, rates)

	assert.InDelta(t, 120.00, est.PrintingCost, 1e-9)
	assert.InDelta(t, rates.DeliveryFee, est.DeliveryCost, 1e-9)
	assert.InDelta(t, est.PrintingCost+est.DeliveryCost, est.NetPrice, 1e-9)
	assert.Equal(t, money.PLN, est.Currency)
}

func TestPriceAdjustments(t *testing.T) {
	rates := DefaultPriceRates()
	base := 1.00

	t.Run("larger format multiplies up", func(t *testing.T) {
		cfg := neutralConfig()
		cfg.Format = "a3"
		est := Price(100, cfg, base, rates)
		assert.InDelta(t, 140.0, est.PrintingCost, 1e-9)
	})

	t.Run("smaller format multiplies down", func(t *testing.T) {
		cfg := neutralConfig()
		cfg.Format = "a6"
		est := Price(100, cfg, base, rates)
		assert.InDelta(t, 70.0, est.PrintingCost, 1e-9)
	})

	t.Run("heavier paper multiplies up", func(t *testing.T) {
		cfg := neutralConfig()
		cfg.Paper = "coated-300"
		est := Price(100, cfg, base, rates)
		assert.InDelta(t, 130.0, est.PrintingCost, 1e-9)
	})

	t.Run("full color both sides multiplies up", func(t *testing.T) {
		cfg := neutralConfig()
		cfg.Colors = "4/4"
		est := Price(100, cfg, base, rates)
		assert.InDelta(t, 125.0, est.PrintingCost, 1e-9)
	})

	t.Run("each finishing contributes its own multiplier", func(t *testing.T) {
		cfg := neutralConfig()
		cfg.Finishings = []string{"matte-lamination", "uv-varnish"}
		est := Price(100, cfg, base, rates)
		assert.InDelta(t, 100*1.15*1.10, est.PrintingCost, 1e-6)
	})

	t.Run("unknown finishing uses the default multiplier", func(t *testing.T) {
		cfg := neutralConfig()
		cfg.Finishings = []string{"glitter"}
		est := Price(100, cfg, base, rates)
		assert.InDelta(t, 105.0, est.PrintingCost, 1e-9)
	})

	t.Run("axes stack multiplicatively", func(t *testing.T) {
		cfg := Configuration{Format: "a3", Paper: "coated-300", Colors: "4/4"}
		est := Price(10, cfg, base, rates)
		assert.InDelta(t, 10*1.40*1.30*1.25, est.PrintingCost, 1e-6)
	})
}

func TestPriceBaseRateFallback(t *testing.T) {
	rates := DefaultPriceRates()

	est := Price(100, neutralConfig(), 0, rates)
	assert.InDelta(t, 100*rates.BaseUnitRate, est.PrintingCost, 1e-9)

	est = Price(100, neutralConfig(), -3, rates)
	assert.InDelta(t, 100*rates.BaseUnitRate, est.PrintingCost, 1e-9)
}

func TestPriceMonotonicInQuantity(t *testing.T) {
	rates := DefaultPriceRates()
	cfg := Configuration{
		Format:     "a3",
		Paper:      "coated-350",
		Colors:     "4/4",
		Finishings: []string{"soft-touch-foil"},
	}

	prev := 0.0
	for _, quantity := range []int{1, 10, 100, 500, 1000, 5000} {
		est := Price(quantity, cfg, 0.40, rates)
		assert.Greater(t, est.NetPrice, prev)
		assert.GreaterOrEqual(t, est.PrintingCost, 0.0)
		assert.GreaterOrEqual(t, est.DeliveryCost, 0.0)
		prev = est.NetPrice
	}
}

func TestPriceDeliveryIndependentOfQuantity(t *testing.T) {
	rates := DefaultPriceRates()

	small := Price(1, neutralConfig(), 0.50, rates)
	large := Price(10000, neutralConfig(), 0.50, rates)
	assert.Equal(t, small.DeliveryCost, large.DeliveryCost)
}
