package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printcart/internal/money"
)

func TestCalculateEmptyCart(t *testing.T) {
	totals := Calculate(nil, money.PLN, DefaultPriceRates())

	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0.0, totals.TotalNet)
	assert.Equal(t, 0.0, totals.TotalGross)
}

func TestCalculateReconcilesWithStore(t *testing.T) {
	rates := DefaultPriceRates()
	s := NewStore(rates)

	addBusinessCards(s, 1000)
	id := addBusinessCards(s, 50)
	s.UpdateItemQuantity(id, 75)
	s.RemoveItem("no-such-id")
	s.DuplicateItem(id)

	totals := Calculate(s.Items(), s.Currency(), rates)

	assert.Equal(t, s.TotalItems(), totals.ItemCount)
	assert.InDelta(t, totals.PrintingNet+totals.DeliveryNet, totals.TotalNet, 0.01)
	assert.InDelta(t, totals.TotalNet+totals.VATAmount, totals.TotalGross, 0.01)
	assert.GreaterOrEqual(t, totals.TotalGross, totals.TotalNet)
	assert.GreaterOrEqual(t, totals.TotalNet, 0.0)
	assert.InDelta(t, s.TotalPrice(), totals.TotalNet, 0.01)
}

func TestCalculateVAT(t *testing.T) {
	rates := DefaultPriceRates()
	s := NewStore(rates)
	addBusinessCards(s, 100)

	totals := Calculate(s.Items(), money.PLN, rates)

	assert.InDelta(t, totals.TotalNet*rates.VATRate, totals.VATAmount, 0.01)
}

func TestCalculateCurrencyConversionIsUniform(t *testing.T) {
	rates := DefaultPriceRates()
	s := NewStore(rates)
	addBusinessCards(s, 1000)
	addBusinessCards(s, 200)

	pln := Calculate(s.Items(), money.PLN, rates)
	eur := Calculate(s.Items(), money.EUR, rates)

	assert.Equal(t, pln.ItemCount, eur.ItemCount)
	assert.Equal(t, money.EUR, eur.Currency)
	assert.InDelta(t, pln.PrintingNet/rates.EURRate, eur.PrintingNet, 0.01)
	assert.InDelta(t, pln.DeliveryNet/rates.EURRate, eur.DeliveryNet, 0.01)
	assert.InDelta(t, pln.TotalNet/rates.EURRate, eur.TotalNet, 0.01)
	assert.InDelta(t, pln.TotalGross/rates.EURRate, eur.TotalGross, 0.01)
	assert.GreaterOrEqual(t, eur.TotalGross, eur.TotalNet)
}

func TestTotalsApplyDiscount(t *testing.T) {
	rates := DefaultPriceRates()
	s := NewStore(rates)
	addBusinessCards(s, 1000)
	totals := Calculate(s.Items(), money.PLN, rates)

	t.Run("percentage", func(t *testing.T) {
		discounted := totals.ApplyDiscount(ApplyDiscount("save10"), rates)
		assert.InDelta(t, totals.TotalNet*0.9, discounted.TotalNet, 0.01)
		assert.InDelta(t, discounted.TotalNet+discounted.VATAmount, discounted.TotalGross, 0.01)
		// Original totals untouched.
		assert.NotEqual(t, totals.TotalNet, discounted.TotalNet)
	})

	t.Run("flat amount", func(t *testing.T) {
		discounted := totals.ApplyDiscount(ApplyDiscount("welcome"), rates)
		assert.InDelta(t, totals.TotalNet-15, discounted.TotalNet, 0.01)
	})

	t.Run("rejected code changes nothing", func(t *testing.T) {
		discounted := totals.ApplyDiscount(ApplyDiscount("nope"), rates)
		assert.Equal(t, totals, discounted)
	})

	t.Run("discount never drives the total negative", func(t *testing.T) {
		small := Totals{TotalNet: 5, Currency: money.PLN}
		discounted := small.ApplyDiscount(DiscountResult{Accepted: true, Amount: 100}, rates)
		assert.Equal(t, 0.0, discounted.TotalNet)
		assert.Equal(t, 0.0, discounted.TotalGross)
	})
}

func TestCalculateIgnoresUnknownCurrency(t *testing.T) {
	rates := DefaultPriceRates()
	s := NewStore(rates)
	addBusinessCards(s, 10)

	totals := Calculate(s.Items(), "usd", rates)
	require.Equal(t, money.PLN, totals.Currency)
}
