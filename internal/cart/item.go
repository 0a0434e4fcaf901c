package cart

import (
	"printcart/internal/money"
)

// Configuration holds the axis selections a customer made on the product
// page. Finishings are an unordered set; everything else is a single choice.
// Absent options are empty strings.
type Configuration struct {
	Format             string   `json:"format"`
	Paper              string   `json:"paper"`
	Colors             string   `json:"colors"`
	Finishings         []string `json:"finishings,omitempty"`
	ProjectPreparation string   `json:"project_preparation,omitempty"`
}

// Clone returns a deep copy so callers can hand configurations around
// without aliasing the finishings slice.
func (c Configuration) Clone() Configuration {
	out := c
	if c.Finishings != nil {
		out.Finishings = append([]string(nil), c.Finishings...)
	}
	return out
}

// LineItem is one configured, quantified product entry in the cart.
//
// ID, ProductSlug, PriceVersion and Configuration are fixed at creation.
// Quantity and OrderName are mutable through the store. Fingerprint is
// derived from (ProductSlug, Configuration) and only changes when the
// configuration does. Estimate is the configuration-aware price computed
// once at add time; totals are summed from it rather than re-priced from a
// flat rate.
type LineItem struct {
	ID             string        `json:"id"`
	ProductSlug    string        `json:"product_slug"`
	Quantity       int           `json:"quantity"`
	Configuration  Configuration `json:"configuration"`
	PriceVersion   int           `json:"price_version"`
	Fingerprint    string        `json:"fingerprint"`
	Estimate       Estimate      `json:"estimate"`
	Thumbnail      string        `json:"thumbnail,omitempty"`
	ShippingOption string        `json:"shipping_option,omitempty"`
	OrderName      string        `json:"order_name,omitempty"`
}

// Clone returns a deep copy of the item.
func (li LineItem) Clone() LineItem {
	out := li
	out.Configuration = li.Configuration.Clone()
	return out
}

// CartState is a point-in-time view of the cart: the ordered items and the
// currency totals are presented in. Stored amounts stay in the reference
// currency regardless of the display currency.
type CartState struct {
	Items    []LineItem     `json:"items"`
	Currency money.Currency `json:"currency"`
}

// Clone returns a deep copy of the state.
func (s CartState) Clone() CartState {
	out := CartState{Currency: s.Currency}
	if s.Items != nil {
		out.Items = make([]LineItem, len(s.Items))
		for i, it := range s.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}
