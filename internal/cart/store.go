package cart

import (
	"sync"

	"github.com/google/uuid"

	"printcart/internal/money"
)

// Store owns the canonical cart state and is its only legal mutation
// surface. All operations are synchronous; every successful mutation
// notifies subscribers exactly once before returning.
//
// Mutations addressed at an absent item ID are no-ops that report false
// rather than errors: a stale reference from the UI must never crash a view.
type Store struct {
	mu       sync.Mutex
	items    []LineItem
	currency money.Currency
	rates    PriceRates

	nextSubID int
	subs      map[int]func(CartState)
}

// AddItemParams carries everything needed to create a line item. BasePrice
// is the catalog's per-unit net rate; non-positive values fall back to the
// platform base rate.
type AddItemParams struct {
	ProductSlug    string
	Quantity       int
	Configuration  Configuration
	PriceVersion   int
	BasePrice      float64
	Thumbnail      string
	ShippingOption string
}

// NewStore creates an empty cart priced with the given rates and presented
// in the reference currency.
func NewStore(rates PriceRates) *Store {
	return &Store{
		currency: money.PLN,
		rates:    rates,
		subs:     make(map[int]func(CartState)),
	}
}

// Subscribe registers a callback invoked after every successful mutation
// with a snapshot of the new state. Callbacks run with the store lock held
// and must not call back into the store. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(CartState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// AddItem appends a new line item and returns its generated ID. The
// fingerprint and price estimate are computed here, once; identical
// configurations are never merged automatically — the fingerprint is
// exposed so callers can detect duplicates themselves.
func (s *Store) AddItem(p AddItemParams) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity := clampQuantity(p.Quantity)
	cfg := p.Configuration.Clone()

	item := LineItem{
		ID:             uuid.NewString(),
		ProductSlug:    p.ProductSlug,
		Quantity:       quantity,
		Configuration:  cfg,
		PriceVersion:   p.PriceVersion,
		Fingerprint:    Fingerprint(p.ProductSlug, cfg),
		Estimate:       Price(quantity, cfg, p.BasePrice, s.rates),
		Thumbnail:      p.Thumbnail,
		ShippingOption: p.ShippingOption,
	}

	s.items = append(s.items, item)
	s.notifyLocked()
	return item.ID
}

// RemoveItem deletes the item. Removing an absent ID leaves the cart
// untouched and reports false.
func (s *Store) RemoveItem(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(itemID)
	if idx < 0 {
		return false
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.notifyLocked()
	return true
}

// UpdateItemQuantity sets the item's quantity, clamped to a minimum of 1,
// and reprices the stored estimate for the new quantity.
func (s *Store) UpdateItemQuantity(itemID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(itemID)
	if idx < 0 {
		return false
	}

	item := &s.items[idx]
	item.Quantity = clampQuantity(quantity)
	item.Estimate = reprice(*item, s.rates)
	s.notifyLocked()
	return true
}

// UpdateItemOrderName sets the free-text label; an empty string clears it.
func (s *Store) UpdateItemOrderName(itemID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(itemID)
	if idx < 0 {
		return false
	}

	s.items[idx].OrderName = name
	s.notifyLocked()
	return true
}

// DuplicateItem appends a copy of the item under a fresh ID. Configuration
// and quantity are carried over verbatim, so the fingerprint is reused
// rather than recomputed. Returns the new ID, or "" if the source is absent.
func (s *Store) DuplicateItem(itemID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(itemID)
	if idx < 0 {
		return "", false
	}

	dup := s.items[idx].Clone()
	dup.ID = uuid.NewString()

	s.items = append(s.items, dup)
	s.notifyLocked()
	return dup.ID, true
}

// SetCurrency switches the display currency. Stored amounts stay in the
// reference currency; conversion happens when totals are read.
func (s *Store) SetCurrency(currency money.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currency = money.ParseCurrency(string(currency))
	s.notifyLocked()
}

// Currency returns the current display currency.
func (s *Store) Currency() money.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// Items returns a deep copy of the line items in display order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked().Items
}

// State returns a deep copy of the whole cart state.
func (s *Store) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restore replaces the cart contents with a previously persisted snapshot.
// Quantities are re-clamped, fingerprints recomputed and estimates
// re-derived from the stored unit price so a tampered or stale snapshot
// cannot violate the cart invariants.
func (s *Store) Restore(state CartState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := state.Clone()
	for i := range restored.Items {
		item := &restored.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.Quantity = clampQuantity(item.Quantity)
		item.Fingerprint = Fingerprint(item.ProductSlug, item.Configuration)
		item.Estimate = reprice(*item, s.rates)
	}

	s.items = restored.Items
	s.currency = money.ParseCurrency(string(restored.Currency))
	s.notifyLocked()
}

// TotalItems returns the summed quantity across all items.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the summed net price of all stored estimates, in the
// reference currency.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Estimate.NetPrice
	}
	return money.Round2(total)
}

func (s *Store) indexLocked(itemID string) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() CartState {
	return CartState{Items: s.items, Currency: s.currency}.Clone()
}

func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}

// reprice rescales a stored estimate for a new quantity. The unit price
// already carries the configuration multipliers, so pricing against an
// empty configuration reapplies none of them.
func reprice(item LineItem, rates PriceRates) Estimate {
	return Price(item.Quantity, Configuration{}, item.Estimate.UnitPrice, rates)
}

func clampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}
