// Package session ties one cart store to its collaborators: the snapshot
// storage it survives restarts through, the catalog that prices adds, and
// the quote sink checkouts land in. The store itself stays pure in-memory
// state; everything with I/O lives here.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"printcart/internal/cart"
	"printcart/internal/catalog"
	"printcart/internal/storage"
)

type Manager struct {
	sessionID    string
	store        *cart.Store
	rates        cart.PriceRates
	redisStorage RedisStorage
	catalog      catalog.Source
	quotes       QuoteStorage
	logger       *zap.Logger

	exportDir string

	limiter        RateLimiter
	checkoutLimit  int64
	checkoutWindow time.Duration
}

func New(
	sessionID string,
	store *cart.Store,
	rates cart.PriceRates,
	redisStorage RedisStorage,
	catalogSource catalog.Source,
	quotes QuoteStorage,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		sessionID:    sessionID,
		store:        store,
		rates:        rates,
		redisStorage: redisStorage,
		catalog:      catalogSource,
		quotes:       quotes,
		logger:       logger,
	}
}

// Store exposes the managed cart store.
func (m *Manager) Store() *cart.Store {
	return m.store
}

// EnableQuoteExport makes Checkout write each saved quote to an .xlsx file
// under dir.
func (m *Manager) EnableQuoteExport(dir string) {
	m.exportDir = dir
}

// EnableCheckoutLimit guards Checkout with a per-session rate limit.
func (m *Manager) EnableCheckoutLimit(limiter RateLimiter, limit int64, window time.Duration) {
	m.limiter = limiter
	m.checkoutLimit = limit
	m.checkoutWindow = window
}

// Restore loads the persisted snapshot into the store. A missing snapshot
// restores an empty cart.
func (m *Manager) Restore(ctx context.Context) error {
	state, err := m.redisStorage.GetCartSnapshot(ctx, m.sessionID)
	if err != nil {
		return fmt.Errorf("redisStorage.GetCartSnapshot failed: %w", err)
	}

	m.store.Restore(state)
	m.logger.Info("Cart session restored",
		zap.String("session_id", m.sessionID),
		zap.Int("items", len(state.Items)))
	return nil
}

// Persist writes the current cart state to the snapshot storage.
func (m *Manager) Persist(ctx context.Context) error {
	if err := m.redisStorage.SetCartSnapshot(ctx, m.sessionID, m.store.State()); err != nil {
		return fmt.Errorf("redisStorage.SetCartSnapshot failed: %w", err)
	}
	return nil
}

// Clear drops the persisted snapshot and empties the cart.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.redisStorage.DropCartSnapshot(ctx, m.sessionID); err != nil {
		return fmt.Errorf("redisStorage.DropCartSnapshot failed: %w", err)
	}
	m.store.Restore(cart.CartState{Currency: m.store.Currency()})
	return nil
}

// AddProduct looks the product up in the catalog and adds a configured line
// for it, returning the new item ID.
func (m *Manager) AddProduct(ctx context.Context, slug string, quantity int, cfg cart.Configuration, priceVersion int) (string, error) {
	product, err := m.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("catalog lookup failed: %w", err)
	}
	if !product.InStock {
		return "", fmt.Errorf("product %q is out of stock", slug)
	}

	id := m.store.AddItem(cart.AddItemParams{
		ProductSlug:   product.Slug,
		Quantity:      quantity,
		Configuration: cfg,
		PriceVersion:  priceVersion,
		BasePrice:     product.BasePrice,
	})

	m.logger.Debug("Added product to cart",
		zap.String("session_id", m.sessionID),
		zap.String("slug", slug),
		zap.String("item_id", id),
		zap.Int("quantity", quantity))
	return id, nil
}

// Totals recomputes the derived view over the current cart.
func (m *Manager) Totals() cart.Totals {
	return cart.Calculate(m.store.Items(), m.store.Currency(), m.rates)
}

// Checkout submits the current cart as a quote, then clears the session.
// The cart must not be empty. With quote export enabled the saved quote is
// re-read, written to an .xlsx file and marked exported.
func (m *Manager) Checkout(ctx context.Context, contact string) (int64, error) {
	if m.limiter != nil {
		limited, err := m.limiter.CheckRateLimit(ctx, m.sessionID, "checkout", m.checkoutLimit, m.checkoutWindow)
		if err != nil {
			return 0, fmt.Errorf("limiter.CheckRateLimit failed: %w", err)
		}
		if limited {
			return 0, fmt.Errorf("too many checkout attempts, try again later")
		}
	}

	state := m.store.State()
	if len(state.Items) == 0 {
		return 0, fmt.Errorf("cannot check out an empty cart")
	}

	totals := cart.Calculate(state.Items, state.Currency, m.rates)

	itemsJSON, err := json.Marshal(state.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal items: %w", err)
	}

	quoteID, err := m.quotes.SaveQuote(ctx, storage.Quote{
		SessionID:   m.sessionID,
		ItemCount:   totals.ItemCount,
		PrintingNet: totals.PrintingNet,
		DeliveryNet: totals.DeliveryNet,
		TotalNet:    totals.TotalNet,
		VATAmount:   totals.VATAmount,
		TotalGross:  totals.TotalGross,
		Currency:    string(totals.Currency),
		Contact:     contact,
		Status:      "new",
		ItemsJSON:   itemsJSON,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("quotes.SaveQuote failed: %w", err)
	}

	if m.exportDir != "" {
		m.exportQuote(ctx, quoteID)
	}

	if err := m.Clear(ctx); err != nil {
		m.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", m.sessionID),
			zap.Error(err))
	}

	m.logger.Info("Cart checked out",
		zap.String("session_id", m.sessionID),
		zap.Int64("quote_id", quoteID),
		zap.Float64("total_gross", totals.TotalGross))
	return quoteID, nil
}

// exportQuote re-reads the saved quote, writes it to the export directory
// and marks it exported. Export failures are logged, not surfaced: the
// quote is already saved and the checkout has succeeded.
func (m *Manager) exportQuote(ctx context.Context, quoteID int64) {
	quote, err := m.quotes.GetQuoteByID(ctx, quoteID)
	if err != nil {
		m.logger.Warn("Failed to load quote for export",
			zap.Int64("quote_id", quoteID),
			zap.Error(err))
		return
	}

	path, err := m.quotes.ExportQuoteToExcel(*quote, m.exportDir)
	if err != nil {
		m.logger.Warn("Failed to export quote",
			zap.Int64("quote_id", quoteID),
			zap.Error(err))
		return
	}

	if err := m.quotes.UpdateQuoteStatus(ctx, quoteID, "exported"); err != nil {
		m.logger.Warn("Failed to update quote status",
			zap.Int64("quote_id", quoteID),
			zap.Error(err))
	}

	m.logger.Info("Quote exported",
		zap.Int64("quote_id", quoteID),
		zap.String("path", path))
}
