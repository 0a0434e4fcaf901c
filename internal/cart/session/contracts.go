package session

import (
	"context"
	"time"

	"printcart/internal/cart"
	"printcart/internal/storage"
	redisstorage "printcart/internal/storage/redis"
)

type RedisStorage interface {
	SetCartSnapshot(ctx context.Context, sessionID string, state cart.CartState) error
	GetCartSnapshot(ctx context.Context, sessionID string) (cart.CartState, error)
	DropCartSnapshot(ctx context.Context, sessionID string) error
}

type QuoteStorage interface {
	SaveQuote(ctx context.Context, quote storage.Quote) (int64, error)
	GetQuoteByID(ctx context.Context, quoteID int64) (*storage.Quote, error)
	UpdateQuoteStatus(ctx context.Context, quoteID int64, status string) error
	ExportQuoteToExcel(quote storage.Quote, dir string) (string, error)
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, sessionID, action string, limit int64, window time.Duration) (bool, error)
}

var (
	_ RedisStorage = (*redisstorage.Storage)(nil)
	_ QuoteStorage = (*storage.PostgresStorage)(nil)
	_ RateLimiter  = (*storage.PostgresStorage)(nil)
)
