package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"printcart/internal/config"
	"printcart/pkg/redis"
)

const productCacheTTL = 24 * time.Hour

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Product is a catalog row. BasePrice is the per-unit net rate in the
// reference currency that the pricing calculator starts from.
type Product struct {
	Slug      string  `db:"slug"`
	Name      string  `db:"name"`
	Category  string  `db:"category"`
	BasePrice float64 `db:"base_price"`
	InStock   bool    `db:"in_stock"`
}

// Quote is a submitted cart: the totals at checkout time plus contact
// details. Items are stored as a JSON document alongside the flattened
// totals so the numbers stay queryable.
type Quote struct {
	ID          int64     `db:"id"`
	SessionID   string    `db:"session_id"`
	ItemCount   int       `db:"item_count"`
	PrintingNet float64   `db:"printing_net"`
	DeliveryNet float64   `db:"delivery_net"`
	TotalNet    float64   `db:"total_net"`
	VATAmount   float64   `db:"vat_amount"`
	TotalGross  float64   `db:"total_gross"`
	Currency    string    `db:"currency"`
	Contact     string    `db:"contact"`
	Status      string    `db:"status"`
	ItemsJSON   []byte    `db:"items"`
	CreatedAt   time.Time `db:"created_at"`
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// DB exposes the underlying connection for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	cacheKey := fmt.Sprintf("product:%s", slug)

	// Try Redis first
	cached, err := s.redis.Get(ctx, cacheKey)
	if err == nil {
		var product Product
		if err := json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
	}

	// Fall back to Postgres
	const query = `
        SELECT slug, name, category, base_price, in_stock
        FROM products
        WHERE slug = $1
    `

	var product Product
	err = s.db.GetContext(ctx, &product, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Cache the result
	if data, err := json.Marshal(product); err == nil {
		s.redis.Set(ctx, cacheKey, data, productCacheTTL)
	}

	return &product, nil
}

func (s *PostgresStorage) GetAvailableProducts(ctx context.Context) ([]Product, error) {
	const query = `SELECT slug, name, category, base_price, in_stock FROM products WHERE in_stock = TRUE`

	var products []Product
	err := s.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

func (s *PostgresStorage) SaveQuote(ctx context.Context, quote Quote) (int64, error) {
	const query = `
        INSERT INTO quotes (
            session_id, item_count, printing_net, delivery_net, total_net,
            vat_amount, total_gross, currency, contact, status, items, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `

	var quoteID int64
	err := s.db.QueryRowContext(ctx, query,
		quote.SessionID,
		quote.ItemCount,
		quote.PrintingNet,
		quote.DeliveryNet,
		quote.TotalNet,
		quote.VATAmount,
		quote.TotalGross,
		quote.Currency,
		quote.Contact,
		quote.Status,
		quote.ItemsJSON,
		quote.CreatedAt,
	).Scan(&quoteID)

	if err != nil {
		return 0, fmt.Errorf("failed to save quote: %w", err)
	}

	return quoteID, nil
}

func (s *PostgresStorage) GetQuoteByID(ctx context.Context, quoteID int64) (*Quote, error) {
	const query = `SELECT * FROM quotes WHERE id = $1`

	var quote Quote
	err := s.db.GetContext(ctx, &quote, query, quoteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &quote, nil
}

func (s *PostgresStorage) UpdateQuoteStatus(ctx context.Context, quoteID int64, status string) error {
	const query = `UPDATE quotes SET status = $1 WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, quoteID); err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	return nil
}

// CheckRateLimit counts actions per session inside a sliding window and
// reports whether the limit is exceeded.
func (s *PostgresStorage) CheckRateLimit(ctx context.Context, sessionID, action string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", sessionID, action)

	count, err := s.redis.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiry if this is the first increment
	if count == 1 {
		if _, err := s.redis.Expire(ctx, key, window); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count > limit, nil
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
