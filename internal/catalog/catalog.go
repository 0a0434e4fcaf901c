// Package catalog is the cart's view of the product catalog: a base unit
// rate and category metadata per product slug. Two sources exist — the
// local postgres catalog and the remote catalog API.
package catalog

import (
	"context"
	"fmt"

	"printcart/internal/storage"
	"printcart/pkg/api"
)

type Product struct {
	Slug      string
	Name      string
	Category  string
	BasePrice float64
	InStock   bool
}

type Source interface {
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// StorageSource reads products from the postgres catalog.
type StorageSource struct {
	storage *storage.PostgresStorage
}

func NewStorageSource(s *storage.PostgresStorage) *StorageSource {
	return &StorageSource{storage: s}
}

func (s *StorageSource) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	product, err := s.storage.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("storage.GetProductBySlug failed: %w", err)
	}
	return &Product{
		Slug:      product.Slug,
		Name:      product.Name,
		Category:  product.Category,
		BasePrice: product.BasePrice,
		InStock:   product.InStock,
	}, nil
}

// ListProducts returns the in-stock catalog.
func (s *StorageSource) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.storage.GetAvailableProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.GetAvailableProducts failed: %w", err)
	}

	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, Product{
			Slug:      product.Slug,
			Name:      product.Name,
			Category:  product.Category,
			BasePrice: product.BasePrice,
			InStock:   product.InStock,
		})
	}
	return out, nil
}

// APISource reads products from the remote catalog service.
type APISource struct {
	client *api.Client
}

func NewAPISource(client *api.Client) *APISource {
	return &APISource{client: client}
}

func (s *APISource) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	product, err := s.client.GetProduct(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("api.GetProduct failed: %w", err)
	}
	return &Product{
		Slug:      product.Slug,
		Name:      product.Name,
		Category:  product.Category,
		BasePrice: product.BasePrice,
		InStock:   product.InStock,
	}, nil
}

// ListProducts returns the remote catalog.
func (s *APISource) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.client.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("api.GetProducts failed: %w", err)
	}

	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, Product{
			Slug:      product.Slug,
			Name:      product.Name,
			Category:  product.Category,
			BasePrice: product.BasePrice,
			InStock:   product.InStock,
		})
	}
	return out, nil
}

var (
	_ Source = (*StorageSource)(nil)
	_ Source = (*APISource)(nil)
)
