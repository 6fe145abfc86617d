// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// CatalogRepository defines the interface for accessing already-fetched catalogs
type CatalogRepository interface {
	// GetCatalog retrieves the catalog of a product on a channel
	GetCatalog(ctx context.Context, product string, channel entities.Channel) (*entities.Catalog, error)

	// ListProducts returns the products that have at least one catalog
	ListProducts(ctx context.Context) ([]string, error)

	// ListChannels returns the channels available for a product
	ListChannels(ctx context.Context, product string) ([]entities.Channel, error)
}
