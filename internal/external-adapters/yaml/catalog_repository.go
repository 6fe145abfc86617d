package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
)

const catalogExt = ".yml"

// CatalogRepository implements repositories.CatalogRepository over a
// directory laid out as <dir>/<product>/<channel>.yml
type CatalogRepository struct {
	catalogDir string
	parser     *CatalogParser
	logger     interfaces.Logger
}

// NewCatalogRepository creates a new YAML-based catalog repository
func NewCatalogRepository(catalogDir string, logger interfaces.Logger) *CatalogRepository {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &CatalogRepository{
		catalogDir: catalogDir,
		parser:     NewCatalogParser(),
		logger:     logger,
	}
}

// CatalogPath returns the file backing a product/channel catalog
func (r *CatalogRepository) CatalogPath(product string, channel entities.Channel) string {
	return filepath.Join(r.catalogDir, product, string(channel)+catalogExt)
}

// GetCatalog retrieves the catalog of a product on a channel
func (r *CatalogRepository) GetCatalog(_ context.Context, product string, channel entities.Channel) (*entities.Catalog, error) {
	if !isPathElement(product) || !isPathElement(string(channel)) {
		return nil, fmt.Errorf("invalid catalog reference: %s/%s", product, channel)
	}

	filePath := r.CatalogPath(product, channel)

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog not found: %s/%s", product, channel)
	}

	catalog, err := r.parser.ParseFile(filePath)
	if err != nil {
		return nil, err
	}

	if catalog.Product != product || catalog.Channel != channel {
		return nil, fmt.Errorf("catalog %s declares %s/%s, expected %s/%s",
			filePath, catalog.Product, catalog.Channel, product, channel)
	}

	r.logger.Debug("catalog loaded",
		interfaces.F("path", filePath),
		interfaces.F("artifacts", catalog.Len()))

	return catalog, nil
}

// ListProducts returns the products that have at least one catalog file
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	products := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		channels, err := r.ListChannels(ctx, entry.Name())
		if err != nil {
			// Log warning but continue processing other products
			r.logger.Warn("skipping product directory",
				interfaces.F("product", entry.Name()),
				interfaces.F("error", err))
			continue
		}
		if len(channels) > 0 {
			products = append(products, entry.Name())
		}
	}

	sort.Strings(products)
	return products, nil
}

// ListChannels returns the channels available for a product
func (r *CatalogRepository) ListChannels(_ context.Context, product string) ([]entities.Channel, error) {
	if !isPathElement(product) {
		return nil, fmt.Errorf("invalid product name: %q", product)
	}

	entries, err := os.ReadDir(filepath.Join(r.catalogDir, product))
	if err != nil {
		return nil, fmt.Errorf("failed to read product directory: %w", err)
	}

	channels := make([]entities.Channel, 0)
	for _, entry := range entries {
		// Skip non-YAML files
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), catalogExt) {
			continue
		}
		channels = append(channels, entities.Channel(strings.TrimSuffix(entry.Name(), catalogExt)))
	}

	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })
	return channels, nil
}

// isPathElement reports whether name is a single directory entry under the
// catalog directory
func isPathElement(name string) bool {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.IsLocal(name)
}
