package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// CatalogStatus represents the well-formedness of a catalog
type CatalogStatus string

// Catalog validation statuses
const (
	StatusReady               CatalogStatus = "ready"
	StatusEmpty               CatalogStatus = "empty"
	StatusDuplicateEntries    CatalogStatus = "duplicate_entries"
	StatusUnknownArchitecture CatalogStatus = "unknown_architecture"
	StatusMissingChecksums    CatalogStatus = "missing_checksums"
)

// CatalogValidation contains the validation result for a catalog
type CatalogValidation struct {
	Status              CatalogStatus
	Product             string
	Channel             entities.Channel
	Versions            []string // ascending
	RecordCount         int
	Duplicates          []string // "version platform/platform_version/arch"
	UnknownArchitecture []string
	MissingChecksums    []string
}

// IsReady returns true if the catalog is well formed
func (cv *CatalogValidation) IsReady() bool {
	return cv.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (cv *CatalogValidation) ErrorMessage() string {
	switch cv.Status {
	case StatusReady:
		return ""
	case StatusEmpty:
		return fmt.Sprintf("Catalog %s/%s has no artifacts", cv.Product, cv.Channel)
	case StatusDuplicateEntries:
		return fmt.Sprintf("Duplicate entries (%d):\n   %s", len(cv.Duplicates), strings.Join(cv.Duplicates, "\n   "))
	case StatusUnknownArchitecture:
		return fmt.Sprintf("Unknown architectures:\n   %s", strings.Join(cv.UnknownArchitecture, "\n   "))
	case StatusMissingChecksums:
		return fmt.Sprintf("Artifacts without checksums (%d):\n   %s", len(cv.MissingChecksums), strings.Join(cv.MissingChecksums, "\n   "))
	default:
		return "Unknown status"
	}
}

// CatalogService inspects catalogs for well-formedness
type CatalogService struct{}

// NewCatalogService creates a new catalog service
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// Validate checks that a catalog holds at most one record per
// (version, platform, platform_version, architecture) tuple, and that every
// record names a known architecture and publishes a checksum.
func (s *CatalogService) Validate(catalog entities.Catalog) *CatalogValidation {
	validation := &CatalogValidation{
		Product:     catalog.Product,
		Channel:     catalog.Channel,
		Versions:    catalog.Versions(),
		RecordCount: catalog.Len(),
	}
	SortVersions(validation.Versions)

	seen := make(map[string]bool)
	for _, a := range catalog.Artifacts {
		key := s.tupleKey(a)
		if seen[key] {
			validation.Duplicates = append(validation.Duplicates, key)
		}
		seen[key] = true

		if !IsKnownArchitecture(a.Architecture) {
			validation.UnknownArchitecture = append(validation.UnknownArchitecture, key)
		}
		if a.Checksums.IsEmpty() {
			validation.MissingChecksums = append(validation.MissingChecksums, key)
		}
	}

	switch {
	case validation.RecordCount == 0:
		validation.Status = StatusEmpty
	case len(validation.Duplicates) > 0:
		validation.Status = StatusDuplicateEntries
	case len(validation.UnknownArchitecture) > 0:
		validation.Status = StatusUnknownArchitecture
	case len(validation.MissingChecksums) > 0:
		validation.Status = StatusMissingChecksums
	default:
		validation.Status = StatusReady
	}

	return validation
}

// Platforms returns the distinct platform triplets published at version, sorted
func (s *CatalogService) Platforms(catalog entities.Catalog, version string) []string {
	set := make(map[string]bool)
	narrowed := catalog.AtVersion(version)
	for _, a := range narrowed.Artifacts {
		set[a.Triplet()] = true
	}

	triplets := make([]string, 0, len(set))
	for t := range set {
		triplets = append(triplets, t)
	}
	sort.Strings(triplets)
	return triplets
}

// tupleKey identifies a record by its normalized version and triplet
func (s *CatalogService) tupleKey(a entities.Artifact) string {
	platform := NormalizePlatform(a.Platform)
	return fmt.Sprintf("%s %s/%s/%s", a.Version, platform,
		NormalizePlatformVersion(platform, a.PlatformVersion), NormalizeArchitecture(a.Architecture))
}
