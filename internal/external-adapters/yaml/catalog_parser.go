// Package yaml provides YAML-based catalog and product registry parsing.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// yamlCatalog represents the raw YAML structure of a catalog file
type yamlCatalog struct {
	Product   string         `yaml:"product"`
	Channel   string         `yaml:"channel"`
	Artifacts []yamlArtifact `yaml:"artifacts"`
}

type yamlArtifact struct {
	Version            string `yaml:"version"`
	Platform           string `yaml:"platform"`
	PlatformVersion    string `yaml:"platform_version"`
	Architecture       string `yaml:"architecture"`
	URL                string `yaml:"url"`
	SHA256             string `yaml:"sha256"`
	SHA1               string `yaml:"sha1"`
	MD5                string `yaml:"md5"`
	License            string `yaml:"license"`
	Description        string `yaml:"description"`
	ProductName        string `yaml:"product_name"`
	ProductDescription string `yaml:"product_description"`
}

// nonPackageSuffixes mark index entries that describe a package rather than being one
var nonPackageSuffixes = []string{
	".sha256",
	".sha1",
	".md5",
	".asc",
	".sig",
	".metadata.json",
}

// CatalogParser parses YAML catalog files
type CatalogParser struct{}

// NewCatalogParser creates a new YAML catalog parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// ParseFile parses a YAML catalog file into a Catalog entity
func (p *CatalogParser) ParseFile(filePath string) (*entities.Catalog, error) {
	//nolint:gosec // G304: filePath is a catalog path from the repository
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Catalog entity.
// Checksum, signature and metadata entries are dropped.
func (p *CatalogParser) Parse(data []byte) (*entities.Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if raw.Product == "" {
		return nil, fmt.Errorf("catalog must have a product")
	}
	if raw.Channel == "" {
		return nil, fmt.Errorf("catalog must have a channel")
	}

	catalog := &entities.Catalog{
		Product:   raw.Product,
		Channel:   entities.Channel(raw.Channel),
		Artifacts: make([]entities.Artifact, 0, len(raw.Artifacts)),
	}

	for i, ya := range raw.Artifacts {
		if isNonPackage(ya.URL) {
			continue
		}
		if err := validateArtifact(ya); err != nil {
			return nil, fmt.Errorf("artifact %d: %w", i, err)
		}
		catalog.Artifacts = append(catalog.Artifacts, convertArtifact(ya))
	}

	return catalog, nil
}

func isNonPackage(url string) bool {
	for _, suffix := range nonPackageSuffixes {
		if strings.HasSuffix(url, suffix) {
			return true
		}
	}
	return false
}

func validateArtifact(ya yamlArtifact) error {
	missing := make([]string, 0)
	if ya.Version == "" {
		missing = append(missing, "version")
	}
	if ya.Platform == "" {
		missing = append(missing, "platform")
	}
	if ya.PlatformVersion == "" {
		missing = append(missing, "platform_version")
	}
	if ya.Architecture == "" {
		missing = append(missing, "architecture")
	}
	if ya.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func convertArtifact(ya yamlArtifact) entities.Artifact {
	return entities.Artifact{
		Platform:        ya.Platform,
		PlatformVersion: ya.PlatformVersion,
		Architecture:    ya.Architecture,
		Version:         ya.Version,
		URL:             ya.URL,
		Checksums: entities.Checksums{
			SHA256: ya.SHA256,
			SHA1:   ya.SHA1,
			MD5:    ya.MD5,
		},
		Metadata: entities.ArtifactMetadata{
			License:            ya.License,
			Description:        ya.Description,
			ProductName:        ya.ProductName,
			ProductDescription: ya.ProductDescription,
		},
	}
}
