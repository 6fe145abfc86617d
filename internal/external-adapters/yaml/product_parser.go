package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/services"
)

type yamlProducts struct {
	Products map[string]yamlProduct `yaml:"products"`
}

type yamlProduct struct {
	ProductName string         `yaml:"product_name"`
	PackageName string         `yaml:"package_name"`
	CtlCommand  string         `yaml:"ctl_command"`
	ConfigFile  string         `yaml:"config_file"`
	Overrides   []yamlOverride `yaml:"overrides"`
}

// yamlOverride replaces the non-empty fields for versions below Before
type yamlOverride struct {
	Before      string `yaml:"before"`
	PackageName string `yaml:"package_name"`
	CtlCommand  string `yaml:"ctl_command"`
	ConfigFile  string `yaml:"config_file"`
}

// ProductParser parses YAML product registry files
type ProductParser struct{}

// NewProductParser creates a new YAML product parser
func NewProductParser() *ProductParser {
	return &ProductParser{}
}

// ParseFile parses a YAML product file into a ProductRegistry
func (p *ProductParser) ParseFile(filePath string) (*entities.ProductRegistry, error) {
	//nolint:gosec // G304: filePath is user-provided product configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a ProductRegistry
func (p *ProductParser) Parse(data []byte) (*entities.ProductRegistry, error) {
	var raw yamlProducts
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(raw.Products) == 0 {
		return nil, fmt.Errorf("product file must define at least one product")
	}

	descriptors := make([]entities.ProductDescriptor, 0, len(raw.Products))
	for name, yp := range raw.Products {
		d, err := convertProduct(name, yp)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}

	return entities.NewProductRegistry(descriptors...)
}

func convertProduct(name string, yp yamlProduct) (entities.ProductDescriptor, error) {
	if yp.PackageName == "" {
		return entities.ProductDescriptor{}, fmt.Errorf("product %s must have a package_name", name)
	}

	var pkg, ctl, cfg []services.VersionOverride
	for i, o := range yp.Overrides {
		if o.Before == "" {
			return entities.ProductDescriptor{}, fmt.Errorf("product %s override %d must have a before version", name, i)
		}
		if o.PackageName != "" {
			pkg = append(pkg, services.VersionOverride{Before: o.Before, Value: o.PackageName})
		}
		if o.CtlCommand != "" {
			ctl = append(ctl, services.VersionOverride{Before: o.Before, Value: o.CtlCommand})
		}
		if o.ConfigFile != "" {
			cfg = append(cfg, services.VersionOverride{Before: o.Before, Value: o.ConfigFile})
		}
	}

	productName := yp.ProductName
	if productName == "" {
		productName = name
	}

	return entities.ProductDescriptor{
		Name:        name,
		ProductName: productName,
		PackageName: services.VersionedAttribute(yp.PackageName, pkg...),
		CtlCommand:  services.VersionedAttribute(yp.CtlCommand, ctl...),
		ConfigFile:  services.VersionedAttribute(yp.ConfigFile, cfg...),
	}, nil
}
