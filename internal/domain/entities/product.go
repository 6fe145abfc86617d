package entities

import (
	"fmt"
	"sort"
)

// Attribute is a product property that may depend on the product version.
// Implementations must be pure.
type Attribute func(version string) string

// Constant returns an Attribute that ignores the version
func Constant(value string) Attribute {
	return func(string) string { return value }
}

// ProductDescriptor describes a product and how its packaging details vary by version
type ProductDescriptor struct {
	Name        string // catalog key, e.g. "chef-server"
	ProductName string // display name
	PackageName Attribute
	CtlCommand  Attribute
	ConfigFile  Attribute
}

// PackageNameFor returns the package name used at version
func (p ProductDescriptor) PackageNameFor(version string) string {
	return evaluate(p.PackageName, version)
}

// CtlCommandFor returns the control command used at version
func (p ProductDescriptor) CtlCommandFor(version string) string {
	return evaluate(p.CtlCommand, version)
}

// ConfigFileFor returns the config file path used at version
func (p ProductDescriptor) ConfigFileFor(version string) string {
	return evaluate(p.ConfigFile, version)
}

func evaluate(attr Attribute, version string) string {
	if attr == nil {
		return ""
	}
	return attr(version)
}

// ProductRegistry is an immutable set of product descriptors
type ProductRegistry struct {
	products map[string]ProductDescriptor
	names    []string
}

// NewProductRegistry builds a registry. Product names must be unique and non-empty.
func NewProductRegistry(descriptors ...ProductDescriptor) (*ProductRegistry, error) {
	r := &ProductRegistry{
		products: make(map[string]ProductDescriptor, len(descriptors)),
		names:    make([]string, 0, len(descriptors)),
	}

	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("product descriptor must have a name")
		}
		if _, exists := r.products[d.Name]; exists {
			return nil, fmt.Errorf("duplicate product descriptor: %s", d.Name)
		}
		r.products[d.Name] = d
		r.names = append(r.names, d.Name)
	}

	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the descriptor for name
func (r *ProductRegistry) Lookup(name string) (ProductDescriptor, bool) {
	d, ok := r.products[name]
	return d, ok
}

// Names returns the registered product names in sorted order
func (r *ProductRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered products
func (r *ProductRegistry) Len() int {
	return len(r.names)
}
