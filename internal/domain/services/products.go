package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// VersionOverride replaces an attribute value for product versions below Before
type VersionOverride struct {
	Before string
	Value  string
}

// VersionedAttribute returns an attribute that yields the value of the
// tightest override whose Before bound is above the version, or defaultValue.
// An empty or "latest" version always yields defaultValue.
func VersionedAttribute(defaultValue string, overrides ...VersionOverride) entities.Attribute {
	if len(overrides) == 0 {
		return entities.Constant(defaultValue)
	}

	sorted := slices.Clone(overrides)
	slices.SortStableFunc(sorted, func(a, b VersionOverride) int {
		return CompareVersions(a.Before, b.Before)
	})

	return func(version string) string {
		if version == "" || strings.EqualFold(version, entities.VersionLatest) {
			return defaultValue
		}
		for _, o := range sorted {
			if CompareVersions(version, o.Before) < 0 {
				return o.Value
			}
		}
		return defaultValue
	}
}

// DefaultProducts returns the built-in product registry
func DefaultProducts() *entities.ProductRegistry {
	registry, err := entities.NewProductRegistry(
		entities.ProductDescriptor{
			Name:        "chef",
			ProductName: "Chef Infra Client",
			PackageName: entities.Constant("chef"),
		},
		entities.ProductDescriptor{
			Name:        "angrychef",
			ProductName: "Angry Chef Client",
			PackageName: entities.Constant("angrychef"),
		},
		entities.ProductDescriptor{
			Name:        "chef-server",
			ProductName: "Chef Infra Server",
			PackageName: VersionedAttribute("chef-server-core", VersionOverride{Before: "12.0.0", Value: "chef-server"}),
			CtlCommand:  entities.Constant("chef-server-ctl"),
			ConfigFile:  VersionedAttribute("/etc/opscode/chef-server.rb", VersionOverride{Before: "12.0.0", Value: "/etc/chef-server/chef-server.rb"}),
		},
		entities.ProductDescriptor{
			Name:        "chef-backend",
			ProductName: "Chef Backend",
			PackageName: entities.Constant("chef-backend"),
			CtlCommand:  entities.Constant("chef-backend-ctl"),
			ConfigFile:  entities.Constant("/etc/chef-backend/chef-backend.rb"),
		},
		entities.ProductDescriptor{
			Name:        "manage",
			ProductName: "Management Console",
			PackageName: VersionedAttribute("chef-manage", VersionOverride{Before: "2.0.0", Value: "opscode-manage"}),
			CtlCommand:  VersionedAttribute("chef-manage-ctl", VersionOverride{Before: "2.0.0", Value: "opscode-manage-ctl"}),
			ConfigFile:  VersionedAttribute("/etc/chef-manage/manage.rb", VersionOverride{Before: "2.0.0", Value: "/etc/opscode-manage/manage.rb"}),
		},
		entities.ProductDescriptor{
			Name:        "automate",
			ProductName: "Chef Automate",
			PackageName: VersionedAttribute("automate", VersionOverride{Before: "0.7.0", Value: "delivery"}),
			CtlCommand:  VersionedAttribute("automate-ctl", VersionOverride{Before: "0.7.0", Value: "delivery-ctl"}),
			ConfigFile:  entities.Constant("/etc/delivery/delivery.rb"),
		},
		entities.ProductDescriptor{
			Name:        "chef-workstation",
			ProductName: "Chef Workstation",
			PackageName: entities.Constant("chef-workstation"),
		},
		entities.ProductDescriptor{
			Name:        "chefdk",
			ProductName: "Chef Development Kit",
			PackageName: entities.Constant("chefdk"),
		},
		entities.ProductDescriptor{
			Name:        "inspec",
			ProductName: "Chef InSpec",
			PackageName: entities.Constant("inspec"),
		},
		entities.ProductDescriptor{
			Name:        "supermarket",
			ProductName: "Supermarket",
			PackageName: entities.Constant("supermarket"),
			CtlCommand:  entities.Constant("supermarket-ctl"),
			ConfigFile:  entities.Constant("/etc/supermarket/supermarket.json"),
		},
	)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in product registry: %v", err))
	}
	return registry
}
