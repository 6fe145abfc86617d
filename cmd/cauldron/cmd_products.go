package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/services"
	"github.com/ochairo/cauldron/internal/external-adapters/yaml"
)

func runProducts(_ context.Context, args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	var (
		productsFile = fs.String("products", "", "Product registry YAML file (default: built-in registry)")
		version      = fs.String("version", entities.VersionLatest, "Product version the names apply to")
		product      = fs.String("product", "", "Only show this product")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cauldron products [options]

Show the package name, control command and config file each product uses
at a given version.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  cauldron products
  cauldron products --product chef-server --version 11.1.6
  cauldron products --products ./products.yml
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	registry := services.DefaultProducts()
	if *productsFile != "" {
		var err error
		registry, err = yaml.NewProductParser().ParseFile(*productsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading products: %v\n", err)
			os.Exit(1)
		}
	}

	if err := executeProducts(os.Stdout, registry, *product, *version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeProducts(out io.Writer, registry *entities.ProductRegistry, product, version string) error {
	names := registry.Names()
	if product != "" {
		if _, ok := registry.Lookup(product); !ok {
			return fmt.Errorf("unknown product %q", product)
		}
		names = []string{product}
	}

	fmt.Fprintf(out, "Products at version %s (%d total):\n\n", version, len(names))
	for _, name := range names {
		d, _ := registry.Lookup(name)
		fmt.Fprintf(out, "  %-20s %s\n", d.Name, d.ProductName)
		fmt.Fprintf(out, "  %-20s Package: %s\n", "", d.PackageNameFor(version))
		if ctl := d.CtlCommandFor(version); ctl != "" {
			fmt.Fprintf(out, "  %-20s Control: %s\n", "", ctl)
		}
		if cfg := d.ConfigFileFor(version); cfg != "" {
			fmt.Fprintf(out, "  %-20s Config:  %s\n", "", cfg)
		}
		fmt.Fprintln(out)
	}
	return nil
}
