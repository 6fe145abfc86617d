package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/services"
	"github.com/ochairo/cauldron/internal/external-adapters/yaml"
)

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		catalogDir = fs.String("catalog-dir", defaultCatalogDirectory(), "Path to catalog directory (env "+catalogDirEnv+")")
		product    = fs.String("product", "", "Show the versions of one product")
		channel    = fs.String("channel", string(entities.ChannelStable), "Channel used with --product")
		version    = fs.String("version", "", "Show the platforms of one version (exact, prefix or latest)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cauldron list [options]

List the products and channels in the catalog directory, or the versions
published for one product channel.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  cauldron list
  cauldron list --product chef --channel current
  cauldron list --product chef --version 15.8
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch {
	case *product != "" && *version != "":
		err = executeListPlatforms(ctx, os.Stdout, *catalogDir, *product, entities.Channel(*channel), *version)
	case *product != "":
		err = executeListVersions(ctx, os.Stdout, *catalogDir, *product, entities.Channel(*channel))
	default:
		err = executeListProducts(ctx, os.Stdout, *catalogDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing catalogs: %v\n", err)
		os.Exit(1)
	}
}

func executeListProducts(ctx context.Context, out io.Writer, catalogDir string) error {
	repo := yaml.NewCatalogRepository(catalogDir, newLogger(false))

	products, err := repo.ListProducts(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Available products (%d total):\n\n", len(products))
	for _, p := range products {
		channels, err := repo.ListChannels(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-20s Channels: %v\n", p, channels)
	}
	return nil
}

func executeListVersions(ctx context.Context, out io.Writer, catalogDir, product string, channel entities.Channel) error {
	repo := yaml.NewCatalogRepository(catalogDir, newLogger(false))

	catalog, err := repo.GetCatalog(ctx, product, channel)
	if err != nil {
		return err
	}

	versions := catalog.Versions()
	services.SortVersions(versions)
	slices.Reverse(versions)

	fmt.Fprintf(out, "%s %s (%d versions):\n\n", product, channel, len(versions))
	for _, v := range versions {
		fmt.Fprintf(out, "  %-24s %d artifacts\n", v, catalog.AtVersion(v).Len())
	}
	return nil
}

func executeListPlatforms(ctx context.Context, out io.Writer, catalogDir, product string, channel entities.Channel, spec string) error {
	repo := yaml.NewCatalogRepository(catalogDir, newLogger(false))

	catalog, err := repo.GetCatalog(ctx, product, channel)
	if err != nil {
		return err
	}

	version, err := services.ResolveVersionSpec(spec, catalog.Versions())
	if err != nil {
		return err
	}

	platforms := services.NewCatalogService().Platforms(*catalog, version)
	fmt.Fprintf(out, "%s %s (%s): %d platforms\n\n", product, version, channel, len(platforms))
	for _, p := range platforms {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
