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

func runValidate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var (
		catalogDir = fs.String("catalog-dir", defaultCatalogDirectory(), "Path to catalog directory (env "+catalogDirEnv+")")
		product    = fs.String("product", "", "Only validate this product")
		quiet      = fs.Bool("quiet", false, "Only output errors (exit code indicates success/failure)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cauldron validate [options]

Check every catalog for duplicate platform entries, unknown architectures
and artifacts without checksums.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Exit Codes:
  0  All catalogs are well formed
  1  At least one catalog failed validation
  2  Usage error or system error

Examples:
  cauldron validate
  cauldron validate --product chef --quiet
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	failed, err := executeValidate(ctx, os.Stdout, *catalogDir, *product, *quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if failed > 0 {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "%d catalogs failed validation\n", failed)
		}
		os.Exit(1)
	}
}

// executeValidate validates catalogs and returns how many are not ready
func executeValidate(ctx context.Context, out io.Writer, catalogDir, product string, quiet bool) (int, error) {
	repo := yaml.NewCatalogRepository(catalogDir, newLogger(false))
	svc := services.NewCatalogService()

	products := []string{product}
	if product == "" {
		var err error
		if products, err = repo.ListProducts(ctx); err != nil {
			return 0, err
		}
	}

	failed := 0
	for _, p := range products {
		channels, err := repo.ListChannels(ctx, p)
		if err != nil {
			return 0, err
		}
		for _, ch := range channels {
			validation, err := validateCatalog(ctx, repo, svc, p, ch)
			if err != nil {
				return 0, err
			}
			if !validation.IsReady() {
				failed++
				fmt.Fprintf(out, "❌ %s/%s: %s\n", p, ch, validation.ErrorMessage())
				continue
			}
			if !quiet {
				fmt.Fprintf(out, "✅ %s/%s: %d artifacts, %d versions\n", p, ch, validation.RecordCount, len(validation.Versions))
			}
		}
	}

	return failed, nil
}

func validateCatalog(ctx context.Context, repo *yaml.CatalogRepository, svc *services.CatalogService, product string, channel entities.Channel) (*services.CatalogValidation, error) {
	catalog, err := repo.GetCatalog(ctx, product, channel)
	if err != nil {
		return nil, err
	}
	return svc.Validate(*catalog), nil
}
