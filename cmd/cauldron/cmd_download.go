package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/cauldron/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/cauldron/internal/domain-orchestrators"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
	"github.com/ochairo/cauldron/internal/domain/services"
	"github.com/ochairo/cauldron/internal/external-adapters/yaml"
)

type downloadOptions struct {
	catalogDir string
	outputDir  string
	keyPath    string
	request    orchestrators.FetchRequest
}

func runDownload(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	query := registerQueryFlags(fs)
	var (
		outputDir = fs.String("output", "dist", "Output directory for downloaded packages")
		keyPath   = fs.String("key", "", "Public key file; when set the <url>.asc signature is verified")
		verbose   = fs.Bool("verbose", false, "Log each step to stderr")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cauldron download --product <name> --platform <p> --platform-version <v> [options]

Resolve an artifact, download it and check it against the catalog checksum.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  cauldron download --product chef --version 15 --platform ubuntu --platform-version 18.04
  cauldron download --product inspec --platform windows --platform-version 2019 --compat --output ./pkgs
  cauldron download --product chef --platform el --platform-version 8 --key packages-chef-io.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	req, err := query.request()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	opts := downloadOptions{
		catalogDir: *query.catalogDir,
		outputDir:  *outputDir,
		keyPath:    *keyPath,
		request:    req,
	}

	if err := executeDownload(ctx, os.Stdout, newLogger(*verbose), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeDownload(ctx context.Context, out io.Writer, logger interfaces.Logger, opts downloadOptions) error {
	verifier := gateways.NewVerificationGateway()
	if opts.keyPath != "" {
		if err := verifier.ImportSigningKey(opts.keyPath); err != nil {
			return err
		}
	}

	orch := orchestrators.NewFetchOrchestrator(
		yaml.NewCatalogRepository(opts.catalogDir, logger),
		services.NewResolver(services.WithLogger(logger)),
		gateways.NewDownloader(logger),
		verifier,
		orchestrators.FetchOrchestratorConfig{
			VerifySignature: opts.keyPath != "",
			OutputDir:       opts.outputDir,
		},
		logger,
	)

	result, err := orch.Fetch(ctx, opts.request)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, result.GetFetchSummary())
	return nil
}
