package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ochairo/cauldron/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/cauldron/internal/domain-orchestrators"
	"github.com/ochairo/cauldron/internal/domain/entities"
	domaingateways "github.com/ochairo/cauldron/internal/domain/interfaces/gateways"
	"github.com/ochairo/cauldron/internal/domain/services"
	"github.com/ochairo/cauldron/internal/external-adapters/yaml"
)

type verifyOptions struct {
	filePath   string
	catalogDir string
	request    *orchestrators.FetchRequest // nil when digests are given directly
	checksums  entities.Checksums
	sigPath    string
	keyPath    string
}

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	query := registerQueryFlags(fs)
	var (
		sha256Sum = fs.String("sha256", "", "Expected SHA256 digest")
		sha1Sum   = fs.String("sha1", "", "Expected SHA1 digest")
		md5Sum    = fs.String("md5", "", "Expected MD5 digest")
		sigPath   = fs.String("sig", "", "Detached GPG signature file (.asc)")
		keyPath   = fs.String("key", "", "Public key file for --sig")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cauldron verify [options] <file>

Verify a downloaded package. Checksums come from the catalog entry selected
by --product and the platform flags, or from --sha256/--sha1/--md5. The
strongest available digest is checked.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Verify against the catalog
  cauldron verify --product chef --version 15.8.23 --platform ubuntu --platform-version 18.04 chef_15.8.23-1_amd64.deb

  # Verify a digest and a GPG signature
  cauldron verify --sha256 6b0d... --sig chef.deb.asc --key packages.asc chef.deb
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: file path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	opts := verifyOptions{
		filePath:   fs.Arg(0),
		catalogDir: *query.catalogDir,
		checksums:  entities.Checksums{SHA256: *sha256Sum, SHA1: *sha1Sum, MD5: *md5Sum},
		sigPath:    *sigPath,
		keyPath:    *keyPath,
	}
	if *query.product != "" {
		req, err := query.request()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.request = &req
	}

	if err := executeVerify(ctx, os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeVerify(ctx context.Context, out io.Writer, opts verifyOptions) error {
	gateway := gateways.NewVerificationGateway()

	sums := opts.checksums
	if opts.request != nil {
		artifact, err := catalogArtifact(ctx, opts.catalogDir, *opts.request)
		if err != nil {
			return err
		}
		sums = artifact.Checksums
	}

	verified := 0
	failed := 0

	fmt.Fprintf(out, "🔍 Verifying %s\n\n", filepath.Base(opts.filePath))

	if opts.request != nil || !sums.IsEmpty() {
		algo, err := gateway.VerifyChecksums(ctx, opts.filePath, sums)
		if err != nil {
			fmt.Fprintf(out, "❌ Checksum verification FAILED: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(out, "✅ %s checksum verified\n", algo)
			verified++
		}
	}

	if opts.sigPath != "" {
		if err := verifySignature(ctx, gateway, opts); err != nil {
			fmt.Fprintf(out, "❌ GPG signature verification FAILED: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(out, "✅ GPG signature verified\n")
			verified++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d verification checks failed", failed)
	}
	if verified == 0 {
		return fmt.Errorf("no verification checks performed (specify --product, a digest, or --sig)")
	}
	return nil
}

func verifySignature(ctx context.Context, gateway domaingateways.VerificationGateway, opts verifyOptions) error {
	if opts.keyPath == "" {
		return fmt.Errorf("--key is required with --sig")
	}
	if err := gateway.ImportSigningKey(opts.keyPath); err != nil {
		return err
	}
	return gateway.VerifySignature(ctx, opts.filePath, opts.sigPath)
}

// catalogArtifact resolves the single catalog entry a request names
func catalogArtifact(ctx context.Context, catalogDir string, req orchestrators.FetchRequest) (*entities.Artifact, error) {
	if !req.Query.HasPlatformFilter() {
		return nil, fmt.Errorf("verifying against the catalog requires --platform and --platform-version")
	}

	orch := orchestrators.NewFetchOrchestrator(
		yaml.NewCatalogRepository(catalogDir, nil),
		services.NewResolver(),
		nil,
		nil,
		orchestrators.FetchOrchestratorConfig{},
		nil,
	)
	result, err := orch.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Artifact, nil
}
