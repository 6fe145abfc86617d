package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "resolve":
		runResolve(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	case "validate":
		runValidate(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "download":
		runDownload(ctx, os.Args[2:])
	case "products":
		runProducts(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cauldron - Package artifact resolver

Usage:
  cauldron <command> [options]

Commands:
  resolve   Resolve the artifact for a product, version and platform
  list      List products, channels and catalog versions
  validate  Check catalogs for duplicate or incomplete entries
  verify    Verify a downloaded file against its catalog checksum or signature
  download  Resolve, download and verify an artifact
  products  Show package names and commands per product version

Environment:
  CAULDRON_CATALOG_DIR  Default catalog directory (default "catalogs")

Use "cauldron <command> --help" for more information about a command.`)
}
