package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	orchestrators "github.com/ochairo/cauldron/internal/domain-orchestrators"
	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
	"github.com/ochairo/cauldron/internal/domain/services"
	"github.com/ochairo/cauldron/internal/external-adapters/yaml"
)

// artifactView is the JSON shape of a resolved artifact
type artifactView struct {
	Product         string `json:"product"`
	Channel         string `json:"channel"`
	Version         string `json:"version"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Architecture    string `json:"architecture"`
	URL             string `json:"url"`
	SHA256          string `json:"sha256,omitempty"`
	SHA1            string `json:"sha1,omitempty"`
	MD5             string `json:"md5,omitempty"`
	License         string `json:"license,omitempty"`
}

// platformOutcomeView is the JSON shape of one --all-platforms entry
type platformOutcomeView struct {
	Triplet  string        `json:"triplet"`
	Artifact *artifactView `json:"artifact,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func newArtifactView(req orchestrators.FetchRequest, a entities.Artifact) artifactView {
	return artifactView{
		Product:         req.Product,
		Channel:         string(req.Channel),
		Version:         a.Version,
		Platform:        a.Platform,
		PlatformVersion: a.PlatformVersion,
		Architecture:    a.Architecture,
		URL:             a.URL,
		SHA256:          a.Checksums.SHA256,
		SHA1:            a.Checksums.SHA1,
		MD5:             a.Checksums.MD5,
		License:         a.Metadata.License,
	}
}

type resolveOptions struct {
	catalogDir   string
	request      orchestrators.FetchRequest
	jsonOutput   bool
	allPlatforms bool
}

func runResolve(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	query := registerQueryFlags(fs)
	var (
		jsonOutput   = fs.Bool("json", false, "Output as JSON")
		verbose      = fs.Bool("verbose", false, "Log each resolution step to stderr")
		allPlatforms = fs.Bool("all-platforms", false, "Resolve the version for every published platform")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cauldron resolve --product <name> [options]

Resolve the artifact for a product version on a platform. Without a platform
every artifact of the resolved version is listed.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  cauldron resolve --product chef --version 15 --platform ubuntu --platform-version 18.04
  cauldron resolve --product chef --platform windows --platform-version 10 --json
  cauldron resolve --product chef --platform el --platform-version 9 --compat
  cauldron resolve --product chef --version 15.8 --all-platforms
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

	opts := resolveOptions{
		catalogDir:   *query.catalogDir,
		request:      req,
		jsonOutput:   *jsonOutput,
		allPlatforms: *allPlatforms,
	}

	if err := executeResolve(ctx, os.Stdout, newLogger(*verbose), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeResolve(ctx context.Context, out io.Writer, logger interfaces.Logger, opts resolveOptions) error {
	orch := orchestrators.NewFetchOrchestrator(
		yaml.NewCatalogRepository(opts.catalogDir, logger),
		services.NewResolver(services.WithLogger(logger)),
		nil,
		nil,
		orchestrators.FetchOrchestratorConfig{},
		logger,
	)

	if opts.allPlatforms {
		outcomes, err := orch.ResolveAllPlatforms(ctx, opts.request)
		if err != nil {
			return err
		}
		return writeOutcomes(out, opts.request, outcomes, opts.jsonOutput)
	}

	result, err := orch.Resolve(ctx, opts.request)
	if err != nil {
		return err
	}
	return writeResolution(out, opts.request, result, opts.jsonOutput)
}

func writeResolution(out io.Writer, req orchestrators.FetchRequest, result *entities.ResolutionResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if !result.IsList() {
			return enc.Encode(newArtifactView(req, *result.Artifact))
		}
		views := make([]artifactView, 0, len(result.Artifacts))
		for _, a := range result.Artifacts {
			views = append(views, newArtifactView(req, a))
		}
		return enc.Encode(views)
	}

	if !result.IsList() {
		writeArtifact(out, req, *result.Artifact)
		return nil
	}

	fmt.Fprintf(out, "%s %s (%s): %d artifacts\n\n", req.Product, result.Version, req.Channel, len(result.Artifacts))
	for _, a := range result.Artifacts {
		fmt.Fprintf(out, "  %-32s %s\n", a.Triplet(), a.URL)
	}
	return nil
}

func writeArtifact(out io.Writer, req orchestrators.FetchRequest, a entities.Artifact) {
	fmt.Fprintf(out, "%s %s (%s)\n", req.Product, a.Version, req.Channel)
	fmt.Fprintf(out, "  %-10s %s\n", "platform:", a.Triplet())
	fmt.Fprintf(out, "  %-10s %s\n", "url:", a.URL)
	if a.Checksums.SHA256 != "" {
		fmt.Fprintf(out, "  %-10s %s\n", "sha256:", a.Checksums.SHA256)
	}
	if a.Checksums.SHA1 != "" {
		fmt.Fprintf(out, "  %-10s %s\n", "sha1:", a.Checksums.SHA1)
	}
	if a.Checksums.MD5 != "" {
		fmt.Fprintf(out, "  %-10s %s\n", "md5:", a.Checksums.MD5)
	}
	if a.Metadata.License != "" {
		fmt.Fprintf(out, "  %-10s %s\n", "license:", a.Metadata.License)
	}
}

func writeOutcomes(out io.Writer, req orchestrators.FetchRequest, outcomes []services.Outcome, jsonOutput bool) error {
	views := make([]platformOutcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		view := platformOutcomeView{
			Triplet: o.Query.Platform + "/" + o.Query.PlatformVersion + "/" + o.Query.Architecture,
		}
		if o.Err != nil {
			view.Error = o.Err.Error()
		} else {
			a := newArtifactView(req, *o.Result.Artifact)
			view.Artifact = &a
		}
		views = append(views, view)
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	for _, v := range views {
		if v.Error != "" {
			fmt.Fprintf(out, "  %-32s ERROR %s\n", v.Triplet, v.Error)
			continue
		}
		fmt.Fprintf(out, "  %-32s %s %s\n", v.Triplet, v.Artifact.Version, v.Artifact.URL)
	}
	return nil
}
