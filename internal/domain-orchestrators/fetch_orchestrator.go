// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
	"github.com/ochairo/cauldron/internal/domain/interfaces/gateways"
	"github.com/ochairo/cauldron/internal/domain/interfaces/repositories"
	"github.com/ochairo/cauldron/internal/domain/services"
)

// signatureSuffix is appended to an artifact URL to locate its detached signature
const signatureSuffix = ".asc"

// Downloader interface for fetching resolved artifacts
type Downloader interface {
	Download(ctx context.Context, artifact entities.Artifact, destDir string) (string, error)
	DownloadURL(ctx context.Context, rawURL, destPath string) (string, error)
}

// SignatureURL returns the location of the detached signature published next
// to an artifact. The suffix goes on the path so query strings survive.
func SignatureURL(artifactURL string) (string, error) {
	u, err := url.Parse(artifactURL)
	if err != nil {
		return "", fmt.Errorf("invalid artifact URL %q: %w", artifactURL, err)
	}
	if u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return "", fmt.Errorf("artifact URL %q has no file name", artifactURL)
	}
	u.Path += signatureSuffix
	u.RawPath = ""
	return u.String(), nil
}

// FetchRequest names a catalog and the query to resolve against it
type FetchRequest struct {
	Product string
	Channel entities.Channel
	Query   entities.ArtifactQuery
}

// FetchOrchestrator coordinates catalog loading, resolution, download and
// signature verification
type FetchOrchestrator struct {
	catalogs        repositories.CatalogRepository
	resolver        *services.Resolver
	downloader      Downloader
	verifier        gateways.VerificationGateway
	logger          interfaces.Logger
	verifySignature bool
	outputDir       string
}

// FetchOrchestratorConfig holds configuration for the orchestrator
type FetchOrchestratorConfig struct {
	// VerifySignature downloads <url>.asc and checks it with the verifier.
	// Signing keys must already be imported into the verifier.
	VerifySignature bool
	OutputDir       string
}

// NewFetchOrchestrator creates a new fetch orchestrator.
// downloader and verifier may be nil when only Resolve is used.
func NewFetchOrchestrator(
	catalogs repositories.CatalogRepository,
	resolver *services.Resolver,
	downloader Downloader,
	verifier gateways.VerificationGateway,
	config FetchOrchestratorConfig,
	logger interfaces.Logger,
) *FetchOrchestrator {
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = "dist"
	}
	if resolver == nil {
		resolver = services.NewResolver()
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &FetchOrchestrator{
		catalogs:        catalogs,
		resolver:        resolver,
		downloader:      downloader,
		verifier:        verifier,
		logger:          logger,
		verifySignature: config.VerifySignature,
		outputDir:       outputDir,
	}
}

// FetchResult contains the result of a fetch operation
type FetchResult struct {
	Request           FetchRequest
	Artifact          *entities.Artifact
	Path              string
	SignatureVerified bool
	ResolveDuration   time.Duration
	DownloadDuration  time.Duration
	TotalDuration     time.Duration
	Success           bool
	Error             error
}

// Resolve loads the requested catalog and resolves the query against it
func (o *FetchOrchestrator) Resolve(ctx context.Context, req FetchRequest) (*entities.ResolutionResult, error) {
	catalog, err := o.catalogs.GetCatalog(ctx, req.Product, req.Channel)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return o.resolver.Resolve(*catalog, req.Query)
}

// ResolveAllPlatforms resolves the query's version for every platform
// triplet the catalog publishes at that version
func (o *FetchOrchestrator) ResolveAllPlatforms(ctx context.Context, req FetchRequest) ([]services.Outcome, error) {
	catalog, err := o.catalogs.GetCatalog(ctx, req.Product, req.Channel)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// List mode resolves the version and reports version errors uniformly
	listing := req.Query
	listing.Platform, listing.PlatformVersion, listing.Architecture = "", "", ""
	resolved, err := o.resolver.Resolve(*catalog, listing)
	if err != nil {
		return nil, err
	}
	version := resolved.Version

	queries := services.PlatformQueries(*catalog, version)
	o.logger.Debug("resolving all platforms",
		interfaces.F("version", version),
		interfaces.F("triplets", len(queries)))

	return services.ResolveEach(ctx, o.resolver, *catalog, queries)
}

// Fetch executes the complete resolve, download and verify workflow.
// The query must carry a full platform triplet.
func (o *FetchOrchestrator) Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	startTime := time.Now()
	result := &FetchResult{Request: req}

	if o.downloader == nil {
		result.Error = fmt.Errorf("no downloader configured")
		return result, result.Error
	}
	q := req.Query
	if q.Platform == "" || q.PlatformVersion == "" || q.Architecture == "" {
		result.Error = fmt.Errorf("fetch requires platform, platform_version and architecture")
		return result, result.Error
	}

	// Step 1: Resolve
	resolution, err := o.Resolve(ctx, req)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Artifact = resolution.Artifact
	result.ResolveDuration = time.Since(startTime)

	// Step 2: Download and verify checksum
	downloadStart := time.Now()
	path, err := o.downloader.Download(ctx, *resolution.Artifact, o.outputDir)
	if err != nil {
		result.Error = fmt.Errorf("failed to download artifact: %w", err)
		return result, result.Error
	}
	result.Path = path
	result.DownloadDuration = time.Since(downloadStart)

	// Step 3: Signature (if enabled)
	if o.verifySignature {
		if err := o.checkSignature(ctx, resolution.Artifact, path); err != nil {
			result.Error = err
			return result, result.Error
		}
		result.SignatureVerified = true
	}

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

func (o *FetchOrchestrator) checkSignature(ctx context.Context, artifact *entities.Artifact, path string) error {
	if o.verifier == nil {
		return fmt.Errorf("signature verification requested but no verifier configured")
	}

	sigURL, err := SignatureURL(artifact.URL)
	if err != nil {
		return err
	}

	sigPath, err := o.downloader.DownloadURL(ctx, sigURL, path+signatureSuffix)
	if err != nil {
		return fmt.Errorf("failed to download signature: %w", err)
	}
	if err := o.verifier.VerifySignature(ctx, path, sigPath); err != nil {
		return fmt.Errorf("signature check failed for %s: %w", artifact.Triplet(), err)
	}

	o.logger.Info("signature verified", interfaces.F("file", path))
	return nil
}

// GetFetchSummary returns a human-readable summary of the fetch
func (r *FetchResult) GetFetchSummary() string {
	if !r.Success {
		return fmt.Sprintf("Fetch failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`Fetch successful!
Product: %s (%s)
Version: %s
Platform: %s
File: %s
Resolve: %v
Download: %v
Total: %v`,
		r.Request.Product,
		r.Request.Channel,
		r.Artifact.Version,
		r.Artifact.Triplet(),
		r.Path,
		r.ResolveDuration,
		r.DownloadDuration,
		r.TotalDuration,
	)

	if r.SignatureVerified {
		summary += "\nSignature: VERIFIED"
	}

	return summary
}
