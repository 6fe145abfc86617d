package services

import (
	"strings"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
)

// Resolver turns an artifact query into catalog entries.
//
// A Resolver holds only its alias table and logger, neither of which it
// modifies, so one value may serve concurrent calls.
type Resolver struct {
	aliases *AliasTable
	logger  interfaces.Logger
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithAliasTable replaces the built-in alias table
func WithAliasTable(t *AliasTable) ResolverOption {
	return func(r *Resolver) {
		r.aliases = t
	}
}

// WithLogger sets the logger used for the resolution trail
func WithLogger(l interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver using the built-in alias table and no logging
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		aliases: DefaultAliasTable(),
		logger:  &interfaces.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve selects the artifacts in catalog that satisfy query.
//
// With no platform filter the result lists every artifact at the resolved
// version. Otherwise it holds exactly one artifact: an exact triplet match,
// trying alias substitutions in order, then the nearest compatible
// platform_version if the query allows it. Failures are *NotFoundError.
func (r *Resolver) Resolve(catalog entities.Catalog, query entities.ArtifactQuery) (*entities.ResolutionResult, error) {
	notFound := &NotFoundError{
		Product: catalog.Product,
		Channel: catalog.Channel,
		Query:   query,
	}

	version, err := ResolveVersionSpec(query.VersionSpec, catalog.Versions())
	if err != nil {
		r.logger.Debug("version spec did not resolve",
			interfaces.F("product", catalog.Product),
			interfaces.F("spec", query.VersionSpec))
		notFound.Kind = KindVersionNotFound
		notFound.Reason = reason(err)
		return nil, notFound
	}
	notFound.Version = version

	r.logger.Debug("version resolved",
		interfaces.F("product", catalog.Product),
		interfaces.F("spec", query.VersionSpec),
		interfaces.F("version", version))

	narrowed := catalog.AtVersion(version)

	if !query.HasPlatformFilter() {
		return &entities.ResolutionResult{
			Version:   version,
			Artifacts: narrowed.Artifacts,
		}, nil
	}

	platform := NormalizePlatform(query.Platform)
	arch := NormalizeArchitecture(query.Architecture)

	for _, candidate := range r.aliases.Expand(platform, query.PlatformVersion) {
		if match, ok := ExactMatch(narrowed.Artifacts, platform, candidate, arch); ok {
			r.logger.Debug("platform matched",
				interfaces.F("triplet", match.Triplet()),
				interfaces.F("requested", query.PlatformVersion))
			return &entities.ResolutionResult{Version: version, Artifact: match}, nil
		}
	}

	if query.CompatibilityMode {
		match, above := CompatibleMatch(narrowed.Artifacts, platform, query.PlatformVersion, arch)
		if match != nil {
			if above {
				r.logger.Warn("no older compatible build, using nearest newer platform version",
					interfaces.F("requested", query.PlatformVersion),
					interfaces.F("selected", match.PlatformVersion))
			} else {
				r.logger.Info("using nearest older compatible platform version",
					interfaces.F("requested", query.PlatformVersion),
					interfaces.F("selected", match.PlatformVersion))
			}
			return &entities.ResolutionResult{Version: version, Artifact: match}, nil
		}
	}

	notFound.Kind = KindArtifactsNotFound
	return nil, notFound
}

// reason strips the sentinel prefix from a version resolution error
func reason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrVersionNotFound.Error()+": ")
}
