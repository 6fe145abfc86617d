package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// maxParallelResolutions bounds the goroutines used by ResolveEach
const maxParallelResolutions = 8

// Outcome is the result of resolving one query in a batch
type Outcome struct {
	Query  entities.ArtifactQuery
	Result *entities.ResolutionResult
	Err    error
}

// ResolveEach resolves independent queries against the same catalog in
// parallel. Outcomes are returned in query order; per-query failures are
// recorded in Outcome.Err. Only context cancellation is returned as an error.
func ResolveEach(ctx context.Context, r *Resolver, catalog entities.Catalog, queries []entities.ArtifactQuery) ([]Outcome, error) {
	outcomes := make([]Outcome, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelResolutions)

	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := r.Resolve(catalog, q)
			outcomes[i] = Outcome{Query: q, Result: result, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// PlatformQueries builds one query per distinct platform triplet published at
// version, for resolving "every platform" of a release.
func PlatformQueries(catalog entities.Catalog, version string) []entities.ArtifactQuery {
	seen := make(map[string]bool)
	queries := make([]entities.ArtifactQuery, 0)

	narrowed := catalog.AtVersion(version)
	for _, a := range narrowed.Artifacts {
		key := a.Triplet()
		if seen[key] {
			continue
		}
		seen[key] = true
		queries = append(queries, entities.ArtifactQuery{
			Platform:        a.Platform,
			PlatformVersion: a.PlatformVersion,
			Architecture:    a.Architecture,
			VersionSpec:     version,
		})
	}
	return queries
}
