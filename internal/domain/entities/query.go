package entities

// VersionLatest asks for the highest version in a catalog
const VersionLatest = "latest"

// ArtifactQuery is a resolution request.
// Platform, PlatformVersion and Architecture are all set or all empty;
// callers validate that before handing the query to the resolver.
type ArtifactQuery struct {
	Platform          string
	PlatformVersion   string
	Architecture      string
	VersionSpec       string // exact version, dotted prefix, or "latest"
	CompatibilityMode bool   // allow nearest platform_version fallback
}

// HasPlatformFilter reports whether any part of the platform triplet was supplied
func (q ArtifactQuery) HasPlatformFilter() bool {
	return q.Platform != "" || q.PlatformVersion != "" || q.Architecture != ""
}

// ResolutionResult holds either a single matched artifact or, when no platform
// filter was requested, every artifact at the resolved version.
type ResolutionResult struct {
	Version   string
	Artifact  *Artifact
	Artifacts []Artifact
}

// IsList reports whether the result is the "all platforms" form
func (r *ResolutionResult) IsList() bool {
	return r.Artifact == nil
}

// All returns the matched artifacts regardless of form
func (r *ResolutionResult) All() []Artifact {
	if r.Artifact != nil {
		return []Artifact{*r.Artifact}
	}
	return r.Artifacts
}
