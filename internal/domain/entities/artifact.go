// Package entities defines core domain models and data structures.
package entities

// Channel is a release track partitioning catalogs
type Channel string

// Known release channels
const (
	ChannelStable   Channel = "stable"
	ChannelCurrent  Channel = "current"
	ChannelUnstable Channel = "unstable"
)

// Checksums holds the published digests of an artifact. Any of them may be empty.
type Checksums struct {
	SHA256 string
	SHA1   string
	MD5    string
}

// IsEmpty reports whether no digest was published
func (c Checksums) IsEmpty() bool {
	return c.SHA256 == "" && c.SHA1 == "" && c.MD5 == ""
}

// ArtifactMetadata is opaque passthrough data attached to a published build
type ArtifactMetadata struct {
	License            string
	Description        string
	ProductName        string
	ProductDescription string
}

// Artifact represents one published build of a product
type Artifact struct {
	Platform        string // canonical OS family, e.g. "ubuntu", "windows"
	PlatformVersion string // dotted for unix-likes, "2012r2" style for windows
	Architecture    string // canonical name, e.g. "x86_64", "i386", "aarch64"
	Version         string // product version, optionally "+buildstamp"
	URL             string
	Checksums       Checksums
	Metadata        ArtifactMetadata
}

// Triplet returns the platform triplet as a single display string
func (a Artifact) Triplet() string {
	return a.Platform + "/" + a.PlatformVersion + "/" + a.Architecture
}

// Catalog is an ordered set of artifacts for one product and channel
type Catalog struct {
	Product   string
	Channel   Channel
	Artifacts []Artifact
}

// Versions returns the distinct product versions in catalog order
func (c Catalog) Versions() []string {
	seen := make(map[string]bool)
	versions := make([]string, 0)
	for _, a := range c.Artifacts {
		if seen[a.Version] {
			continue
		}
		seen[a.Version] = true
		versions = append(versions, a.Version)
	}
	return versions
}

// AtVersion returns a new catalog holding only the records at version.
// The receiver is left untouched.
func (c Catalog) AtVersion(version string) Catalog {
	narrowed := Catalog{
		Product:   c.Product,
		Channel:   c.Channel,
		Artifacts: make([]Artifact, 0),
	}
	for _, a := range c.Artifacts {
		if a.Version == version {
			narrowed.Artifacts = append(narrowed.Artifacts, a)
		}
	}
	return narrowed
}

// Len returns the number of records
func (c Catalog) Len() int {
	return len(c.Artifacts)
}
