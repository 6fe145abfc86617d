package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	orchestrators "github.com/ochairo/cauldron/internal/domain-orchestrators"
	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
	"github.com/ochairo/cauldron/internal/domain/services"
)

const (
	catalogDirEnv     = "CAULDRON_CATALOG_DIR"
	defaultCatalogDir = "catalogs"

	// defaultArchitecture applies when a platform is given without --arch
	defaultArchitecture = services.ArchX86_64

	// nativeArchitecture asks for the architecture of the running host
	nativeArchitecture = "native"
)

// defaultCatalogDirectory returns the catalog directory from the environment
func defaultCatalogDirectory() string {
	if dir := os.Getenv(catalogDirEnv); dir != "" {
		return dir
	}
	return defaultCatalogDir
}

// newLogger returns a stderr logger; verbose lowers the threshold to debug
func newLogger(verbose bool) interfaces.Logger {
	level := interfaces.LevelInfo
	if verbose {
		level = interfaces.LevelDebug
	}
	return interfaces.NewWriterLogger(os.Stderr, level)
}

// queryFlags are the flags shared by commands that resolve an artifact
type queryFlags struct {
	catalogDir      *string
	product         *string
	channel         *string
	version         *string
	platform        *string
	platformVersion *string
	arch            *string
	compat          *bool
}

func registerQueryFlags(fs *flag.FlagSet) *queryFlags {
	return &queryFlags{
		catalogDir:      fs.String("catalog-dir", defaultCatalogDirectory(), "Path to catalog directory (env "+catalogDirEnv+")"),
		product:         fs.String("product", "", "Product name (required)"),
		channel:         fs.String("channel", string(entities.ChannelStable), "Release channel (stable, current, unstable)"),
		version:         fs.String("version", entities.VersionLatest, "Version: exact, prefix (e.g. 15 or 15.8) or latest"),
		platform:        fs.String("platform", "", "Platform (e.g. ubuntu, el, windows, mac_os_x)"),
		platformVersion: fs.String("platform-version", "", "Platform version (e.g. 18.04, 2012r2)"),
		arch:            fs.String("arch", "", "Architecture (default x86_64 when --platform is set; \"native\" for this host, ignored without --platform)"),
		compat:          fs.Bool("compat", false, "Fall back to the nearest compatible platform version"),
	}
}

// request builds a validated fetch request from the parsed flags
func (f *queryFlags) request() (orchestrators.FetchRequest, error) {
	if strings.TrimSpace(*f.product) == "" {
		return orchestrators.FetchRequest{}, fmt.Errorf("--product is required")
	}

	query := entities.ArtifactQuery{
		Platform:          *f.platform,
		PlatformVersion:   *f.platformVersion,
		Architecture:      *f.arch,
		VersionSpec:       *f.version,
		CompatibilityMode: *f.compat,
	}
	query = applyArchitectureDefault(query)

	if err := ValidateQuery(query); err != nil {
		return orchestrators.FetchRequest{}, err
	}

	return orchestrators.FetchRequest{
		Product: *f.product,
		Channel: entities.Channel(*f.channel),
		Query:   query,
	}, nil
}

// applyArchitectureDefault fills in the architecture when a platform was given.
// "native" without a platform or platform version selects nothing.
func applyArchitectureDefault(q entities.ArtifactQuery) entities.ArtifactQuery {
	hasPlatform := q.Platform != "" || q.PlatformVersion != ""

	switch {
	case strings.EqualFold(q.Architecture, nativeArchitecture) && !hasPlatform:
		q.Architecture = ""
	case strings.EqualFold(q.Architecture, nativeArchitecture):
		q.Architecture = detectArchitecture()
	case q.Architecture == "" && q.Platform != "":
		q.Architecture = defaultArchitecture
	}
	return q
}

// ValidateQuery rejects queries naming only part of a platform triplet.
// The resolver assumes all three are set or none are.
func ValidateQuery(q entities.ArtifactQuery) error {
	if !q.HasPlatformFilter() {
		return nil
	}

	missing := make([]string, 0, 3)
	if strings.TrimSpace(q.Platform) == "" {
		missing = append(missing, "--platform")
	}
	if strings.TrimSpace(q.PlatformVersion) == "" {
		missing = append(missing, "--platform-version")
	}
	if strings.TrimSpace(q.Architecture) == "" {
		missing = append(missing, "--arch")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete platform: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func detectArchitecture() string {
	// Map Go's GOARCH to catalog architecture names
	archMap := map[string]string{
		"amd64":   services.ArchX86_64,
		"386":     services.ArchI386,
		"arm64":   services.ArchAArch64,
		"ppc64":   services.ArchPPC64,
		"ppc64le": services.ArchPPC64LE,
		"s390x":   services.ArchS390X,
	}

	if mapped, ok := archMap[runtime.GOARCH]; ok {
		return mapped
	}
	return runtime.GOARCH
}
