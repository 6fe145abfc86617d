package services

import (
	"fmt"
)

// AliasTable maps platform -> requested platform_version -> alternate
// platform_versions known to be served by the same builds.
// An AliasTable is not modified after construction.
type AliasTable struct {
	entries map[string]map[string][]string
}

// NewAliasTable builds a table from raw entries. Keys and values are
// normalized so lookups agree with the resolver.
func NewAliasTable(entries map[string]map[string][]string) (*AliasTable, error) {
	t := &AliasTable{entries: make(map[string]map[string][]string, len(entries))}

	for rawPlatform, versions := range entries {
		platform := NormalizePlatform(rawPlatform)
		if platform == "" {
			return nil, fmt.Errorf("alias table entry has empty platform")
		}
		if _, ok := t.entries[platform]; !ok {
			t.entries[platform] = make(map[string][]string, len(versions))
		}

		for rawVersion, alternates := range versions {
			version := NormalizePlatformVersion(platform, rawVersion)
			if version == "" {
				return nil, fmt.Errorf("alias table entry for %s has empty platform_version", platform)
			}
			normalized := make([]string, 0, len(alternates))
			for _, alt := range alternates {
				alt = NormalizePlatformVersion(platform, alt)
				if alt == "" {
					return nil, fmt.Errorf("alias %s/%s has empty alternate", platform, version)
				}
				normalized = append(normalized, alt)
			}
			t.entries[platform][version] = append(t.entries[platform][version], normalized...)
		}
	}

	return t, nil
}

// DefaultAliasTable returns the built-in substitution table.
//
// Windows client releases and nano images install the server builds; macOS
// point-zero releases are published without the ".0"; Solaris builds carry
// the SunOS label; Amazon Linux 2 installs the el 7 builds.
func DefaultAliasTable() *AliasTable {
	t, err := NewAliasTable(map[string]map[string][]string{
		"windows": {
			"7":        {"2008r2"},
			"8":        {"2012"},
			"8.1":      {"2012r2"},
			"10":       {"2016"},
			"11":       {"2022"},
			"2016nano": {"2016"},
		},
		"mac_os_x": {
			"11.0": {"11"},
			"12.0": {"12"},
			"13.0": {"13"},
			"14.0": {"14"},
		},
		"solaris2": {
			"10": {"5.10"},
			"11": {"5.11"},
		},
		"el": {
			"2": {"7"},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("invalid built-in alias table: %v", err))
	}
	return t
}

// Expand returns the platform_versions to try for a request, most specific
// first. The requested value is always first; unknown values yield only it.
func (t *AliasTable) Expand(platform, platformVersion string) []string {
	candidates := []string{platformVersion}
	if t == nil {
		return candidates
	}

	p := NormalizePlatform(platform)
	alternates := t.entries[p][NormalizePlatformVersion(p, platformVersion)]

	seen := map[string]bool{NormalizePlatformVersion(p, platformVersion): true}
	for _, alt := range alternates {
		if seen[alt] {
			continue
		}
		seen[alt] = true
		candidates = append(candidates, alt)
	}
	return candidates
}

// Len returns the number of aliased platform_versions across all platforms
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, versions := range t.entries {
		n += len(versions)
	}
	return n
}
