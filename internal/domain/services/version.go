package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// component is one dot-separated part of a version, split into its
// leading digits and whatever follows them ("2012r2" -> "2012", "r2").
type component struct {
	digits  string // leading zeros stripped
	suffix  string
	numeric bool
}

func parseComponent(s string) component {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return component{suffix: s}
	}
	digits := strings.TrimLeft(s[:i], "0")
	return component{digits: digits, suffix: s[i:], numeric: true}
}

// compareComponents orders numeric parts before non-numeric ones, numeric
// parts by value, then by suffix with an empty suffix first.
func compareComponents(a, b component) int {
	if a.numeric != b.numeric {
		if a.numeric {
			return -1
		}
		return 1
	}

	if a.numeric {
		// Compare by magnitude without parsing so long build stamps cannot overflow
		if len(a.digits) != len(b.digits) {
			if len(a.digits) < len(b.digits) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.digits, b.digits); c != 0 {
			return c
		}
	}

	if a.suffix == b.suffix {
		return 0
	}
	if a.suffix == "" {
		return -1
	}
	if b.suffix == "" {
		return 1
	}
	return strings.Compare(a.suffix, b.suffix)
}

func compareComponentLists(a, b []string) int {
	for i := range min(len(a), len(b)) {
		if c := compareComponents(parseComponent(a[i]), parseComponent(b[i])); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// splitBuild separates "1.2.3+20160823" into "1.2.3" and "20160823"
func splitBuild(v string) (release, build string) {
	release, build, _ = strings.Cut(v, "+")
	return release, build
}

// CompareVersions compares two version strings.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// Numeric components are compared left to right; a version that is a strict
// prefix of another sorts first. A "+build" suffix only breaks ties between
// equal release parts, and a version without one sorts first.
func CompareVersions(a, b string) int {
	relA, buildA := splitBuild(a)
	relB, buildB := splitBuild(b)

	if c := compareComponentLists(strings.Split(relA, "."), strings.Split(relB, ".")); c != 0 {
		return c
	}

	switch {
	case buildA == "" && buildB == "":
		return 0
	case buildA == "":
		return -1
	case buildB == "":
		return 1
	}

	return compareComponentLists(strings.Split(buildA, "."), strings.Split(buildB, "."))
}

// SortVersions sorts versions in ascending order, in place
func SortVersions(versions []string) {
	slices.SortStableFunc(versions, CompareVersions)
}

// HighestVersion returns the maximum of versions.
// The second return value is false when versions is empty.
func HighestVersion(versions []string) (string, bool) {
	if len(versions) == 0 {
		return "", false
	}
	highest := versions[0]
	for _, v := range versions[1:] {
		if CompareVersions(v, highest) > 0 {
			highest = v
		}
	}
	return highest, true
}

// ResolveVersionSpec turns a version spec into one of the available versions.
//
//   - "latest" (or an empty spec) selects the highest version
//   - a spec ending in "." is a prefix: "13.2." selects the highest 13.2.x
//   - a spec present verbatim in available selects itself
//   - a spec with fewer components than some available version is a prefix
//
// Anything else fails with ErrVersionNotFound.
func ResolveVersionSpec(spec string, available []string) (string, error) {
	spec = strings.TrimSpace(spec)

	if spec == "" || strings.EqualFold(spec, entities.VersionLatest) {
		if v, ok := HighestVersion(available); ok {
			return v, nil
		}
		return "", fmt.Errorf("%w: no versions available", ErrVersionNotFound)
	}

	if strings.HasSuffix(spec, ".") {
		if v, ok := highestWithPrefix(strings.TrimSuffix(spec, "."), available); ok {
			return v, nil
		}
		return "", fmt.Errorf("%w: no version matches prefix %q", ErrVersionNotFound, spec)
	}

	if slices.Contains(available, spec) {
		return spec, nil
	}

	if v, ok := highestWithPrefix(spec, available); ok {
		return v, nil
	}

	return "", fmt.Errorf("%w: no version matches %q", ErrVersionNotFound, spec)
}

// highestWithPrefix returns the highest version whose release components
// start with every component of prefix and carry at least one more, or a
// build suffix. "13.2" matches "13.2.20" and "13.2+5" but not "13.20.1".
func highestWithPrefix(prefix string, available []string) (string, bool) {
	want := strings.Split(prefix, ".")
	matches := make([]string, 0)

	for _, v := range available {
		release, build := splitBuild(v)
		parts := strings.Split(release, ".")
		if len(parts) < len(want) || (len(parts) == len(want) && build == "") {
			continue
		}
		if slices.Equal(parts[:len(want)], want) {
			matches = append(matches, v)
		}
	}

	return HighestVersion(matches)
}
