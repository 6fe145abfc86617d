package services

import (
	"github.com/ochairo/cauldron/internal/domain/entities"
)

// ExactMatch returns the first artifact whose normalized platform triplet
// equals the normalized request. It never falls back.
func ExactMatch(artifacts []entities.Artifact, platform, platformVersion, architecture string) (*entities.Artifact, bool) {
	wantPlatform := NormalizePlatform(platform)
	wantVersion := NormalizePlatformVersion(wantPlatform, platformVersion)
	wantArch := NormalizeArchitecture(architecture)

	for i := range artifacts {
		a := &artifacts[i]
		if NormalizePlatform(a.Platform) != wantPlatform {
			continue
		}
		if NormalizeArchitecture(a.Architecture) != wantArch {
			continue
		}
		if NormalizePlatformVersion(wantPlatform, a.PlatformVersion) != wantVersion {
			continue
		}
		match := *a
		return &match, true
	}

	return nil, false
}

// CompatibleMatch picks the artifact with the nearest platform_version for a
// platform and architecture that has no exact match: the closest version
// below the request, or, when nothing older exists, the closest above.
//
// The second return value reports whether the match came from above.
func CompatibleMatch(artifacts []entities.Artifact, platform, requestedVersion, architecture string) (match *entities.Artifact, above bool) {
	wantPlatform := NormalizePlatform(platform)
	wantVersion := NormalizePlatformVersion(wantPlatform, requestedVersion)
	wantArch := NormalizeArchitecture(architecture)

	var below, over *entities.Artifact
	var belowVersion, overVersion string

	for i := range artifacts {
		a := &artifacts[i]
		if NormalizePlatform(a.Platform) != wantPlatform || NormalizeArchitecture(a.Architecture) != wantArch {
			continue
		}

		v := NormalizePlatformVersion(wantPlatform, a.PlatformVersion)
		switch c := CompareVersions(v, wantVersion); {
		case c < 0:
			// strictly greater keeps the first record of a platform_version
			if below == nil || CompareVersions(v, belowVersion) > 0 {
				below, belowVersion = a, v
			}
		case c > 0:
			if over == nil || CompareVersions(v, overVersion) < 0 {
				over, overVersion = a, v
			}
		}
	}

	switch {
	case below != nil:
		m := *below
		return &m, false
	case over != nil:
		m := *over
		return &m, true
	default:
		return nil, false
	}
}
