package services

import (
	"strings"
)

// Canonical architecture names
const (
	ArchX86_64  = "x86_64"
	ArchI386    = "i386"
	ArchSparc   = "sparc"
	ArchPowerPC = "powerpc"
	ArchPPC64   = "ppc64"
	ArchPPC64LE = "ppc64le"
	ArchAArch64 = "aarch64"
	ArchS390X   = "s390x"
)

// KnownArchitectures lists every canonical architecture name
var KnownArchitectures = []string{
	ArchX86_64, ArchI386, ArchSparc, ArchPowerPC, ArchPPC64, ArchPPC64LE, ArchAArch64, ArchS390X,
}

// architectureSynonyms maps reported names to canonical ones.
// Canonical names map to themselves so normalization is idempotent.
var architectureSynonyms = map[string]string{
	"amd64":       ArchX86_64,
	"x64":         ArchX86_64,
	"x86_64":      ArchX86_64,
	"x86":         ArchI386,
	"i686":        ArchI386,
	"i86pc":       ArchI386,
	"i386":        ArchI386,
	"sun4u":       ArchSparc,
	"sun4v":       ArchSparc,
	"sparc":       ArchSparc,
	"ppc64el":     ArchPPC64LE,
	"powerpc64le": ArchPPC64LE,
	"ppc64le":     ArchPPC64LE,
	"arm64":       ArchAArch64,
	"aarch64":     ArchAArch64,
}

// platformSynonyms folds alternate OS family names
var platformSynonyms = map[string]string{
	"macos":  "mac_os_x",
	"darwin": "mac_os_x",
	"osx":    "mac_os_x",
}

// NormalizeArchitecture maps a free-form architecture name to its canonical form.
// Unknown names are returned trimmed and lower-cased.
func NormalizeArchitecture(raw string) string {
	arch := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := architectureSynonyms[arch]; ok {
		return canonical
	}
	return arch
}

// IsKnownArchitecture reports whether arch normalizes to a canonical name
func IsKnownArchitecture(arch string) bool {
	normalized := NormalizeArchitecture(arch)
	for _, known := range KnownArchitectures {
		if normalized == known {
			return true
		}
	}
	return false
}

// NormalizePlatform canonicalizes an OS family name
func NormalizePlatform(raw string) string {
	platform := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := platformSynonyms[platform]; ok {
		return canonical
	}
	return platform
}

// NormalizePlatformVersion canonicalizes a platform version for the given platform.
// Windows labels such as "2012 R2" fold to "2012r2".
func NormalizePlatformVersion(platform, raw string) string {
	version := strings.ToLower(strings.TrimSpace(raw))
	version = strings.TrimRight(version, ". \t\r\n")

	if NormalizePlatform(platform) == "windows" {
		version = strings.Join(strings.Fields(version), "")
	}

	return version
}
