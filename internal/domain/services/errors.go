package services

import (
	"errors"
	"fmt"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// Sentinel errors for resolution failures.
var (
	// ErrVersionNotFound indicates the version spec matched no catalog version.
	ErrVersionNotFound = errors.New("version not found")

	// ErrArtifactsNotFound indicates no artifact matched the platform triplet.
	ErrArtifactsNotFound = errors.New("artifacts not found")
)

// NotFoundKind says which resolution stage failed
type NotFoundKind string

// Resolution failure kinds
const (
	KindVersionNotFound   NotFoundKind = "version_not_found"
	KindArtifactsNotFound NotFoundKind = "artifacts_not_found"
)

// NotFoundError carries the original query of a failed resolution so callers
// can format a message with the values exactly as the user supplied them.
type NotFoundError struct {
	Kind    NotFoundKind
	Product string
	Channel entities.Channel
	Version string // resolved version; empty when version resolution failed
	Query   entities.ArtifactQuery
	Reason  string
}

func (e *NotFoundError) Error() string {
	spec := e.Query.VersionSpec
	if spec == "" {
		spec = entities.VersionLatest
	}

	if e.Kind == KindVersionNotFound {
		msg := fmt.Sprintf("no version matching %q found for product %q channel %q", spec, e.Product, e.Channel)
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
		return msg
	}

	version := fmt.Sprintf("%q", spec)
	if e.Version != "" && e.Version != spec {
		version += fmt.Sprintf(" (resolved %q)", e.Version)
	}
	return fmt.Sprintf("no artifacts found for product %q channel %q version %s platform %q platform_version %q architecture %q",
		e.Product, e.Channel, version, e.Query.Platform, e.Query.PlatformVersion, e.Query.Architecture)
}

// Is lets errors.Is match the sentinel for the failure kind
func (e *NotFoundError) Is(target error) bool {
	switch e.Kind {
	case KindVersionNotFound:
		return target == ErrVersionNotFound
	case KindArtifactsNotFound:
		return target == ErrArtifactsNotFound
	default:
		return false
	}
}

// IsNotFound reports whether err is any resolution not-found failure
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVersionNotFound) || errors.Is(err, ErrArtifactsNotFound)
}
