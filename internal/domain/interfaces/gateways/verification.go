// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// VerificationGateway checks downloaded artifacts before they are installed
type VerificationGateway interface {
	// VerifyChecksums checks a file against the strongest digest the catalog
	// published and returns the algorithm used
	VerifyChecksums(ctx context.Context, filePath string, sums entities.Checksums) (string, error)

	// ImportSigningKey loads armored or binary public keys from a file
	ImportSigningKey(keyPath string) error

	// VerifySignature checks a detached signature over a file
	VerifySignature(ctx context.Context, filePath, sigPath string) error
}
