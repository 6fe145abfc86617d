package gateways

import (
	"context"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces/gateways"
)

// compositeVerificationGateway implements the VerificationGateway interface by
// composing the checksum and signature verifiers
type compositeVerificationGateway struct {
	checksumVerifier *ChecksumVerifier
	gpgVerifier      *gpgVerifier
}

// NewVerificationGateway creates a new verification gateway with all dependencies
func NewVerificationGateway() gateways.VerificationGateway {
	return &compositeVerificationGateway{
		checksumVerifier: NewChecksumVerifier(),
		gpgVerifier:      NewGPGVerifier(),
	}
}

// NewVerificationGatewayWithDeps creates a verification gateway with custom dependencies
func NewVerificationGatewayWithDeps(checksum *ChecksumVerifier, gpg *gpgVerifier) gateways.VerificationGateway {
	return &compositeVerificationGateway{
		checksumVerifier: checksum,
		gpgVerifier:      gpg,
	}
}

// VerifyChecksums checks a file against the strongest published digest
func (c *compositeVerificationGateway) VerifyChecksums(ctx context.Context, filePath string, sums entities.Checksums) (string, error) {
	algo, err := c.checksumVerifier.VerifyArtifact(ctx, filePath, sums)
	return string(algo), err
}

// ImportSigningKey loads public keys from a local file
func (c *compositeVerificationGateway) ImportSigningKey(keyPath string) error {
	return c.gpgVerifier.ImportGPGKeyFromFile(keyPath)
}

// VerifySignature checks a detached signature over a file
func (c *compositeVerificationGateway) VerifySignature(ctx context.Context, filePath, sigPath string) error {
	return c.gpgVerifier.VerifyGPGSignatureFromFile(ctx, filePath, sigPath)
}
