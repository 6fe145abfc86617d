package gateways

import (
	"context"
	"crypto/md5"  //nolint:gosec // G501: md5 is published by legacy catalogs and only used for integrity
	"crypto/sha1" //nolint:gosec // G505: sha1 is published by legacy catalogs and only used for integrity
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// ChecksumAlgorithm names a digest published alongside an artifact
type ChecksumAlgorithm string

const (
	AlgorithmSHA256 ChecksumAlgorithm = "sha256"
	AlgorithmSHA1   ChecksumAlgorithm = "sha1"
	AlgorithmMD5    ChecksumAlgorithm = "md5"
)

// ErrNoChecksum is returned when an artifact carries no digest to verify against
var ErrNoChecksum = errors.New("no checksum published")

// ChecksumVerifier verifies downloaded artifacts against their catalog digests
type ChecksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier() *ChecksumVerifier {
	return &ChecksumVerifier{}
}

func newHash(algo ChecksumAlgorithm) (hash.Hash, error) {
	switch algo {
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA1:
		return sha1.New(), nil //nolint:gosec // G401: integrity check only
	case AlgorithmMD5:
		return md5.New(), nil //nolint:gosec // G401: integrity check only
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algo)
	}
}

// strongest picks the strongest digest present, sha256 first
func strongest(sums entities.Checksums) (ChecksumAlgorithm, string, bool) {
	switch {
	case sums.SHA256 != "":
		return AlgorithmSHA256, sums.SHA256, true
	case sums.SHA1 != "":
		return AlgorithmSHA1, sums.SHA1, true
	case sums.MD5 != "":
		return AlgorithmMD5, sums.MD5, true
	default:
		return "", "", false
	}
}

// CalculateChecksum calculates the hex digest of a file
func (v *ChecksumVerifier) CalculateChecksum(filePath string, algo ChecksumAlgorithm) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}

	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum verifies a file against a single expected digest.
// Hex case is ignored.
func (v *ChecksumVerifier) VerifyChecksum(ctx context.Context, filePath string, algo ChecksumAlgorithm, expectedSum string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	actualSum, err := v.CalculateChecksum(filePath, algo)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actualSum, strings.TrimSpace(expectedSum)) {
		return fmt.Errorf("%s checksum mismatch: expected %s, got %s", algo, expectedSum, actualSum)
	}

	return nil
}

// VerifyArtifact checks a file against the strongest digest the catalog
// published for it and reports which algorithm was used.
func (v *ChecksumVerifier) VerifyArtifact(ctx context.Context, filePath string, sums entities.Checksums) (ChecksumAlgorithm, error) {
	algo, expected, ok := strongest(sums)
	if !ok {
		return "", ErrNoChecksum
	}

	if err := v.VerifyChecksum(ctx, filePath, algo, expected); err != nil {
		return algo, err
	}
	return algo, nil
}
