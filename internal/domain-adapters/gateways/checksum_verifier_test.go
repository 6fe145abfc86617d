package gateways

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// Known digests of "Hello, World!"
const (
	helloSHA256 = "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f"
	helloSHA1   = "0a0a9f2a6772942557ab5355d76af442f8f65e01"
	helloMD5    = "65a8e27d8879283831b664bd8b7f0ad4"
)

func writeHello(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte("Hello, World!"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// TestCalculateChecksum tests digest calculation for each algorithm
func TestCalculateChecksum(t *testing.T) {
	path := writeHello(t)
	verifier := NewChecksumVerifier()

	tests := []struct {
		algo ChecksumAlgorithm
		want string
	}{
		{AlgorithmSHA256, helloSHA256},
		{AlgorithmSHA1, helloSHA1},
		{AlgorithmMD5, helloMD5},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			got, err := verifier.CalculateChecksum(path, tt.algo)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateChecksum() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := verifier.CalculateChecksum(path, "crc32"); err == nil {
		t.Error("CalculateChecksum() with unsupported algorithm should return error")
	}
	if _, err := verifier.CalculateChecksum("/nonexistent/file.txt", AlgorithmSHA256); err == nil {
		t.Error("CalculateChecksum() with non-existent file should return error")
	}
}

// TestVerifyChecksum tests single-digest verification
func TestVerifyChecksum(t *testing.T) {
	path := writeHello(t)
	verifier := NewChecksumVerifier()
	ctx := context.Background()

	t.Run("valid checksum", func(t *testing.T) {
		if err := verifier.VerifyChecksum(ctx, path, AlgorithmSHA256, helloSHA256); err != nil {
			t.Errorf("VerifyChecksum() error = %v", err)
		}
	})

	t.Run("uppercase hex", func(t *testing.T) {
		if err := verifier.VerifyChecksum(ctx, path, AlgorithmSHA1, strings.ToUpper(helloSHA1)); err != nil {
			t.Errorf("VerifyChecksum() error = %v", err)
		}
	})

	t.Run("invalid checksum", func(t *testing.T) {
		err := verifier.VerifyChecksum(ctx, path, AlgorithmSHA256, strings.Repeat("0", 64))
		if err == nil || !strings.Contains(err.Error(), "sha256 checksum mismatch") {
			t.Errorf("VerifyChecksum() error = %v, want mismatch", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if err := verifier.VerifyChecksum(cancelled, path, AlgorithmSHA256, helloSHA256); !errors.Is(err, context.Canceled) {
			t.Errorf("VerifyChecksum() error = %v, want context.Canceled", err)
		}
	})
}

// TestVerifyArtifact tests that the strongest published digest is used
func TestVerifyArtifact(t *testing.T) {
	path := writeHello(t)
	verifier := NewChecksumVerifier()

	tests := []struct {
		name     string
		sums     entities.Checksums
		wantAlgo ChecksumAlgorithm
		wantErr  bool
	}{
		{
			name:     "all published",
			sums:     entities.Checksums{SHA256: helloSHA256, SHA1: helloSHA1, MD5: helloMD5},
			wantAlgo: AlgorithmSHA256,
		},
		{
			name:     "sha1 preferred over md5",
			sums:     entities.Checksums{SHA1: helloSHA1, MD5: helloMD5},
			wantAlgo: AlgorithmSHA1,
		},
		{
			name:     "md5 only",
			sums:     entities.Checksums{MD5: helloMD5},
			wantAlgo: AlgorithmMD5,
		},
		{
			// A bad weaker digest is never consulted
			name:     "sha256 wins over wrong md5",
			sums:     entities.Checksums{SHA256: helloSHA256, MD5: "bad"},
			wantAlgo: AlgorithmSHA256,
		},
		{
			name:     "wrong sha256",
			sums:     entities.Checksums{SHA256: strings.Repeat("a", 64), MD5: helloMD5},
			wantAlgo: AlgorithmSHA256,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			algo, err := verifier.VerifyArtifact(context.Background(), path, tt.sums)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyArtifact() error = %v, wantErr %v", err, tt.wantErr)
			}
			if algo != tt.wantAlgo {
				t.Errorf("VerifyArtifact() algorithm = %v, want %v", algo, tt.wantAlgo)
			}
		})
	}

	t.Run("no checksum", func(t *testing.T) {
		_, err := verifier.VerifyArtifact(context.Background(), path, entities.Checksums{})
		if !errors.Is(err, ErrNoChecksum) {
			t.Errorf("VerifyArtifact() error = %v, want ErrNoChecksum", err)
		}
	})
}
