package gateways

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// Test creating verification gateway with custom dependencies
func TestNewVerificationGatewayWithDeps(t *testing.T) {
	checksum := NewChecksumVerifier()
	gpg := NewGPGVerifier()

	gateway := NewVerificationGatewayWithDeps(checksum, gpg)

	composite, ok := gateway.(*compositeVerificationGateway)
	if !ok {
		t.Fatal("Gateway is not of type *compositeVerificationGateway")
	}
	if composite.checksumVerifier != checksum {
		t.Error("checksumVerifier not set correctly")
	}
	if composite.gpgVerifier != gpg {
		t.Error("gpgVerifier not set correctly")
	}
}

func TestVerificationGateway_VerifyChecksums(t *testing.T) {
	path := writeHello(t)
	gateway := NewVerificationGateway()

	algo, err := gateway.VerifyChecksums(context.Background(), path, entities.Checksums{SHA1: helloSHA1})
	if err != nil {
		t.Fatalf("VerifyChecksums() error = %v", err)
	}
	if algo != "sha1" {
		t.Errorf("VerifyChecksums() algorithm = %v, want sha1", algo)
	}

	if _, err := gateway.VerifyChecksums(context.Background(), path, entities.Checksums{}); !errors.Is(err, ErrNoChecksum) {
		t.Errorf("VerifyChecksums() error = %v, want ErrNoChecksum", err)
	}
}

func TestVerificationGateway_VerifySignature(t *testing.T) {
	signer, err := openpgp.NewEntity("Release Signing", "test", "release@example.com", nil)
	if err != nil {
		t.Fatalf("NewEntity() error = %v", err)
	}

	tmpDir := t.TempDir()
	dataPath := writeHello(t)
	sigPath := filepath.Join(tmpDir, "hello.txt.asc")
	keyPath := filepath.Join(tmpDir, "release.asc")

	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, signer, bytes.NewReader([]byte("Hello, World!")), nil); err != nil {
		t.Fatalf("ArmoredDetachSign() error = %v", err)
	}
	if err := os.WriteFile(sigPath, sig.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	var key bytes.Buffer
	w, err := armor.Encode(&key, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := signer.Serialize(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyPath, key.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	gateway := NewVerificationGateway()

	// No key imported yet
	if err := gateway.VerifySignature(context.Background(), dataPath, sigPath); err == nil {
		t.Error("VerifySignature() without keys should fail")
	}

	if err := gateway.ImportSigningKey(keyPath); err != nil {
		t.Fatalf("ImportSigningKey() error = %v", err)
	}
	if err := gateway.VerifySignature(context.Background(), dataPath, sigPath); err != nil {
		t.Errorf("VerifySignature() error = %v", err)
	}
}
