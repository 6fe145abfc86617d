// Package gpg verifies detached OpenPGP signatures over downloaded artifacts.
package gpg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armoredSignatureHeader = "-----BEGIN PGP SIGNATURE-----"

// maxKeyringSize bounds how much key material a single import reads
const maxKeyringSize = 10 * 1024 * 1024

// Verifier checks detached signatures against an in-memory keyring.
// It is built on ProtonMail's go-crypto, the maintained openpgp fork.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{keyring: make(openpgp.EntityList, 0)}
}

// ImportKeyRing reads armored or binary public keys from r
func (v *Verifier) ImportKeyRing(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxKeyringSize))
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// ImportKeyFromFile imports public keys from a file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	if err := v.ImportKeyRing(f); err != nil {
		return fmt.Errorf("%s: %w", keyPath, err)
	}
	return nil
}

// VerifySignature checks a detached signature, armored or binary, over data
func (v *Verifier) VerifySignature(data, signature io.Reader) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported")
	}

	sig := bufio.NewReader(signature)
	peek, _ := sig.Peek(len(armoredSignatureHeader))

	var err error
	if string(peek) == armoredSignatureHeader {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, data, sig, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, data, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// VerifySignatureFromFile verifies a detached signature from a local file
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) error {
	//nolint:gosec // G304: sigPath is user-provided for GPG verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is user-provided for GPG verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	return v.VerifySignature(dataFile, sigFile)
}

// Fingerprints lists the uppercase hex fingerprints of the imported keys
func (v *Verifier) Fingerprints() []string {
	out := make([]string, 0, len(v.keyring))
	for _, e := range v.keyring {
		out = append(out, fmt.Sprintf("%X", e.PrimaryKey.Fingerprint))
	}
	return out
}

// KeyCount returns the number of keys in the keyring
func (v *Verifier) KeyCount() int {
	return len(v.keyring)
}

// ClearKeyring clears all imported keys
func (v *Verifier) ClearKeyring() {
	v.keyring = make(openpgp.EntityList, 0)
}
