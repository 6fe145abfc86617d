package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ochairo/cauldron/internal/domain/entities"
	"github.com/ochairo/cauldron/internal/domain/interfaces"
)

const userAgent = "cauldron/1.0"

// Downloader fetches resolved artifacts and verifies them against their
// catalog checksums before they become visible in the destination.
type Downloader struct {
	httpClient *http.Client
	verifier   *ChecksumVerifier
	logger     interfaces.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(logger interfaces.Logger) *Downloader {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Downloader{
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // Long timeout for large packages
		},
		verifier: NewChecksumVerifier(),
		logger:   logger,
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests
func (d *Downloader) WithHTTPClient(c *http.Client) *Downloader {
	d.httpClient = c
	return d
}

// FileName returns the local file name for an artifact URL
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid artifact URL %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("artifact URL %q has no file name", rawURL)
	}
	return name, nil
}

// Download fetches the artifact into destDir and returns the file path.
// The file is written under a temporary name and renamed only after the
// checksum matches. An artifact without published checksums is kept with
// a warning.
func (d *Downloader) Download(ctx context.Context, artifact entities.Artifact, destDir string) (string, error) {
	name, err := FileName(artifact.URL)
	if err != nil {
		return "", err
	}

	outputPath, err := d.download(ctx, artifact.URL, destDir, name, func(tmpPath string) error {
		algo, err := d.verifier.VerifyArtifact(ctx, tmpPath, artifact.Checksums)
		switch {
		case errors.Is(err, ErrNoChecksum):
			d.logger.Warn("artifact has no published checksum, skipping verification",
				interfaces.F("url", artifact.URL))
		case err != nil:
			return fmt.Errorf("verification failed: %w", err)
		default:
			d.logger.Debug("checksum verified",
				interfaces.F("url", artifact.URL),
				interfaces.F("algorithm", algo))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	d.logger.Info("downloaded artifact",
		interfaces.F("file", outputPath),
		interfaces.F("triplet", artifact.Triplet()))
	return outputPath, nil
}

// DownloadURL fetches a companion file such as a detached signature to
// destPath without checksum verification. The caller picks destPath so a
// companion never takes the name of the file it belongs to.
func (d *Downloader) DownloadURL(ctx context.Context, rawURL, destPath string) (string, error) {
	name := filepath.Base(destPath)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid destination %q", destPath)
	}
	return d.download(ctx, rawURL, filepath.Dir(destPath), name, nil)
}

func (d *Downloader) download(ctx context.Context, rawURL, destDir, name string, check func(tmpPath string) error) (string, error) {
	if err := os.MkdirAll(destDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(destDir, "."+name+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// No-op once renamed
		_ = os.Remove(tmpPath)
	}()

	written, err := d.fetch(ctx, rawURL, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	if check != nil {
		if err := check(tmpPath); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
	}

	outputPath := filepath.Join(destDir, name)
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	d.logger.Debug("downloaded file",
		interfaces.F("url", rawURL),
		interfaces.F("bytes", written))
	return outputPath, nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL string, dest io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	written, err := io.Copy(dest, resp.Body)
	if err != nil {
		return written, fmt.Errorf("failed to write file: %w", err)
	}
	return written, nil
}
