package yaml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

func writeCatalog(t *testing.T, dir, product, channel, body string) {
	t.Helper()
	productDir := filepath.Join(dir, product)
	if err := os.MkdirAll(productDir, 0750); err != nil {
		t.Fatalf("Failed to create product dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(productDir, channel+".yml"), []byte(body), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

func TestCatalogRepository_GetCatalog_Success(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalog(t, tmpDir, "chef", "stable", validCatalog)

	repo := NewCatalogRepository(tmpDir, nil)
	catalog, err := repo.GetCatalog(context.Background(), "chef", entities.ChannelStable)
	if err != nil {
		t.Fatalf("GetCatalog() error = %v", err)
	}

	if catalog.Product != "chef" {
		t.Errorf("GetCatalog() product = %v, want chef", catalog.Product)
	}
	if catalog.Len() != 2 {
		t.Errorf("GetCatalog() artifacts = %d, want 2", catalog.Len())
	}
}

func TestCatalogRepository_GetCatalog_NotFound(t *testing.T) {
	repo := NewCatalogRepository(t.TempDir(), nil)

	_, err := repo.GetCatalog(context.Background(), "chef", entities.ChannelCurrent)
	if err == nil {
		t.Fatal("GetCatalog() should return error for missing catalog")
	}
	if !strings.Contains(err.Error(), "catalog not found: chef/current") {
		t.Errorf("GetCatalog() error = %v", err)
	}
}

func TestCatalogRepository_GetCatalog_InvalidReference(t *testing.T) {
	repo := NewCatalogRepository(t.TempDir(), nil)

	tests := []struct {
		name    string
		product string
		channel entities.Channel
	}{
		{"empty product", "", entities.ChannelStable},
		{"traversal product", "../etc", entities.ChannelStable},
		{"traversal channel", "chef", entities.Channel("../../passwd")},
		{"parent product", "..", entities.ChannelStable},
		{"current product", ".", entities.ChannelStable},
		{"parent channel", "chef", entities.Channel("..")},
		{"empty channel", "chef", entities.Channel("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetCatalog(context.Background(), tt.product, tt.channel)
			if err == nil || !strings.Contains(err.Error(), "invalid catalog reference") {
				t.Errorf("GetCatalog() error = %v, want invalid reference", err)
			}
		})
	}
}

func TestCatalogRepository_GetCatalog_ParentProduct(t *testing.T) {
	root := t.TempDir()
	catalogDir := filepath.Join(root, "catalogs")
	// a catalog one level above the catalog directory must stay unreachable
	writeCatalog(t, root, "stable", "stable", validCatalog)
	if err := os.MkdirAll(catalogDir, 0750); err != nil {
		t.Fatalf("Failed to create catalog dir: %v", err)
	}

	repo := NewCatalogRepository(catalogDir, nil)
	if _, err := repo.GetCatalog(context.Background(), "..", entities.ChannelStable); err == nil ||
		!strings.Contains(err.Error(), "invalid catalog reference") {
		t.Errorf("GetCatalog(..) error = %v, want invalid reference", err)
	}
	if _, err := repo.ListChannels(context.Background(), ".."); err == nil {
		t.Error("ListChannels(..) should reject the parent directory")
	}
}

func TestCatalogRepository_GetCatalog_DeclarationMismatch(t *testing.T) {
	tmpDir := t.TempDir()
	// validCatalog declares chef/stable
	writeCatalog(t, tmpDir, "chef", "current", validCatalog)

	repo := NewCatalogRepository(tmpDir, nil)
	_, err := repo.GetCatalog(context.Background(), "chef", entities.ChannelCurrent)
	if err == nil {
		t.Fatal("GetCatalog() should reject a catalog declaring another channel")
	}
	if !strings.Contains(err.Error(), "declares chef/stable") {
		t.Errorf("GetCatalog() error = %v", err)
	}
}

func TestCatalogRepository_ListProducts(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalog(t, tmpDir, "inspec", "stable", "product: inspec\nchannel: stable\n")
	writeCatalog(t, tmpDir, "chef", "stable", validCatalog)
	writeCatalog(t, tmpDir, "chef", "current", "product: chef\nchannel: current\n")

	// Directory without catalogs is not a product
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty"), 0750); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	// Loose file at the root is ignored
	if err := os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("# catalogs"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	repo := NewCatalogRepository(tmpDir, nil)
	products, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}

	if diff := cmp.Diff([]string{"chef", "inspec"}, products); diff != "" {
		t.Errorf("ListProducts() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogRepository_ListProducts_MissingDir(t *testing.T) {
	repo := NewCatalogRepository(filepath.Join(t.TempDir(), "missing"), nil)

	if _, err := repo.ListProducts(context.Background()); err == nil {
		t.Error("ListProducts() should return error for missing directory")
	}
}

func TestCatalogRepository_ListChannels(t *testing.T) {
	tmpDir := t.TempDir()
	writeCatalog(t, tmpDir, "chef", "unstable", "product: chef\nchannel: unstable\n")
	writeCatalog(t, tmpDir, "chef", "stable", validCatalog)
	writeCatalog(t, tmpDir, "chef", "current", "product: chef\nchannel: current\n")
	if err := os.WriteFile(filepath.Join(tmpDir, "chef", "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	repo := NewCatalogRepository(tmpDir, nil)
	channels, err := repo.ListChannels(context.Background(), "chef")
	if err != nil {
		t.Fatalf("ListChannels() error = %v", err)
	}

	want := []entities.Channel{entities.ChannelCurrent, entities.ChannelStable, entities.ChannelUnstable}
	if diff := cmp.Diff(want, channels); diff != "" {
		t.Errorf("ListChannels() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogRepository_CatalogPath(t *testing.T) {
	repo := NewCatalogRepository("/srv/catalogs", nil)

	got := repo.CatalogPath("chef", entities.ChannelStable)
	want := filepath.Join("/srv/catalogs", "chef", "stable.yml")
	if got != want {
		t.Errorf("CatalogPath() = %v, want %v", got, want)
	}
}
