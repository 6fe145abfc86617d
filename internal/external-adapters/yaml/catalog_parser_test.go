package yaml

import (
	"strings"
	"testing"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

const validCatalog = `product: chef
channel: stable
artifacts:
  - version: 15.8.23
    platform: ubuntu
    platform_version: "18.04"
    architecture: x86_64
    url: https://packages.example.com/stable/ubuntu/18.04/chef_15.8.23-1_amd64.deb
    sha256: 6b0d9ed5c3cd33a2e1e3aab8b6a4b5b1e94fd6e6d0a53c3b6aeb6d5a1d32d8b1
    sha1: 0a4d55a8d778e5022fab701977c5d840bbc486d0
    license: Apache-2.0
    product_name: Chef Infra Client
  - version: 15.8.23
    platform: windows
    platform_version: 2012r2
    architecture: x86_64
    url: https://packages.example.com/stable/windows/2012r2/chef-client-15.8.23-1-x64.msi
    md5: 9e107d9d372bb6826bd81d3542a419d6
  - version: 15.8.23
    platform: ubuntu
    platform_version: "18.04"
    architecture: x86_64
    url: https://packages.example.com/stable/ubuntu/18.04/chef_15.8.23-1_amd64.deb.sha256
`

func TestCatalogParser_Parse_Valid(t *testing.T) {
	parser := NewCatalogParser()

	catalog, err := parser.Parse([]byte(validCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if catalog.Product != "chef" {
		t.Errorf("Product = %v, want chef", catalog.Product)
	}
	if catalog.Channel != entities.ChannelStable {
		t.Errorf("Channel = %v, want stable", catalog.Channel)
	}
	if catalog.Len() != 2 {
		t.Fatalf("Artifacts count = %d, want 2 (checksum entry dropped)", catalog.Len())
	}

	first := catalog.Artifacts[0]
	if first.PlatformVersion != "18.04" {
		t.Errorf("PlatformVersion = %v, want 18.04", first.PlatformVersion)
	}
	if first.Checksums.SHA1 != "0a4d55a8d778e5022fab701977c5d840bbc486d0" {
		t.Errorf("Checksums.SHA1 = %v", first.Checksums.SHA1)
	}
	if first.Metadata.License != "Apache-2.0" || first.Metadata.ProductName != "Chef Infra Client" {
		t.Errorf("Metadata = %+v", first.Metadata)
	}

	second := catalog.Artifacts[1]
	if second.Platform != "windows" || second.PlatformVersion != "2012r2" {
		t.Errorf("second artifact = %s", second.Triplet())
	}
	if second.Checksums.MD5 == "" || second.Checksums.SHA256 != "" {
		t.Errorf("second artifact checksums = %+v", second.Checksums)
	}
}

func TestCatalogParser_Parse_UnquotedPlatformVersion(t *testing.T) {
	parser := NewCatalogParser()
	yamlData := []byte(`product: chef
channel: current
artifacts:
  - version: 16.0.257
    platform: ubuntu
    platform_version: 20.10
    architecture: x86_64
    url: https://packages.example.com/chef.deb
`)

	catalog, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := catalog.Artifacts[0].PlatformVersion; got != "20.10" {
		t.Errorf("PlatformVersion = %q, want literal 20.10", got)
	}
}

func TestCatalogParser_Parse_MissingHeader(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing product", "channel: stable\n", "catalog must have a product"},
		{"missing channel", "product: chef\n", "catalog must have a channel"},
	}

	parser := NewCatalogParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() should return error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Parse() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestCatalogParser_Parse_MissingArtifactFields(t *testing.T) {
	parser := NewCatalogParser()
	yamlData := []byte(`product: chef
channel: stable
artifacts:
  - version: 15.8.23
    platform: ubuntu
    url: https://packages.example.com/chef.deb
`)

	_, err := parser.Parse(yamlData)
	if err == nil {
		t.Fatal("Parse() should return error for incomplete artifact")
	}
	if !strings.Contains(err.Error(), "platform_version, architecture") {
		t.Errorf("Parse() error = %v, want missing field names", err)
	}
}

func TestCatalogParser_Parse_InvalidYAML(t *testing.T) {
	parser := NewCatalogParser()
	yamlData := []byte(`product: chef
  invalid: [broken yaml
`)

	_, err := parser.Parse(yamlData)
	if err == nil {
		t.Error("Parse() should return error for invalid YAML")
	}
}

func TestCatalogParser_ParseFile_NotFound(t *testing.T) {
	_, err := NewCatalogParser().ParseFile("/nonexistent/catalog.yml")
	if err == nil || !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("ParseFile() error = %v, want read failure", err)
	}
}

func TestIsNonPackage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/chef.deb", false},
		{"https://example.com/chef.msi", false},
		{"https://example.com/chef.deb.sha256", true},
		{"https://example.com/chef.deb.asc", true},
		{"https://example.com/chef.deb.metadata.json", true},
	}

	for _, tt := range tests {
		if got := isNonPackage(tt.url); got != tt.want {
			t.Errorf("isNonPackage(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
