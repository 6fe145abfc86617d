package yaml

import (
	"testing"
)

// FuzzCatalogParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzCatalogParser -fuzztime=30s
func FuzzCatalogParser(f *testing.F) {
	// Seed corpus with valid YAML examples
	f.Add([]byte(validCatalog))

	f.Add([]byte(`product: inspec
channel: current
artifacts:
  - version: 4.18.100
    platform: mac_os_x
    platform_version: "10.15"
    architecture: x86_64
    url: https://packages.example.com/inspec-4.18.100-1.dmg
`))

	// Seed with edge cases
	f.Add([]byte(``))                     // Empty input
	f.Add([]byte(`product: ""` + "\n"))   // Empty product
	f.Add([]byte(`{}`))                   // Empty JSON-style YAML
	f.Add([]byte(`[]`))                   // Array instead of object
	f.Add([]byte("product: chef\n  bad")) // Invalid indentation

	// Wrong type for artifacts
	f.Add([]byte("product: chef\nchannel: a\nartifacts: 3"))

	parser := NewCatalogParser()

	f.Fuzz(func(t *testing.T, data []byte) {
		// Any input may fail, but a parsed catalog must be complete
		catalog, err := parser.Parse(data)
		if err != nil {
			return
		}
		if catalog.Product == "" || catalog.Channel == "" {
			t.Errorf("parsed catalog without header: %+v", catalog)
		}
		for _, a := range catalog.Artifacts {
			if a.Version == "" || a.Platform == "" || a.PlatformVersion == "" || a.Architecture == "" || a.URL == "" {
				t.Errorf("parsed incomplete artifact: %+v", a)
			}
		}
	})
}
