package services

import (
	"slices"
	"testing"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

func TestCatalogService_Validate(t *testing.T) {
	noChecksum := artifact("15.8.23", "ubuntu", "22.04", "x86_64")
	noChecksum.Checksums = entities.Checksums{}

	tests := []struct {
		name           string
		artifacts      []entities.Artifact
		expectedStatus CatalogStatus
		expectedReady  bool
	}{
		{
			name:           "well formed - ready",
			artifacts:      ubuntuCatalog("14.0.0", "15.8.23").Artifacts,
			expectedStatus: StatusReady,
			expectedReady:  true,
		},
		{
			name:           "no artifacts - error",
			artifacts:      nil,
			expectedStatus: StatusEmpty,
		},
		{
			name: "duplicate tuple after normalization - error",
			artifacts: []entities.Artifact{
				artifact("15.8.23", "ubuntu", "18.04", "x86_64"),
				artifact("15.8.23", "Ubuntu", "18.04", "amd64"),
			},
			expectedStatus: StatusDuplicateEntries,
		},
		{
			name: "same triplet at two versions - ready",
			artifacts: []entities.Artifact{
				artifact("15.8.23", "ubuntu", "18.04", "x86_64"),
				artifact("14.0.0", "ubuntu", "18.04", "x86_64"),
			},
			expectedStatus: StatusReady,
			expectedReady:  true,
		},
		{
			name: "unknown architecture - error",
			artifacts: []entities.Artifact{
				artifact("15.8.23", "ubuntu", "18.04", "mips"),
			},
			expectedStatus: StatusUnknownArchitecture,
		},
		{
			name:           "missing checksums - error",
			artifacts:      []entities.Artifact{noChecksum},
			expectedStatus: StatusMissingChecksums,
		},
	}

	service := NewCatalogService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := entities.Catalog{Product: "chef", Channel: entities.ChannelStable, Artifacts: tt.artifacts}
			validation := service.Validate(catalog)

			if validation.Status != tt.expectedStatus {
				t.Errorf("Status = %v, want %v", validation.Status, tt.expectedStatus)
			}
			if validation.IsReady() != tt.expectedReady {
				t.Errorf("IsReady() = %v, want %v", validation.IsReady(), tt.expectedReady)
			}

			// Validate error message is generated (except for ready status)
			msg := validation.ErrorMessage()
			if tt.expectedStatus != StatusReady && msg == "" {
				t.Error("Expected error message but got empty string")
			}
			if tt.expectedStatus == StatusReady && msg != "" {
				t.Errorf("ErrorMessage() = %q, want empty for ready catalog", msg)
			}
		})
	}
}

func TestCatalogService_ValidateVersionsSorted(t *testing.T) {
	catalog := ubuntuCatalog("15.8.23", "12.21.3", "14.0.0")
	validation := NewCatalogService().Validate(catalog)

	want := []string{"12.21.3", "14.0.0", "15.8.23"}
	if !slices.Equal(validation.Versions, want) {
		t.Errorf("Versions = %v, want %v", validation.Versions, want)
	}
	if validation.RecordCount != 12 {
		t.Errorf("RecordCount = %d, want 12", validation.RecordCount)
	}
}

func TestCatalogService_Platforms(t *testing.T) {
	catalog := ubuntuCatalog("15.8.23")
	catalog.Artifacts = append(catalog.Artifacts, artifact("15.8.23", "el", "7", "x86_64"))

	got := NewCatalogService().Platforms(catalog, "15.8.23")
	want := []string{
		"el/7/x86_64",
		"ubuntu/14.04/x86_64",
		"ubuntu/16.04/x86_64",
		"ubuntu/18.04/x86_64",
		"ubuntu/20.04/x86_64",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Platforms() = %v, want %v", got, want)
	}

	if got := NewCatalogService().Platforms(catalog, "1.0.0"); len(got) != 0 {
		t.Errorf("Platforms() for missing version = %v, want empty", got)
	}
}
