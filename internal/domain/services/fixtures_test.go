package services

import (
	"fmt"

	"github.com/ochairo/cauldron/internal/domain/entities"
)

// artifact builds a test record with a URL derived from its fields
func artifact(version, platform, platformVersion, arch string) entities.Artifact {
	return entities.Artifact{
		Platform:        platform,
		PlatformVersion: platformVersion,
		Architecture:    arch,
		Version:         version,
		URL:             fmt.Sprintf("https://packages.example.com/%s/%s/%s/chef-%s", platform, platformVersion, arch, version),
		Checksums: entities.Checksums{
			SHA256: fmt.Sprintf("%064d", len(platform)+len(platformVersion)),
		},
	}
}

// ubuntuCatalog publishes one version for four ubuntu LTS releases
func ubuntuCatalog(versions ...string) entities.Catalog {
	catalog := entities.Catalog{Product: "chef", Channel: entities.ChannelStable}
	for _, v := range versions {
		for _, pv := range []string{"14.04", "16.04", "18.04", "20.04"} {
			catalog.Artifacts = append(catalog.Artifacts, artifact(v, "ubuntu", pv, "x86_64"))
		}
	}
	return catalog
}
