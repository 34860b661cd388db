package lane

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactPath(t *testing.T) {
	for _, dir := range []string{"/work/app", "/", filepath.Join("/tmp", "nested", "dir")} {
		want := filepath.Join(dir, "build", "app", "outputs", "bundle", "release", "app-release.aab")
		assert.Equal(t, want, ArtifactPath(dir))
	}
}

func TestCredentialPath(t *testing.T) {
	for _, dir := range []string{"/work/app", "/", filepath.Join("/tmp", "nested", "dir")} {
		assert.Equal(t, filepath.Join(dir, "service-account-key.json"), CredentialPath(dir))
	}
}
