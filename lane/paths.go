package lane

import "path/filepath"

const (
	artifactRelPth   = "build/app/outputs/bundle/release/app-release.aab"
	credentialFileNm = "service-account-key.json"
)

// ArtifactPath returns the release App Bundle location under the given task directory.
func ArtifactPath(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(artifactRelPth))
}

// CredentialPath returns the service account key location under the given task directory.
func CredentialPath(dir string) string {
	return filepath.Join(dir, credentialFileNm)
}
