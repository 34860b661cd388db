package publish

import "context"

// Well known Google Play testing tracks.
const (
	TrackAlpha  = "alpha"
	TrackClosed = "closed"
)

// DefaultReleaseStatus is used when no release status is configured.
const DefaultReleaseStatus = "draft"

// Config describes a single upload of an Android App Bundle to a Play Store track.
type Config struct {
	Track         string
	AABPath       string
	JSONKeyPath   string
	PackageName   string
	ReleaseStatus string

	SkipUploadMetadata    bool
	SkipUploadImages      bool
	SkipUploadScreenshots bool
	SkipUploadChangelogs  bool
}

// SkipsStoreListing reports whether every store listing upload is skipped.
func (c Config) SkipsStoreListing() bool {
	return c.SkipUploadMetadata && c.SkipUploadImages && c.SkipUploadScreenshots && c.SkipUploadChangelogs
}

// Result is what a Publisher knows about a finished upload.
// Backends which can't tell leave it empty.
type Result struct {
	EditID      string
	VersionCode int64
}

// Publisher uploads a build artifact to an app store track.
type Publisher interface {
	Publish(ctx context.Context, cfg Config) (Result, error)
}
