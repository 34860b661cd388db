package lane

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

// Built-in lane names.
const (
	UploadClosedOnlyLane    = "upload_closed_only"
	UploadTestingTracksLane = "upload_testing_tracks"
)

// ClosedSuccessMessage is logged once the closed track upload succeeded.
const ClosedSuccessMessage = "Uploaded to the Closed Testing track!"

func (e Env) publishConfig(track string) publish.Config {
	return publish.Config{
		Track:                 track,
		AABPath:               ArtifactPath(e.Dir),
		JSONKeyPath:           CredentialPath(e.Dir),
		PackageName:           e.PackageName,
		ReleaseStatus:         e.ReleaseStatus,
		SkipUploadMetadata:    true,
		SkipUploadImages:      true,
		SkipUploadScreenshots: true,
		SkipUploadChangelogs:  true,
	}
}

// UploadClosedOnly uploads the release bundle to the closed testing track without touching
// the store listing. Options are ignored.
func UploadClosedOnly(ctx context.Context, env Env, _ Options) error {
	if _, err := env.Publisher.Publish(ctx, env.publishConfig(publish.TrackClosed)); err != nil {
		return err
	}

	env.Logger.Donef(ClosedSuccessMessage)
	return nil
}

var testingTracks = []string{publish.TrackAlpha, publish.TrackClosed}

// UploadTestingTracks uploads the release bundle to the alpha and the closed testing tracks.
// A failing track does not stop the next one, failures are returned together.
func UploadTestingTracks(ctx context.Context, env Env, _ Options) error {
	var result *multierror.Error
	succeeded := 0

	for _, track := range testingTracks {
		env.Logger.Println()
		env.Logger.Infof("Uploading to the %s track", track)

		res, err := env.Publisher.Publish(ctx, env.publishConfig(track))
		if err != nil {
			env.Logger.Errorf("Upload to the %s track failed: %s", track, err)
			result = multierror.Append(result, fmt.Errorf("track %s: %w", track, err))
			continue
		}

		succeeded++
		if res.VersionCode != 0 {
			env.Logger.Donef("Uploaded to the %s track, version code: %d", track, res.VersionCode)
		} else {
			env.Logger.Donef("Uploaded to the %s track", track)
		}
	}

	env.Logger.Println()
	env.Logger.Printf("Result: %d/%d tracks succeeded", succeeded, len(testingTracks))

	return result.ErrorOrNil()
}
