package fastlane

import (
	"fmt"
	"strconv"

	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

const uploadAction = "upload_to_play_store"

// UploadArgs returns the `fastlane run upload_to_play_store` arguments for the config.
func UploadArgs(cfg publish.Config) []string {
	args := []string{
		"run", uploadAction,
		option("track", cfg.Track),
		option("aab", cfg.AABPath),
		option("json_key", cfg.JSONKeyPath),
	}
	if cfg.PackageName != "" {
		args = append(args, option("package_name", cfg.PackageName))
	}
	if cfg.ReleaseStatus != "" {
		args = append(args, option("release_status", cfg.ReleaseStatus))
	}
	return append(args,
		option("skip_upload_metadata", strconv.FormatBool(cfg.SkipUploadMetadata)),
		option("skip_upload_images", strconv.FormatBool(cfg.SkipUploadImages)),
		option("skip_upload_screenshots", strconv.FormatBool(cfg.SkipUploadScreenshots)),
		option("skip_upload_changelogs", strconv.FormatBool(cfg.SkipUploadChangelogs)),
	)
}

func option(key, value string) string {
	return fmt.Sprintf("%s:%s", key, value)
}
