package playapi

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/googleapi"

	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

const bundleContentType = "application/octet-stream"

// Publisher uploads App Bundles through the Google Play Developer API, in a single edit:
// insert edit, upload bundle, assign it to the track, commit.
type Publisher struct {
	logger      log.Logger
	fileManager fileutil.FileManager
	newService  ServiceFactory
}

// NewPublisher ...
func NewPublisher(logger log.Logger, fileManager fileutil.FileManager, newService ServiceFactory) Publisher {
	if newService == nil {
		newService = NewService
	}
	return Publisher{
		logger:      logger,
		fileManager: fileManager,
		newService:  newService,
	}
}

// Publish ...
func (p Publisher) Publish(ctx context.Context, cfg publish.Config) (publish.Result, error) {
	if cfg.PackageName == "" {
		return publish.Result{}, errors.New("package name is required to upload with the Google Play Developer API")
	}
	if !cfg.SkipsStoreListing() {
		return publish.Result{}, errors.New("uploading store listing metadata, images, screenshots or changelogs is not supported by the Google Play Developer API backend")
	}
	status := cfg.ReleaseStatus
	if status == "" {
		status = publish.DefaultReleaseStatus
	}

	jsonKey, err := p.readFile(cfg.JSONKeyPath)
	if err != nil {
		return publish.Result{}, fmt.Errorf("failed to read service account key (%s): %w", cfg.JSONKeyPath, err)
	}

	service, err := p.newService(ctx, jsonKey)
	if err != nil {
		return publish.Result{}, err
	}

	p.logger.Printf("Package: %s", cfg.PackageName)
	p.logger.Printf("Track: %s", cfg.Track)

	edit, err := service.Edits.Insert(cfg.PackageName, &androidpublisher.AppEdit{}).Context(ctx).Do()
	if err != nil {
		return publish.Result{}, apiError("creating edit", err)
	}
	p.logger.Donef("Edit created: %s", edit.Id)

	versionCode, err := p.uploadBundle(ctx, service, cfg, edit.Id)
	if err != nil {
		return publish.Result{}, err
	}
	p.logger.Donef("App Bundle uploaded, version code: %d", versionCode)

	track := &androidpublisher.Track{
		Track: cfg.Track,
		Releases: []*androidpublisher.TrackRelease{
			{
				VersionCodes: googleapi.Int64s{versionCode},
				Status:       status,
			},
		},
	}
	if _, err := service.Edits.Tracks.Update(cfg.PackageName, edit.Id, cfg.Track, track).Context(ctx).Do(); err != nil {
		return publish.Result{}, apiError(fmt.Sprintf("assigning version code %d to the %s track", versionCode, cfg.Track), err)
	}
	p.logger.Donef("Assigned to the %s track with %s status", cfg.Track, status)

	committed, err := service.Edits.Commit(cfg.PackageName, edit.Id).Context(ctx).Do()
	if err != nil {
		return publish.Result{}, apiError("committing edit", err)
	}
	p.logger.Donef("Edit committed: %s", committed.Id)

	return publish.Result{EditID: committed.Id, VersionCode: versionCode}, nil
}

func (p Publisher) uploadBundle(ctx context.Context, service *androidpublisher.Service, cfg publish.Config, editID string) (int64, error) {
	f, err := p.fileManager.Open(cfg.AABPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open App Bundle (%s): %w", cfg.AABPath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Warnf("Failed to close App Bundle: %s", err)
		}
	}()

	p.logger.Infof("Uploading App Bundle: %s", cfg.AABPath)
	bundle, err := service.Edits.Bundles.Upload(cfg.PackageName, editID).
		Media(f, googleapi.ContentType(bundleContentType)).
		Context(ctx).
		Do()
	if err != nil {
		return 0, apiError("uploading App Bundle", err)
	}
	return bundle.VersionCode, nil
}

func (p Publisher) readFile(pth string) ([]byte, error) {
	f, err := p.fileManager.Open(pth)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Warnf("Failed to close %s: %s", pth, err)
		}
	}()

	return io.ReadAll(f)
}
