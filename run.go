package main

import (
	"context"
	"errors"
	"time"

	"github.com/bitrise-steplib/steps-play-closed-testing/fastlane"
	"github.com/bitrise-steplib/steps-play-closed-testing/lane"
	"github.com/bitrise-steplib/steps-play-closed-testing/playapi"
	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

// Run executes the configured lane. The lane's error is returned as is.
func (s DeployStep) Run(ctx context.Context, config Config, tracker laneTracker) error {
	publisher, err := s.createPublisher(config)
	if err != nil {
		return err
	}

	laneEnv := lane.Env{
		Dir:           config.WorkDir,
		PackageName:   config.PackageName,
		ReleaseStatus: config.ReleaseStatus,
		Publisher:     publisher,
		Logger:        s.logger,
	}

	s.logger.Println()
	s.logger.Infof("Run lane: %s", config.LaneName)
	s.logger.Printf("App Bundle: %s", lane.ArtifactPath(config.WorkDir))
	s.logger.Printf("Service account key: %s", lane.CredentialPath(config.WorkDir))

	start := time.Now()
	err = s.lanes.Run(ctx, config.LaneName, laneEnv, config.LaneOptions)
	tracker.logLaneFinished(config.LaneName, err == nil, time.Since(start))

	return err
}

func (s DeployStep) createPublisher(config Config) (publish.Publisher, error) {
	switch config.PublishBackend {
	case apiBackend:
		return playapi.NewPublisher(s.logger, s.fileManager, playapi.NewService), nil
	case fastlaneBackend:
		if s.rbyFactory == nil {
			return nil, errors.New("fastlane publish backend requires a Ruby installation")
		}
		return fastlane.NewPublisher(s.logger, s.rbyFactory, s.pathProvider, s.fileManager, fastlane.Opts{
			WorkDir:        config.WorkDir,
			UseBundler:     config.GemVersions.fastlane.found,
			BundlerVersion: config.GemVersions.bundler.version,
			DeployDir:      config.DeployDir,
		}), nil
	default:
		return nil, errors.New("invalid publish backend: " + config.PublishBackend)
	}
}
