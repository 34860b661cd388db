package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bitrise-io/go-steputils/v2/ruby"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/errorutil"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/google/uuid"

	"github.com/bitrise-steplib/steps-play-closed-testing/lane"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()
	deployStep := createStep(logger, envRepository)

	config, err := deployStep.ProcessConfig()
	if err != nil {
		logger.Println()
		logger.Errorf(errorutil.FormattedError(fmt.Errorf("Failed to process Step inputs: %w", err)))
		return 1
	}

	runID := uuid.NewString()
	logger.Debugf("Run ID: %s", runID)
	tracker := newStepTracker(envRepository, logger, runID)
	defer tracker.wait()
	tracker.logBackendSelected(config.PublishBackend)

	if config.PublishBackend == fastlaneBackend {
		dependenciesOpts := EnsureDependenciesOpts{
			GemVersions:    config.GemVersions,
			UseBundler:     config.GemVersions.fastlane.found,
			WorkDir:        config.WorkDir,
			UpdateFastlane: config.UpdateFastlane,
		}

		start := time.Now()
		err := deployStep.InstallDependencies(dependenciesOpts)
		tracker.logDependenciesInstalled(err == nil, time.Since(start))
		if err != nil {
			logger.Println()
			logger.Errorf(errorutil.FormattedError(fmt.Errorf("Failed to install Step dependencies: %w", err)))
			return 1
		}
	}

	err = deployStep.Run(context.Background(), config, tracker)
	if err != nil {
		logger.Println()
		logger.Errorf(errorutil.FormattedError(fmt.Errorf("Failed to execute Step main logic: %w", err)))
		return 1
	}

	return 0
}

// rubyCommandFactory is the part of ruby.CommandFactory the step uses.
type rubyCommandFactory interface {
	Create(name string, args []string, opts *command.Opts) command.Command
	CreateBundleExec(name string, args []string, bundlerVersion string, opts *command.Opts) command.Command
	CreateGemInstall(gem, version string, enablePrerelease, force bool, opts *command.Opts) []command.Command
	CreateBundleInstall(bundlerVersion string, opts *command.Opts) command.Command
}

func createStep(logger log.Logger, envRepository env.Repository) DeployStep {
	inputParser := stepconf.NewInputParser(envRepository)
	cmdFactory := command.NewFactory(envRepository)
	cmdLocator := env.NewCommandLocator()

	var rbyFactory rubyCommandFactory
	if factory, err := ruby.NewCommandFactory(cmdFactory, cmdLocator); err != nil {
		logger.Debugf("Ruby command factory unavailable: %s", err)
	} else {
		rbyFactory = factory
	}

	return NewDeployStep(
		inputParser,
		logger,
		cmdLocator,
		rbyFactory,
		pathutil.NewPathModifier(),
		pathutil.NewPathChecker(),
		pathutil.NewPathProvider(),
		fileutil.NewFileManager(),
		lane.NewRunner(),
	)
}

// DeployStep ...
type DeployStep struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	cmdLocator   env.CommandLocator
	rbyFactory   rubyCommandFactory
	pathModifier pathutil.PathModifier
	pathChecker  pathutil.PathChecker
	pathProvider pathutil.PathProvider
	fileManager  fileutil.FileManager
	lanes        *lane.Runner
}

// NewDeployStep ...
func NewDeployStep(
	inputParser stepconf.InputParser,
	logger log.Logger,
	cmdLocator env.CommandLocator,
	rbyFactory rubyCommandFactory,
	pathModifier pathutil.PathModifier,
	pathChecker pathutil.PathChecker,
	pathProvider pathutil.PathProvider,
	fileManager fileutil.FileManager,
	lanes *lane.Runner,
) DeployStep {
	return DeployStep{
		inputParser:  inputParser,
		logger:       logger,
		cmdLocator:   cmdLocator,
		rbyFactory:   rbyFactory,
		pathModifier: pathModifier,
		pathChecker:  pathChecker,
		pathProvider: pathProvider,
		fileManager:  fileManager,
		lanes:        lanes,
	}
}
