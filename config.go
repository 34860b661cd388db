package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"

	"github.com/bitrise-steplib/steps-play-closed-testing/lane"
)

const (
	apiBackend      = "api"
	fastlaneBackend = "fastlane"
)

// Config contains inputs parsed from environment variables
type Config struct {
	WorkDir string `env:"work_dir,dir"`
	Lane    string `env:"lane,required"`

	PublishBackend string `env:"publish_backend,opt[api,fastlane]"`
	PackageName    string `env:"package_name"`
	ReleaseStatus  string `env:"release_status,opt[draft,completed,halted,inProgress]"`

	UpdateFastlane bool `env:"update_fastlane,opt[true,false]"`
	VerboseLog     bool `env:"verbose_log,opt[yes,no]"`

	GemHome   string `env:"GEM_HOME"`
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`

	LaneName    string
	LaneOptions lane.Options
	GemVersions gemVersions
}

// ProcessConfig ...
func (s DeployStep) ProcessConfig() (Config, error) {
	var config Config
	if err := s.inputParser.Parse(&config); err != nil {
		return config, err
	}

	stepconf.Print(config)
	s.logger.EnableDebugLog(config.VerboseLog)
	s.logger.Println()

	if config.PublishBackend == apiBackend && strings.TrimSpace(config.PackageName) == "" {
		return Config{}, errors.New("Invalid Input: package_name is required for the api publish backend")
	}

	workDir, err := s.getWorkdir(config)
	if err != nil {
		return Config{}, err
	}
	config.WorkDir = workDir

	laneName, laneOptions, err := lane.ParseInput(config.Lane)
	if err != nil {
		return Config{}, fmt.Errorf("Invalid Input: %w", err)
	}
	config.LaneName = laneName
	config.LaneOptions = laneOptions

	if config.PublishBackend == fastlaneBackend {
		s.validateGemHome(config)
		s.checkForRbenv(workDir)

		gemVersions, err := s.parseGemfileLock(workDir)
		if err != nil {
			return Config{}, err
		}
		config.GemVersions = gemVersions
	}

	return config, nil
}

func (s DeployStep) validateGemHome(config Config) {
	if strings.TrimSpace(config.GemHome) == "" {
		return
	}
	s.logger.Warnf("GEM_HOME environment variable is set to:\n%s\nThis can lead to errors as gem lookup path may not contain GEM_HOME.", config.GemHome)
}

func (s DeployStep) getWorkdir(config Config) (string, error) {
	s.logger.Infof("Expand WorkDir")

	workDir := config.WorkDir
	if workDir == "" {
		s.logger.Printf("WorkDir not set, using CurrentWorkingDirectory...")
		currentDir, err := s.pathModifier.AbsPath(".")
		if err != nil {
			return "", fmt.Errorf("Failed to get current dir, error: %w", err)
		}
		workDir = currentDir
	} else {
		absWorkDir, err := s.pathModifier.AbsPath(workDir)
		if err != nil {
			return "", fmt.Errorf("Failed to expand path (%s), error: %w", workDir, err)
		}
		workDir = absWorkDir
	}

	s.logger.Donef("Expanded WorkDir: %s", workDir)
	return workDir, nil
}

func (s DeployStep) checkForRbenv(workDir string) {
	if _, err := s.cmdLocator.LookPath("rbenv"); err != nil {
		return
	}
	if s.rbyFactory == nil {
		return
	}

	cmd := s.rbyFactory.Create("rbenv", []string{"versions"}, &command.Opts{
		Stderr: os.Stderr,
		Stdout: os.Stdout,
		Dir:    workDir,
	})

	s.logger.Println()
	s.logger.Donef("$ %s", cmd.PrintableCommandArgs())
	if err := cmd.Run(); err != nil {
		s.logger.Warnf("%s", err)
	}
}
