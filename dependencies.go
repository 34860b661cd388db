package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bitrise-io/go-utils/v2/command"
)

// EnsureDependenciesOpts ...
type EnsureDependenciesOpts struct {
	GemVersions    gemVersions
	UseBundler     bool
	WorkDir        string
	UpdateFastlane bool
}

// InstallDependencies makes fastlane available for the fastlane publish backend.
func (s DeployStep) InstallDependencies(opts EnsureDependenciesOpts) error {
	if s.rbyFactory == nil {
		return errors.New("Ruby is not available")
	}

	cmdOpts := &command.Opts{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    opts.WorkDir,
	}

	if opts.UseBundler {
		s.logger.Println()
		s.logger.Infof("Install bundler")

		// install bundler with `gem install bundler [-v version]`
		// in some configurations, the command "bundler _1.2.3_" can return 'Command not found', installing bundler solves this
		cmds := s.rbyFactory.CreateGemInstall("bundler", opts.GemVersions.bundler.version, false, true, cmdOpts)
		for _, cmd := range cmds {
			if err := s.runCommand(cmd); err != nil {
				return err
			}
		}

		// install Gemfile.lock gems with `bundle [_version_] install ...`
		s.logger.Println()
		s.logger.Infof("Install Fastlane with bundler")

		if err := s.runCommand(s.rbyFactory.CreateBundleInstall(opts.GemVersions.bundler.version, cmdOpts)); err != nil {
			return err
		}
	} else if opts.UpdateFastlane {
		s.logger.Println()
		s.logger.Infof("Update system installed Fastlane")

		cmds := s.rbyFactory.CreateGemInstall("fastlane", "", false, false, cmdOpts)
		for _, cmd := range cmds {
			if err := s.runCommand(cmd); err != nil {
				return err
			}
		}
	} else {
		s.logger.Println()
		s.logger.Infof("Using system installed Fastlane")
	}

	s.logger.Println()
	s.logger.Infof("Fastlane version")

	name := "fastlane"
	args := []string{"--version"}
	var cmd command.Command
	if opts.UseBundler {
		cmd = s.rbyFactory.CreateBundleExec(name, args, opts.GemVersions.bundler.version, cmdOpts)
	} else {
		cmd = s.rbyFactory.Create(name, args, cmdOpts)
	}

	return s.runCommand(cmd)
}

func (s DeployStep) runCommand(cmd command.Command) error {
	s.logger.Donef("$ %s", cmd.PrintableCommandArgs())
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command (%s) failed: %w", cmd.PrintableCommandArgs(), err)
	}
	return nil
}
