package fastlane

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"

	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

const (
	fastlaneCmd    = "fastlane"
	envLogFileName = "fastlane_env.log"
)

// CommandCreator is the subset of ruby.CommandFactory used to run fastlane.
type CommandCreator interface {
	Create(name string, args []string, opts *command.Opts) command.Command
	CreateBundleExec(name string, args []string, bundlerVersion string, opts *command.Opts) command.Command
}

// Opts configures how fastlane is invoked.
type Opts struct {
	WorkDir        string
	UseBundler     bool
	BundlerVersion string
	// DeployDir receives the fastlane build logs and the `fastlane env` output when the upload fails.
	DeployDir string
}

// Publisher uploads App Bundles by running fastlane's upload_to_play_store action.
type Publisher struct {
	logger       log.Logger
	cmdCreator   CommandCreator
	pathProvider pathutil.PathProvider
	fileManager  fileutil.FileManager
	opts         Opts
	rename       func(oldpath, newpath string) error
}

// NewPublisher ...
func NewPublisher(logger log.Logger, cmdCreator CommandCreator, pathProvider pathutil.PathProvider, fileManager fileutil.FileManager, opts Opts) Publisher {
	return Publisher{
		logger:       logger,
		cmdCreator:   cmdCreator,
		pathProvider: pathProvider,
		fileManager:  fileManager,
		opts:         opts,
		rename:       os.Rename,
	}
}

// Publish ...
func (p Publisher) Publish(ctx context.Context, cfg publish.Config) (publish.Result, error) {
	if err := ctx.Err(); err != nil {
		return publish.Result{}, err
	}

	envs := os.Environ()
	buildlogPth, err := p.pathProvider.CreateTempDir("fastlane_logs")
	if err != nil {
		p.logger.Errorf("Failed to create temp dir for fastlane logs, error: %s", err)
	} else {
		envs = append(envs, "FL_BUILDLOG_PATH="+buildlogPth)
	}

	cmd := p.fastlaneCommand(UploadArgs(cfg), &command.Opts{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    p.opts.WorkDir,
		Env:    envs,
	})

	p.logger.Donef("$ %s", cmd.PrintableCommandArgs())
	if err := cmd.Run(); err != nil {
		p.logger.Println()
		p.logger.Errorf("Fastlane command: (%s) failed", cmd.PrintableCommandArgs())
		p.exportDebugInfo()
		if buildlogPth != "" {
			p.exportBuildLogs(buildlogPth)
		}
		return publish.Result{}, fmt.Errorf("fastlane %s failed: %w", uploadAction, err)
	}

	return publish.Result{}, nil
}

func (p Publisher) fastlaneCommand(args []string, opts *command.Opts) command.Command {
	if p.opts.UseBundler {
		return p.cmdCreator.CreateBundleExec(fastlaneCmd, args, p.opts.BundlerVersion, opts)
	}
	return p.cmdCreator.Create(fastlaneCmd, args, opts)
}

func (p Publisher) exportDebugInfo() {
	if p.opts.DeployDir == "" {
		p.logger.Warnf("No BITRISE_DEPLOY_DIR found, skipping fastlane env export")
		return
	}

	debugInfo, err := p.fastlaneDebugInfo()
	if err != nil {
		p.logger.Warnf("%s", err)
		return
	}
	if debugInfo == "" {
		return
	}

	envLogPth := filepath.Join(p.opts.DeployDir, envLogFileName)
	if err := p.fileManager.Write(envLogPth, debugInfo, 0644); err != nil {
		p.logger.Warnf("Failed to write fastlane env log file, error: %s", err)
		return
	}

	p.logger.Errorf("If you want to send an issue report to fastlane (https://github.com/fastlane/fastlane/issues/new), you can find the output of fastlane env in the following log file:")
	p.logger.Infof("%s", envLogPth)
}

// fastlaneDebugInfo returns the output of `fastlane env`, answering no to its prompt.
func (p Publisher) fastlaneDebugInfo() (string, error) {
	var outBuffer bytes.Buffer
	cmd := p.fastlaneCommand([]string{"env"}, &command.Opts{
		Stdin:  strings.NewReader("n"),
		Stdout: &outBuffer,
		Stderr: os.Stderr,
		Dir:    p.opts.WorkDir,
	})

	p.logger.Debugf("$ %s", cmd.PrintableCommandArgs())
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("fastlane command (%s) failed, output: %s: %w", cmd.PrintableCommandArgs(), outBuffer.String(), err)
	}

	return outBuffer.String(), nil
}

func (p Publisher) exportBuildLogs(buildlogPth string) {
	if p.opts.DeployDir == "" {
		p.logger.Warnf("No BITRISE_DEPLOY_DIR found, fastlane logs are left in: %s", buildlogPth)
		return
	}

	if err := filepath.Walk(buildlogPth, func(pth string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relLogPth, err := filepath.Rel(buildlogPth, pth)
		if err != nil {
			return err
		}
		return p.moveFile(pth, filepath.Join(p.opts.DeployDir, strings.ReplaceAll(relLogPth, string(filepath.Separator), "_")))
	}); err != nil {
		p.logger.Errorf("Failed to export fastlane logs, error: %s", err)
		return
	}
	p.logger.Infof("Fastlane logs exported to: %s", p.opts.DeployDir)
}

// moveFile renames src to dst, falling back to copy and remove when the rename fails,
// as it does across filesystems.
func (p Publisher) moveFile(src, dst string) error {
	if err := p.rename(src, dst); err == nil {
		return nil
	}

	f, err := p.fileManager.Open(src)
	if err != nil {
		return err
	}
	content, err := io.ReadAll(f)
	if cerr := f.Close(); cerr != nil {
		p.logger.Warnf("Failed to close %s: %s", src, cerr)
	}
	if err != nil {
		return err
	}

	if err := p.fileManager.WriteBytes(dst, content); err != nil {
		return err
	}
	return p.fileManager.Remove(src)
}
