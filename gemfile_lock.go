package main

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

type gemVersion struct {
	version string
	found   bool
}

type gemVersions struct {
	fastlane, bundler gemVersion
}

func (s DeployStep) parseGemfileLock(searchDir string) (gemVersions, error) {
	gemfileLockPth := filepath.Join(searchDir, "Gemfile.lock")
	s.logger.Printf("Checking Gemfile.lock (%s) for fastlane and bundler gem", gemfileLockPth)

	if exist, err := s.pathChecker.IsPathExists(gemfileLockPth); err != nil {
		return gemVersions{}, fmt.Errorf("failed to check if Gemfile.lock exist at (%s), error: %w", gemfileLockPth, err)
	} else if !exist {
		s.logger.Printf("Gemfile.lock does not exist")
		return gemVersions{}, nil
	}

	content, err := s.readFile(gemfileLockPth)
	if err != nil {
		return gemVersions{}, fmt.Errorf("failed to read Gemfile.lock: %w", err)
	}

	var versions gemVersions

	versions.fastlane = parseGemVersion("fastlane", string(content))
	if versions.fastlane.found {
		s.logger.Infof("Gemfile.lock defined fastlane version: %s", versions.fastlane.version)
	} else {
		s.logger.Infof("No fastlane version defined in Gemfile.lock")
	}

	versions.bundler = parseBundlerVersion(string(content))
	if versions.bundler.found {
		s.logger.Infof("Gemfile.lock defined bundler version: %s", versions.bundler.version)
	} else {
		s.logger.Warnf("No bundler version defined in Gemfile.lock")
	}

	return versions, nil
}

func (s DeployStep) readFile(pth string) ([]byte, error) {
	f, err := s.fileManager.Open(pth)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warnf("Failed to close %s: %s", pth, err)
		}
	}()

	return io.ReadAll(f)
}

// parseGemVersion returns the gem version parsed from a Gemfile.lock on a best effort basis.
//
// For the following Gemfile.lock sections parseGemVersion("fastlane", ...) returns "2.219.0":
//
//	specs:
//	  badge (0.8.5)
//	    fastlane (>= 2.0)
//	  fastlane (2.219.0)
func parseGemVersion(gemName string, content string) gemVersion {
	var relevantLines []string
	specsStart := false
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "specs:") {
			specsStart = true
		}
		if strings.TrimSpace(line) == "" {
			specsStart = false
		}
		if specsStart {
			relevantLines = append(relevantLines, line)
		}
	}

	//     fastlane (2.219.0)
	exp := regexp.MustCompile(fmt.Sprintf(`^%s \(([^<>=~ ]+)\)$`, regexp.QuoteMeta(gemName)))
	for _, line := range relevantLines {
		match := exp.FindStringSubmatch(strings.TrimSpace(line))
		if len(match) == 2 {
			return gemVersion{version: match[1], found: true}
		}
	}

	return gemVersion{}
}

var bundlerRegexp = regexp.MustCompile(`(?m)^BUNDLED WITH\n\s+(\S+)`)

func parseBundlerVersion(gemfileLockContent string) gemVersion {
	/*
		BUNDLED WITH
			1.17.1
	*/
	match := bundlerRegexp.FindStringSubmatch(gemfileLockContent)
	if len(match) != 2 {
		return gemVersion{}
	}

	return gemVersion{version: match[1], found: true}
}
