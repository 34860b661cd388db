package main

import (
	"time"

	"github.com/bitrise-io/go-utils/v2/analytics"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

type laneTracker interface {
	logLaneFinished(laneName string, success bool, duration time.Duration)
}

// eventQueue is the part of analytics.Tracker the step uses.
type eventQueue interface {
	Enqueue(eventName string, properties ...analytics.Properties)
	Wait()
}

type stepTracker struct {
	tracker eventQueue
	logger  log.Logger
}

func newStepTracker(envRepo env.Repository, logger log.Logger, runID string) stepTracker {
	p := analytics.Properties{
		"build_slug":        envRepo.Get("BITRISE_BUILD_SLUG"),
		"step_execution_id": envRepo.Get("BITRISE_STEP_EXECUTION_ID"),
		"step_id":           "play-closed-testing",
		"run_id":            runID,
	}
	return stepTracker{
		tracker: analytics.NewDefaultTracker(logger, p),
		logger:  logger,
	}
}

func (t stepTracker) logBackendSelected(backend string) {
	properties := analytics.Properties{
		"publish_backend": backend,
	}
	t.tracker.Enqueue("step_publish_backend_selected", properties)
}

func (t stepTracker) logDependenciesInstalled(success bool, duration time.Duration) {
	properties := analytics.Properties{
		"success":    success,
		"duration_s": duration.Truncate(time.Second).Seconds(),
	}
	t.tracker.Enqueue("step_dependencies_installed", properties)
}

func (t stepTracker) logLaneFinished(laneName string, success bool, duration time.Duration) {
	properties := analytics.Properties{
		"lane":       laneName,
		"success":    success,
		"duration_s": duration.Truncate(time.Second).Seconds(),
	}
	t.tracker.Enqueue("step_lane_finished", properties)
}

func (t stepTracker) wait() {
	t.tracker.Wait()
}
