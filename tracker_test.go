package main

import (
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitrise-steplib/steps-play-closed-testing/mocks"
)

type enqueuedEvent struct {
	name       string
	properties analytics.Properties
}

type fakeEventQueue struct {
	events []enqueuedEvent
	waited bool
}

func (q *fakeEventQueue) Enqueue(eventName string, properties ...analytics.Properties) {
	merged := analytics.Properties{}
	for _, p := range properties {
		for k, v := range p {
			merged[k] = v
		}
	}
	q.events = append(q.events, enqueuedEvent{name: eventName, properties: merged})
}

func (q *fakeEventQueue) Wait() {
	q.waited = true
}

func TestStepTracker_Events(t *testing.T) {
	queue := &fakeEventQueue{}
	tracker := stepTracker{tracker: queue, logger: mocks.NewPermissiveLogger()}

	tracker.logBackendSelected(fastlaneBackend)
	tracker.logDependenciesInstalled(false, 1500*time.Millisecond)
	tracker.logLaneFinished("upload_closed_only", true, 65*time.Second)
	tracker.wait()

	require.Len(t, queue.events, 3)
	assert.Equal(t, enqueuedEvent{
		name:       "step_publish_backend_selected",
		properties: analytics.Properties{"publish_backend": "fastlane"},
	}, queue.events[0])
	assert.Equal(t, enqueuedEvent{
		name:       "step_dependencies_installed",
		properties: analytics.Properties{"success": false, "duration_s": 1.0},
	}, queue.events[1])
	assert.Equal(t, enqueuedEvent{
		name:       "step_lane_finished",
		properties: analytics.Properties{"lane": "upload_closed_only", "success": true, "duration_s": 65.0},
	}, queue.events[2])
	assert.True(t, queue.waited)
}
