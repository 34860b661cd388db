package lane

import (
	"context"

	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

type fakePublisher struct {
	calls   []publish.Config
	results map[string]error
	err     error
}

func (p *fakePublisher) Publish(_ context.Context, cfg publish.Config) (publish.Result, error) {
	p.calls = append(p.calls, cfg)
	if err, ok := p.results[cfg.Track]; ok {
		return publish.Result{}, err
	}
	if p.err != nil {
		return publish.Result{}, p.err
	}
	return publish.Result{EditID: "edit-" + cfg.Track, VersionCode: 7}, nil
}
