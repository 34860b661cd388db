package lane

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/kballard/go-shellquote"

	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

// Options is the key-value bag passed to a lane, fastlane style (`key:value`).
type Options map[string]string

// Env is everything a lane needs besides its options.
type Env struct {
	// Dir is the absolute task directory, the artifact and the key are resolved against it.
	Dir           string
	PackageName   string
	ReleaseStatus string
	Publisher     publish.Publisher
	Logger        log.Logger
}

// Func is a lane implementation.
type Func func(ctx context.Context, env Env, opts Options) error

// Runner invokes lanes by name.
type Runner struct {
	lanes map[string]Func
}

// NewRunner returns a Runner with the built-in lanes registered.
func NewRunner() *Runner {
	r := &Runner{lanes: map[string]Func{}}
	r.Register(UploadClosedOnlyLane, UploadClosedOnly)
	r.Register(UploadTestingTracksLane, UploadTestingTracks)
	return r
}

// Register adds or replaces a lane.
func (r *Runner) Register(name string, fn Func) {
	r.lanes[name] = fn
}

// Names returns the registered lane names in alphabetical order.
func (r *Runner) Names() []string {
	var names []string
	for name := range r.lanes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named lane. The lane's error is returned as is.
func (r *Runner) Run(ctx context.Context, name string, env Env, opts Options) error {
	fn, ok := r.lanes[name]
	if !ok {
		return fmt.Errorf("lane (%s) not found, available lanes: %s", name, strings.Join(r.Names(), ", "))
	}
	return fn(ctx, env, opts)
}

var platforms = map[string]bool{
	"android": true,
	"ios":     true,
	"mac":     true,
}

// ParseInput splits a lane input like `android upload_closed_only key:value` into
// the lane name and its options. The platform prefix is optional and dropped.
func ParseInput(input string) (string, Options, error) {
	args, err := shellquote.Split(input)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse lane (%s): %w", input, err)
	}

	if len(args) > 0 && platforms[args[0]] {
		args = args[1:]
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("no lane name in lane input (%s)", input)
	}

	opts := Options{}
	for _, arg := range args[1:] {
		key, value, found := strings.Cut(arg, ":")
		if !found {
			value = "true"
		}
		if key == "" {
			return "", nil, fmt.Errorf("invalid lane option (%s)", arg)
		}
		opts[key] = value
	}

	return args[0], opts, nil
}
