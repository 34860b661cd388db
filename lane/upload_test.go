package lane

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitrise-steplib/steps-play-closed-testing/mocks"
	"github.com/bitrise-steplib/steps-play-closed-testing/publish"
)

func TestUploadClosedOnly_Succeeds(t *testing.T) {
	dir := t.TempDir()
	publisher := &fakePublisher{}
	logger := mocks.NewPermissiveLogger()
	env := Env{Dir: dir, PackageName: "io.example.app", ReleaseStatus: "draft", Publisher: publisher, Logger: logger}

	err := UploadClosedOnly(context.Background(), env, Options{"track": "production", "skip_upload_images": "false"})
	require.NoError(t, err)

	require.Len(t, publisher.calls, 1)
	assert.Equal(t, publish.Config{
		Track:                 "closed",
		AABPath:               ArtifactPath(dir),
		JSONKeyPath:           CredentialPath(dir),
		PackageName:           "io.example.app",
		ReleaseStatus:         "draft",
		SkipUploadMetadata:    true,
		SkipUploadImages:      true,
		SkipUploadScreenshots: true,
		SkipUploadChangelogs:  true,
	}, publisher.calls[0])
	assert.Equal(t, 1, logger.DoneCount(ClosedSuccessMessage))
}

func TestUploadClosedOnly_NilOptions(t *testing.T) {
	publisher := &fakePublisher{}
	logger := mocks.NewPermissiveLogger()

	err := UploadClosedOnly(context.Background(), Env{Dir: "/work", Publisher: publisher, Logger: logger}, nil)
	require.NoError(t, err)
	require.Len(t, publisher.calls, 1)
	assert.Equal(t, "closed", publisher.calls[0].Track)
	assert.True(t, publisher.calls[0].SkipsStoreListing())
}

func TestUploadClosedOnly_PropagatesFailure(t *testing.T) {
	uploadErr := errors.New("401 unauthorized")
	publisher := &fakePublisher{err: uploadErr}
	logger := mocks.NewPermissiveLogger()

	err := UploadClosedOnly(context.Background(), Env{Dir: "/work", Publisher: publisher, Logger: logger}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, uploadErr))
	assert.Len(t, publisher.calls, 1)
	assert.Equal(t, 0, logger.DoneCount(ClosedSuccessMessage))
}

func TestUploadTestingTracks_UploadsAlphaThenClosed(t *testing.T) {
	publisher := &fakePublisher{}
	logger := mocks.NewPermissiveLogger()

	err := UploadTestingTracks(context.Background(), Env{Dir: "/work", Publisher: publisher, Logger: logger}, nil)
	require.NoError(t, err)

	require.Len(t, publisher.calls, 2)
	assert.Equal(t, "alpha", publisher.calls[0].Track)
	assert.Equal(t, "closed", publisher.calls[1].Track)
	for _, cfg := range publisher.calls {
		assert.True(t, cfg.SkipsStoreListing())
		assert.Equal(t, ArtifactPath("/work"), cfg.AABPath)
	}
	logger.AssertCalled(t, "Printf", "Result: %d/%d tracks succeeded", []interface{}{2, 2})
}

func TestUploadTestingTracks_ContinuesAfterFailure(t *testing.T) {
	alphaErr := errors.New("version code already used")
	publisher := &fakePublisher{results: map[string]error{"alpha": alphaErr}}
	logger := mocks.NewPermissiveLogger()

	err := UploadTestingTracks(context.Background(), Env{Dir: "/work", Publisher: publisher, Logger: logger}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, alphaErr))
	assert.Contains(t, err.Error(), "track alpha")

	require.Len(t, publisher.calls, 2)
	assert.Equal(t, "closed", publisher.calls[1].Track)
	logger.AssertCalled(t, "Printf", "Result: %d/%d tracks succeeded", []interface{}{1, 2})
}
