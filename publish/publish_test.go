package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SkipsStoreListing(t *testing.T) {
	all := Config{
		SkipUploadMetadata:    true,
		SkipUploadImages:      true,
		SkipUploadScreenshots: true,
		SkipUploadChangelogs:  true,
	}
	assert.True(t, all.SkipsStoreListing())

	withChangelogs := all
	withChangelogs.SkipUploadChangelogs = false
	assert.False(t, withChangelogs.SkipsStoreListing())

	assert.False(t, Config{}.SkipsStoreListing())
}
