package mocks

import (
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestLogger_DoneCount(t *testing.T) {
	var logger log.Logger = NewPermissiveLogger()
	logger.Donef("done")
	logger.Donef("done")
	logger.Donef("other %s", "value")
	logger.Infof("done")

	ml := logger.(*Logger)
	assert.Equal(t, 2, ml.DoneCount("done"))
	assert.Equal(t, 1, ml.DoneCount("other %s"))
	assert.Equal(t, 0, ml.DoneCount("missing"))
}
