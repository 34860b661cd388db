package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Logger is a testify mock of the go-utils v2 log.Logger.
type Logger struct {
	mock.Mock
}

// NewPermissiveLogger returns a Logger accepting any log call.
func NewPermissiveLogger() *Logger {
	ml := &Logger{}
	for _, method := range []string{"Infof", "Warnf", "Printf", "Donef", "Debugf", "Errorf"} {
		ml.On(method, mock.Anything, mock.Anything).Maybe()
	}
	ml.On("Println").Maybe()
	ml.On("EnableDebugLog", mock.Anything).Maybe()
	return ml
}

// DoneCount returns how many times Donef was called with the format.
func (ml *Logger) DoneCount(format string) int {
	count := 0
	for _, call := range ml.Calls {
		if call.Method == "Donef" && call.Arguments.String(0) == format {
			count++
		}
	}
	return count
}

func (ml *Logger) Infof(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) Warnf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) Printf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) Donef(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) Debugf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) Errorf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) TInfof(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) TWarnf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) TPrintf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) TDonef(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) TDebugf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) TErrorf(format string, v ...interface{}) {
	ml.Called(format, v)
}

func (ml *Logger) Println() {
	ml.Called()
}

func (ml *Logger) EnableDebugLog(enable bool) {
	ml.Called(enable)
}
