package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingBeforeInitDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("message before init")
		Infof("formatted %d", 1)
		Infow("structured", "key", "value")
		Warnf("warn %s", "x")
		Error("error before init", errors.New("boom"))
		Errorf("errorf %v", errors.New("boom"))
		Sync()
	})
}

func TestInitReplacesLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Init("debug", "json")
		Info("after init")
	})
	assert.NotPanics(t, func() {
		Init("not-a-level", "console")
		Infof("fell back to %s", "info")
	})
}
