package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TODO_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("TODO_DEBUG", "1")
	assert.True(t, DebugEnabled())

	t.Setenv("TODO_DEBUG", "true")
	assert.True(t, DebugEnabled())
}

func TestDebugHelpers_DoNotPanic(t *testing.T) {
	t.Setenv("TODO_DEBUG", "")
	assert.NotPanics(t, func() {
		Debugf("hidden %s\n", "message")
		Debugln("hidden")
	})

	t.Setenv("TODO_DEBUG", "1")
	assert.NotPanics(t, func() {
		Debugf("shown %s\n", "message")
		Debugln("shown")
	})
}
