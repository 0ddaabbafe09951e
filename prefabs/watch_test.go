package prefabs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainErrorsEmptiesChannel(t *testing.T) {
	w := &Watcher{Errors: make(chan error, 1)}
	assert.Empty(t, w.DrainErrors())

	overflow := errors.New("inotify queue overflow")
	w.Errors <- overflow
	assert.Equal(t, []error{overflow}, w.DrainErrors())
	assert.Empty(t, w.DrainErrors())
}

func TestDrainDeduplicatesPaths(t *testing.T) {
	w := &Watcher{Events: make(chan string, 4)}
	w.Events <- "scripts/slime.tengo"
	w.Events <- "npc.yaml"
	w.Events <- "scripts/slime.tengo"

	assert.Equal(t, []string{"scripts/slime.tengo", "npc.yaml"}, w.Drain())
	assert.Empty(t, w.Drain())
}
