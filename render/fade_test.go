package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeOutAlphaIsMonotonic(t *testing.T) {
	var f Fader
	f.Start(false, 2.0, false)
	require.True(t, f.Fading())
	assert.Equal(t, uint8(0), f.Alpha())

	last := f.Alpha()
	for i := 0; i < 200; i++ {
		f.Tick(1.0 / 60)
		a := f.Alpha()
		require.GreaterOrEqual(t, a, last)
		last = a
	}
	assert.Equal(t, uint8(255), f.Alpha())
	assert.False(t, f.Fading())
}

func TestFadeInAlphaIsMonotonic(t *testing.T) {
	var f Fader
	f.Start(true, 0.5, false)
	assert.Equal(t, uint8(255), f.Alpha())

	last := f.Alpha()
	for i := 0; i < 60; i++ {
		f.Tick(1.0 / 60)
		a := f.Alpha()
		require.LessOrEqual(t, a, last)
		last = a
	}
	assert.Equal(t, uint8(0), f.Alpha())
}

func TestFadeReachesExactEndpointAndClamps(t *testing.T) {
	var f Fader
	f.Start(false, 1.0, false)
	f.Tick(1.0)
	assert.Equal(t, uint8(255), f.Alpha())
	assert.False(t, f.Fading())

	f.Tick(5)
	assert.Equal(t, uint8(255), f.Alpha())
	assert.Equal(t, 1.0, f.Progress())
}

func TestFadeMidpoint(t *testing.T) {
	var f Fader
	f.Start(false, 2.0, false)
	f.Tick(1.0)
	assert.Equal(t, uint8(128), f.Alpha())
}

func TestFadeOverlayCommands(t *testing.T) {
	cases := []struct {
		name  string
		setup func(f *Fader)
		want  []Kind
	}{
		{"idle", func(f *Fader) {}, nil},
		{"fading", func(f *Fader) { f.Start(false, 1, false); f.Tick(0.5) }, []Kind{KindFadeOverlay}},
		{"finished_without_hold", func(f *Fader) { f.Start(false, 1, false); f.Tick(1) }, nil},
		{"finished_with_hold", func(f *Fader) { f.Start(false, 1, true); f.Tick(1) }, []Kind{KindHoldBlackOverlay}},
		{"new_fade_releases_hold", func(f *Fader) {
			f.Start(false, 1, true)
			f.Tick(1)
			f.Start(true, 1, false)
			f.Tick(1)
		}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var f Fader
			c.setup(&f)
			q := NewQueue(640, 360)
			f.Overlay(q)

			var kinds []Kind
			for _, cmd := range q.Commands() {
				kinds = append(kinds, cmd.Kind)
				assert.Equal(t, ZMax, cmd.Z)
			}
			assert.Equal(t, c.want, kinds)
		})
	}
}

func TestHoldPersistsAcrossDraws(t *testing.T) {
	var f Fader
	f.Start(false, 0.1, true)
	f.Tick(0.2)
	for i := 0; i < 3; i++ {
		q := NewQueue(640, 360)
		f.Overlay(q)
		require.Equal(t, 1, q.Len())
		assert.Equal(t, uint8(255), q.Commands()[0].Alpha)
	}
	assert.True(t, f.Holding())
}

func TestZeroDurationFadeCompletesImmediately(t *testing.T) {
	var f Fader
	f.Start(false, 0, false)
	assert.False(t, f.Fading())
	assert.Equal(t, uint8(255), f.Alpha())
}
