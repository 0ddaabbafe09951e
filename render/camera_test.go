package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraFollowClampsInsideLargeLevel(t *testing.T) {
	cases := []struct {
		name         string
		tx, ty       float64
		wantX, wantY float64
	}{
		{"center", 800, 400, 480, 220},
		{"top_left", 0, 0, 0, 0},
		{"bottom_right", 5000, 5000, 960, 440},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(640, 360)
			cam.SetLevelSize(1600, 800)
			cam.Follow(c.tx, c.ty)
			assert.Equal(t, c.wantX, cam.X)
			assert.Equal(t, c.wantY, cam.Y)
			assert.GreaterOrEqual(t, cam.X, 0.0)
			assert.LessOrEqual(t, cam.X, float64(1600-640))
		})
	}
}

func TestCameraLetterboxesSmallLevel(t *testing.T) {
	cam := NewCamera(640, 360)
	cam.SetLevelSize(320, 201)
	cam.Follow(100, 100)
	assert.Equal(t, -160.0, cam.X)
	assert.Equal(t, -79.0, cam.Y)
}

func TestCameraFollowWithoutLevelIsNoop(t *testing.T) {
	cam := NewCamera(640, 360)
	cam.Follow(1000, 1000)
	assert.Zero(t, cam.X)
	assert.Zero(t, cam.Y)
}

func TestCameraLockAndUnlock(t *testing.T) {
	cam := NewCamera(640, 360)
	cam.SetLevelSize(1600, 800)
	cam.Follow(800, 400)

	cam.Lock()
	assert.True(t, cam.Locked())
	assert.Zero(t, cam.X)
	assert.Zero(t, cam.Y)

	cam.Follow(0, 0)
	assert.Zero(t, cam.X, "follow while locked must not move the camera")

	cam.Unlock()
	assert.Equal(t, 480.0, cam.X)
	assert.Equal(t, 220.0, cam.Y)
}

func TestCameraRelockDiscardsSavedPosition(t *testing.T) {
	cam := NewCamera(640, 360)
	cam.SetLevelSize(1600, 800)
	cam.Follow(800, 400)
	cam.Lock()
	cam.Lock()
	cam.Unlock()
	assert.Zero(t, cam.X)
	assert.Zero(t, cam.Y)
}
