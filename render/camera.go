package render

import "math"

// Camera tracks the top-left world position of the viewport.
type Camera struct {
	X, Y float64

	viewW, viewH   int
	levelW, levelH int
	hasLevel       bool

	locked         bool
	savedX, savedY float64
}

func NewCamera(viewW, viewH int) *Camera {
	return &Camera{viewW: viewW, viewH: viewH}
}

func (c *Camera) SetLevelSize(w, h int) {
	c.levelW, c.levelH = w, h
	c.hasLevel = true
}

func (c *Camera) ClearLevel() {
	c.hasLevel = false
}

// Follow centers the viewport on the target, clamped to the level. An axis
// where the level is smaller than the viewport is letterboxed instead.
func (c *Camera) Follow(targetX, targetY float64) {
	if !c.hasLevel || c.locked {
		return
	}
	c.X = followAxis(targetX, c.viewW, c.levelW)
	c.Y = followAxis(targetY, c.viewH, c.levelH)
}

func followAxis(target float64, view, level int) float64 {
	if level < view {
		return float64(-((view - level) / 2))
	}
	pos := target - float64(view)/2
	return math.Min(math.Max(pos, 0), float64(level-view))
}

// Lock saves the current position and pins the camera at the origin. Only
// one position is remembered.
func (c *Camera) Lock() {
	c.savedX, c.savedY = c.X, c.Y
	c.X, c.Y = 0, 0
	c.locked = true
}

func (c *Camera) Unlock() {
	if !c.locked {
		return
	}
	c.X, c.Y = c.savedX, c.savedY
	c.locked = false
}

func (c *Camera) Locked() bool {
	return c.locked
}

func (c *Camera) Viewport() (int, int) {
	return c.viewW, c.viewH
}

// ToScreen converts a world pixel position to viewport pixels.
func (c *Camera) ToScreen(x, y float64) (int, int) {
	return int(math.Floor(x)) - int(c.X), int(math.Floor(y)) - int(c.Y)
}
