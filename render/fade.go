package render

import "math"

// Fader drives the full-screen fade overlay. Durations are in seconds.
type Fader struct {
	fading   bool
	fadeIn   bool
	hold     bool
	elapsed  float64
	duration float64
}

// Start begins a fade. fadeIn goes from black to the scene; otherwise the
// scene fades to black. With hold the overlay stays opaque after the fade
// finishes until the next Start.
func (f *Fader) Start(fadeIn bool, duration float64, hold bool) {
	f.fading = true
	f.fadeIn = fadeIn
	f.hold = hold
	f.elapsed = 0
	f.duration = duration
	if duration <= 0 {
		f.duration = 0
		f.fading = false
	}
}

func (f *Fader) Tick(dt float64) {
	if !f.fading {
		return
	}
	f.elapsed += dt
	if f.elapsed >= f.duration {
		f.elapsed = f.duration
		f.fading = false
	}
}

func (f *Fader) Fading() bool {
	return f.fading
}

// Holding reports whether a finished held fade is keeping the screen black.
func (f *Fader) Holding() bool {
	return f.hold && !f.fading
}

func (f *Fader) Progress() float64 {
	if f.duration <= 0 {
		return 1
	}
	return math.Min(math.Max(f.elapsed/f.duration, 0), 1)
}

// Alpha returns the overlay opacity for the current fade.
func (f *Fader) Alpha() uint8 {
	p := f.Progress()
	if f.fadeIn {
		p = 1 - p
	}
	return uint8(math.Round(p * 255))
}

// Overlay enqueues the commands needed to draw the current fade state.
func (f *Fader) Overlay(q *Queue) {
	switch {
	case f.fading:
		q.Enqueue(FadeOverlay(f.Alpha()))
	case f.hold:
		q.Enqueue(HoldBlackOverlay())
	}
}
