package component

import "image"

type AnimationClip struct {
	Name          string
	Frames        []image.Rectangle
	FrameDuration float64 // seconds
	Loop          bool
	Inverted      bool // ping-pong instead of wrapping
}

type AnimationState struct {
	Clip      string
	Frame     int
	Elapsed   float64
	Returning bool
}

// Animation holds the clips an entity can play. State is nil while stopped,
// in which case Frozen is the rectangle to keep drawing.
type Animation struct {
	Clips     map[string]*AnimationClip
	State     *AnimationState
	Frozen    image.Rectangle
	HasFrozen bool
}

var AnimationComponent = NewComponent[Animation]()
