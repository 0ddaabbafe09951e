package component

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/lumin/input"
)

// InputState is refreshed by the input system each frame. Held is every
// action whose key is down; Triggered only those pressed this frame.
type InputState struct {
	Pressed     []ebiten.Key
	JustPressed []ebiten.Key
	Held        input.ActionSet
	Triggered   input.ActionSet
}

var InputStateComponent = NewComponent[InputState]()
