package system

import (
	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/input"
)

// DialogueSystem types out the active dialogue and advances it on interact.
type DialogueSystem struct {
	ui *UIState
}

func NewDialogueSystem(ui *UIState) *DialogueSystem {
	return &DialogueSystem{ui: ui}
}

func (s *DialogueSystem) Update(w *ecs.World, dt float64) {
	box := &s.ui.Dialogue
	if !box.Active() {
		return
	}
	if playerTriggered(w).Has(input.Interact) {
		box.Advance()
	}
	box.Update(dt)
}

// playerTriggered returns the actions the player pressed this frame.
func playerTriggered(w *ecs.World) input.ActionSet {
	e, ok := w.First(component.PlayerComponent)
	if !ok {
		return input.ActionSet(0)
	}
	in, ok := ecs.Get(w, e, component.InputStateComponent)
	if !ok {
		return input.ActionSet(0)
	}
	return in.Triggered
}
