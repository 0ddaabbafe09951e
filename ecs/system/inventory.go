package system

import (
	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/input"
)

// InventorySystem toggles the inventory panel. It only opens while no other
// overlay has focus; back or the inventory key closes it.
type InventorySystem struct {
	ui *UIState
}

func NewInventorySystem(ui *UIState) *InventorySystem {
	return &InventorySystem{ui: ui}
}

func (s *InventorySystem) Update(w *ecs.World, _ float64) {
	if s.ui.overlay() {
		s.ui.Inventory = false
		return
	}
	pressed := playerTriggered(w)
	switch {
	case s.ui.Inventory && (pressed.Has(input.Inventory) || pressed.Has(input.Back)):
		s.ui.Inventory = false
	case !s.ui.Inventory && pressed.Has(input.Inventory):
		s.ui.Inventory = true
	}
}
