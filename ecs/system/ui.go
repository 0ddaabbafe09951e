package system

import (
	"github.com/milk9111/lumin/gameplay"
)

// UIState is shared between the systems that open overlays and the ones
// that must stand still while an overlay has focus.
type UIState struct {
	Dialogue  gameplay.DialogueBox
	Crafting  CraftingMenu
	Inventory bool
	Combat    bool
	Paused    bool
}

// Blocking reports whether world input (walking, interacting) is suspended.
func (u *UIState) Blocking() bool {
	return u.Inventory || u.overlay()
}

// overlay reports whether anything other than the inventory panel holds focus.
func (u *UIState) overlay() bool {
	return u.Paused || u.Combat || u.Dialogue.Active() || u.Crafting.IsOpen()
}

// CraftingMenu is the recipe list shown at a crafting station.
type CraftingMenu struct {
	open     bool
	fresh    bool
	station  string
	recipes  []gameplay.Recipe
	selected int
	message  string
}

// Open shows recipes for station. Input is ignored for the frame the menu
// opens in so the interact press that opened it does not also craft.
func (m *CraftingMenu) Open(station string, recipes []gameplay.Recipe) {
	m.open = true
	m.fresh = true
	m.station = station
	m.recipes = recipes
	m.selected = 0
	m.message = ""
}

func (m *CraftingMenu) Close() {
	*m = CraftingMenu{}
}

func (m *CraftingMenu) IsOpen() bool {
	return m.open
}

func (m *CraftingMenu) Station() string {
	return m.station
}

func (m *CraftingMenu) Recipes() []gameplay.Recipe {
	return m.recipes
}

func (m *CraftingMenu) Selected() int {
	return m.selected
}

// Message is the result line of the last craft attempt.
func (m *CraftingMenu) Message() string {
	return m.message
}

func (m *CraftingMenu) move(delta int) {
	n := len(m.recipes)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}
