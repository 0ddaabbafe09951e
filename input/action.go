package input

import (
	"fmt"
	"strings"
)

// Action is a logical input independent of the physical key bound to it.
type Action int

const (
	MoveUp Action = iota
	MoveDown
	MoveLeft
	MoveRight
	MenuUp
	MenuDown
	MenuLeft
	MenuRight
	Interact
	Options
	Inventory
	Back
	actionCount
)

var actionNames = [...]string{
	MoveUp:    "move_up",
	MoveDown:  "move_down",
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	MenuUp:    "menu_up",
	MenuDown:  "menu_down",
	MenuLeft:  "menu_left",
	MenuRight: "menu_right",
	Interact:  "interact",
	Options:   "options",
	Inventory: "inventory",
	Back:      "back",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction accepts the names produced by String, case-insensitively.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("input: unknown action %q", s)
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ActionSet is a small bit set of actions.
type ActionSet uint32

func (s ActionSet) Has(a Action) bool {
	return s&(1<<uint(a)) != 0
}

func (s ActionSet) With(a Action) ActionSet {
	return s | 1<<uint(a)
}

func (s ActionSet) Empty() bool {
	return s == 0
}

// Each calls fn for every action in the set in declaration order.
func (s ActionSet) Each(fn func(Action)) {
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			fn(a)
		}
	}
}
