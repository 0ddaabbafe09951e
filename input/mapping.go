package input

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Mapping binds each action to one physical key.
type Mapping struct {
	keys map[Action]ebiten.Key
}

// DefaultMapping returns the stock bindings: WASD to walk, arrows for menus,
// E to interact, P for options, I for the inventory and Escape to go back.
func DefaultMapping() *Mapping {
	return &Mapping{keys: map[Action]ebiten.Key{
		MoveUp:    ebiten.KeyW,
		MoveDown:  ebiten.KeyS,
		MoveLeft:  ebiten.KeyA,
		MoveRight: ebiten.KeyD,
		MenuUp:    ebiten.KeyArrowUp,
		MenuDown:  ebiten.KeyArrowDown,
		MenuLeft:  ebiten.KeyArrowLeft,
		MenuRight: ebiten.KeyArrowRight,
		Interact:  ebiten.KeyE,
		Options:   ebiten.KeyP,
		Inventory: ebiten.KeyI,
		Back:      ebiten.KeyEscape,
	}}
}

func (m *Mapping) Bind(a Action, k ebiten.Key) {
	m.keys[a] = k
}

func (m *Mapping) Key(a Action) (ebiten.Key, bool) {
	k, ok := m.keys[a]
	return k, ok
}

// TriggeredActions returns the actions whose key is in pressed.
func (m *Mapping) TriggeredActions(pressed []ebiten.Key) ActionSet {
	var set ActionSet
	if len(pressed) == 0 {
		return set
	}
	for a, k := range m.keys {
		for _, p := range pressed {
			if p == k {
				set = set.With(a)
				break
			}
		}
	}
	return set
}

// Apply rebinds actions from a name table such as the [keybinds] config
// section. Unknown actions or keys are reported together.
func (m *Mapping) Apply(binds map[string]string) error {
	var problems []string
	for actionName, keyName := range binds {
		a, err := ParseAction(actionName)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		k, err := ParseKey(keyName)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		m.Bind(a, k)
	}
	if len(problems) > 0 {
		return fmt.Errorf("input: apply keybinds: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Names returns the bindings as a name table, the inverse of Apply.
func (m *Mapping) Names() map[string]string {
	out := make(map[string]string, len(m.keys))
	for a, k := range m.keys {
		out[a.String()] = k.String()
	}
	return out
}

// ParseKey resolves an ebiten key name such as "E", "ArrowUp" or "Escape".
func ParseKey(name string) (ebiten.Key, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.ToLower(k.String()) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("input: unknown key %q", name)
}
