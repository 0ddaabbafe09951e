package system

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/input"
)

// KeySource reports keyboard state. EbitenKeys reads the real keyboard;
// tests use a fixed list.
type KeySource interface {
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
}

type EbitenKeys struct{}

func (EbitenKeys) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(keys)
}

func (EbitenKeys) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

type InputSystem struct {
	keys    KeySource
	mapping *input.Mapping

	pressed []ebiten.Key
	just    []ebiten.Key
}

func NewInputSystem(keys KeySource, mapping *input.Mapping) *InputSystem {
	if keys == nil {
		keys = EbitenKeys{}
	}
	if mapping == nil {
		mapping = input.DefaultMapping()
	}
	return &InputSystem{keys: keys, mapping: mapping}
}

func (i *InputSystem) Update(w *ecs.World, _ float64) {
	i.pressed = i.keys.AppendPressedKeys(i.pressed[:0])
	i.just = i.keys.AppendJustPressedKeys(i.just[:0])

	held := i.mapping.TriggeredActions(i.pressed)
	triggered := i.mapping.TriggeredActions(i.just)

	ecs.ForEach(w, component.InputStateComponent, func(_ ecs.Entity, st *component.InputState) {
		st.Pressed = slices.Clone(i.pressed)
		st.JustPressed = slices.Clone(i.just)
		st.Held = held
		st.Triggered = triggered
	})
}
