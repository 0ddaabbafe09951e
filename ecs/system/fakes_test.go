package system

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/levels"
)

type switchCall struct {
	target     int
	dir        component.Direction
	moveToExit bool
}

// fakeLevel is a 10x10 open room with optional walls, doors, NPCs and
// stations.
type fakeLevel struct {
	tileSize      int
	transitioning bool
	solid         map[image.Point]bool
	occupied      map[image.Point]bool
	doors         map[image.Point]levels.Anchor
	npcs          map[image.Point]levels.NPC
	stations      map[image.Point]levels.Station
	interacted    map[image.Point]bool
	switches      []switchCall

	level   *levels.Level
	visible bool

	exitCalls int
	exitDone  func()
}

func newFakeLevel() *fakeLevel {
	return &fakeLevel{
		tileSize:   32,
		solid:      map[image.Point]bool{},
		occupied:   map[image.Point]bool{},
		doors:      map[image.Point]levels.Anchor{},
		npcs:       map[image.Point]levels.NPC{},
		stations:   map[image.Point]levels.Station{},
		interacted: map[image.Point]bool{},
		visible:    true,
	}
}

func (f *fakeLevel) TileSize() int         { return f.tileSize }
func (f *fakeLevel) IsTransitioning() bool { return f.transitioning }

func (f *fakeLevel) InBounds(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < 10 && p.Y < 10
}

func (f *fakeLevel) IsTileSolid(x, y int) bool {
	p := image.Pt(x, y)
	if !f.InBounds(p) {
		return false
	}
	_, npc := f.npcs[p]
	_, st := f.stations[p]
	return f.solid[p] || npc || st
}

func (f *fakeLevel) IsEntityAtGridPosition(p image.Point) bool { return f.occupied[p] }

func (f *fakeLevel) DoorAt(p image.Point) (levels.Anchor, bool) {
	a, ok := f.doors[p]
	return a, ok
}

func (f *fakeLevel) SwitchLevel(target int, dir component.Direction, moveToExit bool) error {
	f.switches = append(f.switches, switchCall{target, dir, moveToExit})
	return nil
}

func (f *fakeLevel) IsInteractableAt(p image.Point) bool {
	_, npc := f.npcs[p]
	_, st := f.stations[p]
	return npc || st
}

func (f *fakeLevel) InteractableTypeAt(p image.Point) (levels.InteractableType, error) {
	if _, ok := f.npcs[p]; ok {
		return levels.InteractableNPC, nil
	}
	if _, ok := f.stations[p]; ok {
		return levels.InteractableStation, nil
	}
	return 0, errors.New("nothing here")
}

func (f *fakeLevel) NPCAt(p image.Point) (levels.NPC, bool) {
	n, ok := f.npcs[p]
	return n, ok
}

func (f *fakeLevel) StationAt(p image.Point) (levels.Station, bool) {
	s, ok := f.stations[p]
	return s, ok
}

func (f *fakeLevel) HasInteracted(p image.Point) bool { return f.interacted[p] }
func (f *fakeLevel) MarkInteracted(p image.Point)     { f.interacted[p] = true }

func (f *fakeLevel) CurrentLevel() (*levels.Level, bool) { return f.level, f.level != nil }
func (f *fakeLevel) TilemapVisible() bool                { return f.visible }

func (f *fakeLevel) ExitCombat(onDone func()) error {
	f.exitCalls++
	f.exitDone = onDone
	return nil
}

// fakeKeys is a KeySource with a fixed keyboard state.
type fakeKeys struct {
	pressed []ebiten.Key
	just    []ebiten.Key
}

func (k *fakeKeys) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, k.pressed...)
}

func (k *fakeKeys) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, k.just...)
}

func walkClipsForTest() map[string]*component.AnimationClip {
	clips := map[string]*component.AnimationClip{}
	for _, name := range []string{"WalkUp", "WalkDown", "WalkLeft", "WalkRight"} {
		clips[name] = &component.AnimationClip{Name: name, Frames: frames(4), FrameDuration: 0.1, Loop: true, Inverted: true}
	}
	return clips
}

// spawnPlayer adds a player standing on tile (x, y).
func spawnPlayer(t interface{ Fatal(...any) }, w *ecs.World, x, y int) ecs.Entity {
	e := w.CreateEntity()
	for _, err := range []error{
		ecs.Add(w, e, component.PlayerComponent, component.Player{Name: "Ari", Facing: component.South}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{X: float64(x * 32), Y: float64(y * 32)}),
		ecs.Add(w, e, component.InputStateComponent, component.InputState{}),
		ecs.Add(w, e, component.SmoothMovementComponent, component.SmoothMovement{Speed: 96, TileSize: 32}),
		ecs.Add(w, e, component.AnimationComponent, component.Animation{Clips: walkClipsForTest()}),
		ecs.Add(w, e, component.SpriteComponent, component.Sprite{TextureID: "player.png"}),
		ecs.Add(w, e, component.InventoryComponent, component.Inventory{Capacity: 30}),
		ecs.Add(w, e, component.CraftingKnowledgeComponent, component.CraftingKnowledge{}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return e
}
