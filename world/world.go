package world

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/ecs/entity"
	"github.com/milk9111/lumin/ecs/system"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/levels"
	"github.com/milk9111/lumin/prefabs"
	"github.com/milk9111/lumin/render"
)

// Options wires a World to its collaborators. Levels, Queue, Fader and
// Camera are required.
type Options struct {
	Levels      *levels.Set
	Catalog     *gameplay.Catalog
	Textures    system.Textures
	Queue       *render.Queue
	Fader       *render.Fader
	Camera      *render.Camera
	NPCSpec     *prefabs.NPCSpec
	StationSpec *prefabs.StationSpec

	Clock        Clock
	FadeDuration float64 // seconds
	SettleDelay  time.Duration
	OnPhase      PhaseListener
	Logger       *zap.Logger
}

// World owns the loaded level and runs the scene operations that change it:
// level switches and the staging in and out of combat.
type World struct {
	entities    *ecs.World
	levels      *levels.Set
	catalog     *gameplay.Catalog
	textures    system.Textures
	queue       *render.Queue
	fader       *render.Fader
	camera      *render.Camera
	npcSpec     *prefabs.NPCSpec
	stationSpec *prefabs.StationSpec

	clock        Clock
	fadeDuration float64
	settleDelay  time.Duration
	onPhase      PhaseListener
	logger       *zap.Logger

	current        int
	loaded         bool
	grids          map[int]levels.Grid
	interacted     map[int]map[image.Point]bool
	tilemapVisible bool
	hidden         []ecs.Entity

	active *transition
}

func New(entities *ecs.World, opts Options) *World {
	w := &World{
		entities:     entities,
		levels:       opts.Levels,
		catalog:      opts.Catalog,
		textures:     opts.Textures,
		queue:        opts.Queue,
		fader:        opts.Fader,
		camera:       opts.Camera,
		npcSpec:      opts.NPCSpec,
		stationSpec:  opts.StationSpec,
		clock:        opts.Clock,
		fadeDuration: opts.FadeDuration,
		settleDelay:  opts.SettleDelay,
		onPhase:      opts.OnPhase,
		logger:       opts.Logger,

		grids:          make(map[int]levels.Grid),
		interacted:     make(map[int]map[image.Point]bool),
		tilemapVisible: true,
	}
	if w.clock == nil {
		w.clock = realClock{}
	}
	if w.fadeDuration < 0 {
		w.fadeDuration = 0
	}
	if w.settleDelay < 0 {
		w.settleDelay = 0
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.npcSpec == nil {
		w.npcSpec = &prefabs.NPCSpec{}
	}
	if w.stationSpec == nil {
		w.stationSpec = &prefabs.StationSpec{}
	}
	return w
}

// Entities is the entity registry the world spawns into.
func (w *World) Entities() *ecs.World {
	return w.entities
}

// Update ticks the fade and advances any running scene operation. It runs
// as a scheduler system after movement and before animation.
func (w *World) Update(_ *ecs.World, dt float64) {
	w.fader.Tick(dt)
	w.advance()
}

// HasFaded reports whether the last fade has finished.
func (w *World) HasFaded() bool {
	return !w.fader.Fading()
}

// LoadLevel makes id the current level immediately, without a transition.
// It is used at startup and when restoring a save. An id of -1 means the
// first level.
func (w *World) LoadLevel(id int) error {
	if id == -1 {
		id = 0
	}
	lvl, ok := w.levels.Level(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidLevelID, id)
	}
	if w.active != nil {
		return ErrTransitionInProgress
	}
	w.destroyLevelEntities()
	w.setLevel(lvl)
	w.push(ecs.EventLevelSwitched, lvl.Music)
	return nil
}

// SwitchLevel starts a level switch to target. With moveToExit the player
// first walks one more tile along exitHint (into the door), movement and
// animations are frozen, and the player arrives at the matching exit anchor
// of the new level. Without it the switch goes straight to the fade.
func (w *World) SwitchLevel(target int, exitHint component.Direction, moveToExit bool) error {
	if target == -1 {
		target = 0
	}
	if _, ok := w.levels.Level(target); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidLevelID, target)
	}
	first := PhaseFadeOut
	if moveToExit {
		first = PhaseNudge
	}
	return w.begin(&transition{
		kind:       KindLevelSwitch,
		target:     target,
		exitHint:   exitHint,
		moveToExit: moveToExit,
	}, first)
}

func (w *World) setLevel(lvl *levels.Level) {
	w.current = lvl.ID
	w.loaded = true
	w.camera.SetLevelSize(lvl.Width, lvl.Height)

	grid := w.grid(lvl)
	ts := w.TileSize()
	for _, npc := range lvl.NPCs {
		if _, err := entity.NewNPC(w.entities, lvl.ID, npc, w.npcSpec); err != nil {
			w.logger.Warn("spawn npc", zap.String("npc", npc.ID), zap.Error(err))
			continue
		}
		p := levels.TileOf(npc.X, npc.Y, ts)
		grid.Set(p.X, p.Y, levels.Solid)
	}
	for _, st := range lvl.Stations {
		if _, err := entity.NewStation(w.entities, lvl.ID, st, w.stationSpec); err != nil {
			w.logger.Warn("spawn station", zap.String("station", st.ID), zap.Error(err))
			continue
		}
		p := levels.TileOf(st.X, st.Y, ts)
		grid.Set(p.X, p.Y, levels.Solid)
	}

	w.logger.Info("level loaded",
		zap.Int("level", lvl.ID),
		zap.String("name", lvl.Name),
		zap.Int("npcs", len(lvl.NPCs)),
		zap.Int("stations", len(lvl.Stations)),
	)
}

// grid returns the mutable collision grid of lvl, copied from the static
// layout on first use.
func (w *World) grid(lvl *levels.Level) levels.Grid {
	g, ok := w.grids[lvl.ID]
	if !ok {
		g = lvl.Collision.Clone()
		w.grids[lvl.ID] = g
	}
	return g
}

func (w *World) destroyLevelEntities() {
	var doomed []ecs.Entity
	doomed = append(doomed, w.entities.Query(component.NPCComponent)...)
	doomed = append(doomed, w.entities.Query(component.StationComponent)...)
	for _, e := range doomed {
		w.entities.DestroyEntity(e)
	}
}

func (w *World) swapLevel(t *transition) {
	old := w.current
	lvl, _ := w.levels.Level(t.target)
	w.destroyLevelEntities()
	w.setLevel(lvl)
	if t.moveToExit {
		w.placeAtExit(lvl, old)
	}
	w.push(ecs.EventLevelSwitched, lvl.Music)
}

// placeAtExit moves the player onto the exit anchor of lvl that leads back
// to level from.
func (w *World) placeAtExit(lvl *levels.Level, from int) {
	for _, a := range lvl.Anchors {
		if a.Identifier != levels.AnchorBuildingInteract || a.Interaction != levels.InteractionExit || a.BuildingID != from {
			continue
		}
		w.placePlayer(float64(a.X), float64(a.Y))
		return
	}
	w.logger.Error("exit anchor missing",
		zap.Int("level", lvl.ID),
		zap.Int("from", from),
	)
}

func (w *World) placePlayer(x, y float64) {
	p, ok := w.entities.First(component.PlayerComponent)
	if !ok {
		return
	}
	if t, ok := ecs.Get(w.entities, p, component.TransformComponent); ok {
		t.X, t.Y = x, y
	}
	if m, ok := ecs.Get(w.entities, p, component.SmoothMovementComponent); ok {
		m.TargetX, m.TargetY = x, y
		m.Moving = false
	}
}

// nudgePlayer sends the player one tile further along dir.
func (w *World) nudgePlayer(dir component.Direction) {
	p, ok := w.entities.First(component.PlayerComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w.entities, p, component.TransformComponent)
	if !ok {
		return
	}
	m, ok := ecs.Get(w.entities, p, component.SmoothMovementComponent)
	if !ok {
		return
	}
	dx, dy := dir.Vector()
	m.TargetX = t.X + float64(dx)*m.TileSize
	m.TargetY = t.Y + float64(dy)*m.TileSize
	m.Moving = true
}

func (w *World) playerMoving() bool {
	p, ok := w.entities.First(component.PlayerComponent)
	if !ok {
		return false
	}
	m, ok := ecs.Get(w.entities, p, component.SmoothMovementComponent)
	return ok && m.Moving
}

// freeze ends every in-flight move on its target tile and stops every
// animation.
func (w *World) freeze() {
	ecs.ForEach2(w.entities, component.TransformComponent, component.SmoothMovementComponent, func(_ ecs.Entity, t *component.Transform, m *component.SmoothMovement) {
		if m.Moving {
			t.X, t.Y = m.TargetX, m.TargetY
			m.Moving = false
		}
	})
	ecs.ForEach(w.entities, component.AnimationComponent, func(_ ecs.Entity, a *component.Animation) {
		system.StopAnimation(a)
	})
}

func (w *World) push(kind, music string) {
	w.entities.Events().Push(ecs.Event{Type: kind, Data: music})
}

// SpawnPoint is the pixel position of the current level's player spawn
// anchor.
func (w *World) SpawnPoint() (image.Point, bool) {
	lvl, ok := w.CurrentLevel()
	if !ok {
		return image.Point{}, false
	}
	for _, a := range lvl.Anchors {
		if a.Identifier == levels.AnchorPlayerSpawn {
			return image.Pt(a.X, a.Y), true
		}
	}
	return image.Point{}, false
}
