package world

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/ecs/system"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/levels"
	"github.com/milk9111/lumin/render"
)

const dt = 1.0 / 60

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type plainTexture struct{}

func (plainTexture) Bounds() image.Rectangle { return image.Rect(0, 0, 640, 360) }

type fakeTextures map[string]bool

func (f fakeTextures) Drawable(id string) (render.Texture, error) {
	if !f[id] {
		return nil, errors.New("missing " + id)
	}
	return plainTexture{}, nil
}

type fixture struct {
	ecs    *ecs.World
	w      *World
	clock  *fakeClock
	fader  *render.Fader
	camera *render.Camera
	queue  *render.Queue
	player ecs.Entity

	trace []Phase
	kinds []Kind
	// check runs on every phase entry
	check func(Kind, Phase)
}

func newFixture(t *testing.T, level int) *fixture {
	t.Helper()
	set, err := levels.LoadEmbedded(levels.DefaultSet)
	require.NoError(t, err)
	cat, err := gameplay.LoadEmbeddedCatalog(context.Background())
	require.NoError(t, err)

	f := &fixture{
		ecs:    ecs.NewWorld(),
		clock:  &fakeClock{now: time.Unix(1_700_000_000, 0)},
		fader:  &render.Fader{},
		camera: render.NewCamera(640, 360),
		queue:  render.NewQueue(640, 360),
	}
	f.w = New(f.ecs, Options{
		Levels:       set,
		Catalog:      cat,
		Textures:     fakeTextures{"backdrops/forest.png": true},
		Queue:        f.queue,
		Fader:        f.fader,
		Camera:       f.camera,
		Clock:        f.clock,
		FadeDuration: 0.5,
		SettleDelay:  DefaultSettleDelay,
		OnPhase: func(k Kind, p Phase) {
			f.kinds = append(f.kinds, k)
			f.trace = append(f.trace, p)
			if f.check != nil {
				f.check(k, p)
			}
		},
	})
	require.NoError(t, f.w.LoadLevel(level))
	return f
}

func (f *fixture) addPlayer(t *testing.T, x, y float64) {
	t.Helper()
	e := f.ecs.CreateEntity()
	clips := map[string]*component.AnimationClip{
		"WalkUp": {Name: "WalkUp", Frames: []image.Rectangle{image.Rect(0, 0, 32, 48), image.Rect(32, 0, 64, 48)}, FrameDuration: 0.1, Loop: true},
	}
	anim := component.Animation{Clips: clips}
	system.PlayAnimation(&anim, "WalkUp")
	for _, err := range []error{
		ecs.Add(f.ecs, e, component.PlayerComponent, component.Player{Name: "Ari"}),
		ecs.Add(f.ecs, e, component.TransformComponent, component.Transform{X: x, Y: y}),
		ecs.Add(f.ecs, e, component.SmoothMovementComponent, component.SmoothMovement{TargetX: x, TargetY: y, Speed: 96, TileSize: 32}),
		ecs.Add(f.ecs, e, component.AnimationComponent, anim),
		ecs.Add(f.ecs, e, component.SpriteComponent, component.Sprite{TextureID: "player.png"}),
		ecs.Add(f.ecs, e, component.CombatantComponent, component.Combatant{Name: "Ari", Health: 40, MaxHealth: 40, IsPlayer: true}),
	} {
		require.NoError(t, err)
	}
	f.player = e
}

// step runs one frame: movement interpolation, then the world.
func (f *fixture) step() {
	ecs.ForEach2(f.ecs, component.TransformComponent, component.SmoothMovementComponent, func(_ ecs.Entity, t *component.Transform, m *component.SmoothMovement) {
		if m.Moving {
			system.Interpolate(t, m, dt)
		}
	})
	f.clock.now = f.clock.now.Add(time.Second / 60)
	f.w.Update(f.ecs, dt)
}

func (f *fixture) runUntilIdle(t *testing.T) {
	t.Helper()
	for i := 0; i < 10_000 && f.w.IsTransitioning(); i++ {
		f.step()
	}
	require.False(t, f.w.IsTransitioning(), "transition never finished")
}

func (f *fixture) playerPos() (float64, float64) {
	tr := ecs.MustGet(f.ecs, f.player, component.TransformComponent)
	return tr.X, tr.Y
}

func (f *fixture) countNPCs() int {
	return len(f.ecs.Query(component.NPCComponent))
}

func lastEvent(t *testing.T, w *ecs.World) ecs.Event {
	t.Helper()
	evs := w.Events().Drain()
	require.NotEmpty(t, evs)
	return evs[len(evs)-1]
}

func TestLevelSwitchPhaseOrder(t *testing.T) {
	f := newFixture(t, 0)
	// one tile below the door to building 1 at (320, 192)
	f.addPlayer(t, 320, 224)
	require.Equal(t, 3, f.countNPCs())

	var swapAt time.Time
	f.check = func(_ Kind, p Phase) {
		switch p {
		case PhaseFreeze:
			assert.False(t, ecs.MustGet(f.ecs, f.player, component.SmoothMovementComponent).Moving, "nudge finishes before freezing")
			x, y := f.playerPos()
			assert.Equal(t, 320.0, x)
			assert.Equal(t, 192.0, y)
		case PhaseSwap:
			assert.True(t, f.fader.Holding(), "swap happens behind a finished fade out")
			assert.Equal(t, 0, f.w.CurrentLevelID())
			swapAt = f.clock.Now()
		case PhaseFadeIn:
			assert.Equal(t, 1, f.w.CurrentLevelID())
			assert.GreaterOrEqual(t, f.clock.Now().Sub(swapAt), DefaultSettleDelay)
		}
	}

	require.NoError(t, f.w.SwitchLevel(1, component.North, true))
	kind, phase := f.w.ActiveTransition()
	assert.Equal(t, KindLevelSwitch, kind)
	assert.Equal(t, PhaseNudge, phase)
	assert.True(t, ecs.MustGet(f.ecs, f.player, component.SmoothMovementComponent).Moving)

	f.runUntilIdle(t)

	assert.Equal(t, []Phase{PhaseNudge, PhaseFreeze, PhaseFadeOut, PhaseSwap, PhaseSettle, PhaseFadeIn, PhaseDone}, f.trace)
	assert.Equal(t, 1, f.w.CurrentLevelID())
	x, y := f.playerPos()
	assert.Equal(t, 192.0, x, "placed on the exit anchor back to level 0")
	assert.Equal(t, 224.0, y)
	assert.Nil(t, ecs.MustGet(f.ecs, f.player, component.AnimationComponent).State, "animations stopped")
	assert.Equal(t, 1, f.countNPCs(), "old NPCs destroyed, new ones spawned")
	assert.True(t, f.w.IsTileSolid(3, 2), "NPC tile marked solid")
	assert.Zero(t, f.fader.Alpha())

	ev := lastEvent(t, f.ecs)
	assert.Equal(t, ecs.EventLevelSwitched, ev.Type)
	assert.Equal(t, "home_theme.wav", ev.Data)
}

func TestLevelSwitchWithoutMoveToExit(t *testing.T) {
	f := newFixture(t, 0)
	f.addPlayer(t, 160, 288)

	require.NoError(t, f.w.SwitchLevel(2, component.South, false))
	f.runUntilIdle(t)

	assert.Equal(t, []Phase{PhaseFadeOut, PhaseSwap, PhaseSettle, PhaseFadeIn, PhaseDone}, f.trace)
	assert.Equal(t, 2, f.w.CurrentLevelID())
	x, y := f.playerPos()
	assert.Equal(t, 160.0, x, "player not repositioned")
	assert.Equal(t, 288.0, y)
	assert.Equal(t, "WalkUp", system.CurrentClip(ecs.MustGet(f.ecs, f.player, component.AnimationComponent)), "animations keep playing")
	assert.Len(t, f.ecs.Query(component.StationComponent), 2)
}

func TestSettleWaitsForClock(t *testing.T) {
	f := newFixture(t, 0)
	f.addPlayer(t, 160, 288)
	require.NoError(t, f.w.SwitchLevel(1, component.South, false))

	for i := 0; i < 1000; i++ {
		_, p := f.w.ActiveTransition()
		if p == PhaseSettle {
			break
		}
		f.step()
	}
	_, p := f.w.ActiveTransition()
	require.Equal(t, PhaseSettle, p)

	for range 10 {
		f.w.Update(f.ecs, dt)
	}
	_, p = f.w.ActiveTransition()
	assert.Equal(t, PhaseSettle, p, "frames alone do not end the settle delay")

	f.clock.now = f.clock.now.Add(DefaultSettleDelay)
	f.w.Update(f.ecs, dt)
	_, p = f.w.ActiveTransition()
	assert.Equal(t, PhaseFadeIn, p)
}

func TestMissingExitAnchorSkipsRepositioning(t *testing.T) {
	f := newFixture(t, 1)
	f.addPlayer(t, 96, 160)

	// level 2 only has an exit back to level 0
	require.NoError(t, f.w.SwitchLevel(2, component.South, true))
	f.runUntilIdle(t)

	assert.Equal(t, 2, f.w.CurrentLevelID())
	x, y := f.playerPos()
	assert.Equal(t, 96.0, x)
	assert.Equal(t, 192.0, y, "only the nudge moved the player")
}

func TestSwitchLevelGuards(t *testing.T) {
	f := newFixture(t, 0)
	f.addPlayer(t, 160, 288)

	assert.ErrorIs(t, f.w.SwitchLevel(7, component.South, false), ErrInvalidLevelID)
	assert.ErrorIs(t, f.w.SwitchLevel(-2, component.South, false), ErrInvalidLevelID)
	assert.False(t, f.w.IsTransitioning())

	require.NoError(t, f.w.SwitchLevel(-1, component.South, false), "-1 means the first level")
	assert.ErrorIs(t, f.w.SwitchLevel(1, component.South, false), ErrTransitionInProgress)
	assert.ErrorIs(t, f.w.EnterCombat("forest_wisp", nil), ErrTransitionInProgress)
	assert.ErrorIs(t, f.w.LoadLevel(1), ErrTransitionInProgress)

	f.runUntilIdle(t)
	assert.Equal(t, 0, f.w.CurrentLevelID())
	assert.Equal(t, 3, f.countNPCs(), "reloading a level does not duplicate NPCs")
}

func TestCombatStaging(t *testing.T) {
	f := newFixture(t, 0)
	f.addPlayer(t, 800, 256)
	f.camera.Follow(800, 256)
	camX := f.camera.X
	f.ecs.Events().Drain()

	ready := false
	require.NoError(t, f.w.EnterCombat("forest_wisp", func() { ready = true }))
	assert.True(t, f.camera.Locked())
	f.runUntilIdle(t)

	require.True(t, ready)
	assert.Equal(t, []Phase{PhaseFreeze, PhaseFadeOut, PhaseSwap, PhaseSettle, PhaseFadeIn, PhaseDone}, f.trace)
	assert.False(t, f.w.TilemapVisible())
	_, ok := f.queue.Named(BackdropName)
	assert.True(t, ok)
	assert.True(t, ecs.MustGet(f.ecs, f.player, component.SpriteComponent).Hidden)
	assert.Len(t, f.ecs.Query(component.CombatantComponent), 3, "player and two enemies")
	ev := lastEvent(t, f.ecs)
	assert.Equal(t, ecs.EventCombatStarted, ev.Type)
	assert.Equal(t, "combat.wav", ev.Data)

	f.trace = nil
	done := false
	require.NoError(t, f.w.ExitCombat(func() { done = true }))
	f.runUntilIdle(t)

	require.True(t, done)
	assert.Equal(t, []Phase{PhaseFadeOut, PhaseSwap, PhaseSettle, PhaseFadeIn, PhaseDone}, f.trace)
	assert.True(t, f.w.TilemapVisible())
	_, ok = f.queue.Named(BackdropName)
	assert.False(t, ok)
	assert.False(t, ecs.MustGet(f.ecs, f.player, component.SpriteComponent).Hidden)
	assert.Len(t, f.ecs.Query(component.CombatantComponent), 1, "only the player remains")
	assert.False(t, f.camera.Locked())
	assert.Equal(t, camX, f.camera.X)
	ev = lastEvent(t, f.ecs)
	assert.Equal(t, ecs.EventCombatEnded, ev.Type)
	assert.Equal(t, "town_theme.wav", ev.Data)
}

func TestUnknownEncounter(t *testing.T) {
	f := newFixture(t, 0)
	assert.ErrorIs(t, f.w.EnterCombat("dragon", nil), gameplay.ErrUnknownEncounter)
	assert.False(t, f.w.IsTransitioning())
}

func TestIsTileSolidNeverFails(t *testing.T) {
	set, err := levels.LoadEmbedded(levels.DefaultSet)
	require.NoError(t, err)
	empty := New(ecs.NewWorld(), Options{Levels: set, Fader: &render.Fader{}, Camera: render.NewCamera(64, 64), Queue: render.NewQueue(64, 64)})
	assert.False(t, empty.IsTileSolid(0, 0), "no level loaded")

	f := newFixture(t, 0)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {1 << 20, 3}, {3, 1 << 20}, {-1 << 20, -1 << 20}} {
		assert.False(t, f.w.IsTileSolid(p.X, p.Y), "%v", p)
	}
	assert.True(t, f.w.IsTileSolid(14, 9), "NPC tile")
}

func TestQuerySurface(t *testing.T) {
	f := newFixture(t, 0)

	typ, err := f.w.InteractableTypeAt(image.Pt(14, 9))
	require.NoError(t, err)
	assert.Equal(t, levels.InteractableNPC, typ)
	assert.True(t, f.w.IsInteractableAt(image.Pt(14, 9)))
	assert.True(t, f.w.IsEntityAtGridPosition(image.Pt(14, 9)))
	assert.False(t, f.w.IsEntityAtGridPosition(image.Pt(1, 1)))

	_, err = f.w.InteractableTypeAt(image.Pt(1, 1))
	assert.ErrorIs(t, err, ErrNoInteractable)

	door, ok := f.w.DoorAt(image.Pt(10, 6))
	require.True(t, ok)
	assert.Equal(t, 1, door.BuildingID)

	spawn, ok := f.w.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, image.Pt(160, 288), spawn)

	require.NoError(t, f.w.LoadLevel(2))
	typ, err = f.w.InteractableTypeAt(image.Pt(4, 3))
	require.NoError(t, err)
	assert.Equal(t, levels.InteractableStation, typ)
	st, ok := f.w.StationAt(image.Pt(4, 3))
	require.True(t, ok)
	assert.Equal(t, "workbench", st.Tag)
}

func TestInteractionRecordRoundTrip(t *testing.T) {
	f := newFixture(t, 0)
	f.w.MarkInteracted(image.Pt(7, 11))
	f.w.MarkInteracted(image.Pt(14, 9))
	require.NoError(t, f.w.LoadLevel(1))
	assert.False(t, f.w.HasInteracted(image.Pt(7, 11)), "records are per level")
	f.w.MarkInteracted(image.Pt(3, 2))

	rec := f.w.InteractionRecord()
	assert.Equal(t, []image.Point{{14, 9}, {7, 11}}, rec[0])

	g := newFixture(t, 0)
	g.w.RestoreInteractions(rec)
	assert.True(t, g.w.HasInteracted(image.Pt(7, 11)))
	require.NoError(t, g.w.LoadLevel(1))
	assert.True(t, g.w.HasInteracted(image.Pt(3, 2)))
}
