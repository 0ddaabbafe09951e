package system

import (
	"image"
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/input"
	"github.com/milk9111/lumin/levels"
)

// snapDistance is how close an interpolating entity must get before it is
// placed exactly on its target tile.
const snapDistance = 0.1

var walkClips = map[component.Direction]string{
	component.North: "WalkUp",
	component.South: "WalkDown",
	component.West:  "WalkLeft",
	component.East:  "WalkRight",
}

// WalkClip is the animation played while walking in d.
func WalkClip(d component.Direction) string {
	return walkClips[d]
}

// PlayerMovementSystem moves the player one tile per held direction and
// slides them there over several frames.
type PlayerMovementSystem struct {
	terrain Terrain
	ui      *UIState
	logger  *zap.Logger
}

func NewPlayerMovementSystem(terrain Terrain, ui *UIState, logger *zap.Logger) *PlayerMovementSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayerMovementSystem{terrain: terrain, ui: ui, logger: logger}
}

func (s *PlayerMovementSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach3(w, component.TransformComponent, component.InputStateComponent, component.SmoothMovementComponent, func(e ecs.Entity, t *component.Transform, in *component.InputState, m *component.SmoothMovement) {
		player, ok := ecs.Get(w, e, component.PlayerComponent)
		if !ok {
			return
		}
		anim, _ := ecs.Get(w, e, component.AnimationComponent)

		if !m.Moving && !s.blocked() {
			if dir, held := heldDirection(in.Held); held {
				player.Facing = dir
				if clip := WalkClip(dir); CurrentClip(anim) != clip {
					PlayAnimation(anim, clip)
				}
				s.step(t, m, dir)
			}
		}

		if in.Held.Empty() && !m.Moving {
			StopAnimation(anim)
		}

		if m.Moving {
			Interpolate(t, m, dt)
		}
	})
}

func (s *PlayerMovementSystem) blocked() bool {
	if s.terrain.IsTransitioning() {
		return true
	}
	return s.ui != nil && s.ui.Blocking()
}

func (s *PlayerMovementSystem) step(t *component.Transform, m *component.SmoothMovement, dir component.Direction) {
	dx, dy := dir.Vector()
	tx := t.X + float64(dx)*m.TileSize
	ty := t.Y + float64(dy)*m.TileSize
	tile := levels.TileOf(int(math.Floor(tx)), int(math.Floor(ty)), s.terrain.TileSize())
	if !s.terrain.InBounds(tile) {
		return
	}
	if s.terrain.IsTileSolid(tile.X, tile.Y) {
		s.collide(tile, dir)
		return
	}
	if s.terrain.IsEntityAtGridPosition(tile) {
		return
	}
	m.TargetX, m.TargetY = tx, ty
	m.Moving = true
}

func (s *PlayerMovementSystem) collide(tile image.Point, dir component.Direction) {
	door, ok := s.terrain.DoorAt(tile)
	if !ok {
		return
	}
	s.logger.Debug("entering door",
		zap.String("anchor", door.Identifier),
		zap.Int("building", door.BuildingID),
	)
	if err := s.terrain.SwitchLevel(door.BuildingID, dir, true); err != nil {
		s.logger.Warn("level switch refused", zap.Int("target", door.BuildingID), zap.Error(err))
	}
}

// Interpolate moves t toward m's target by speed*dt, snapping once within
// snapDistance.
func Interpolate(t *component.Transform, m *component.SmoothMovement, dt float64) {
	dx, dy := m.TargetX-t.X, m.TargetY-t.Y
	dist := math.Hypot(dx, dy)
	if dist > 0 {
		f := min(max(m.Speed*dt/dist, 0), 1)
		t.X += dx * f
		t.Y += dy * f
	}
	if math.Hypot(m.TargetX-t.X, m.TargetY-t.Y) < snapDistance {
		t.X, t.Y = m.TargetX, m.TargetY
		m.Moving = false
	}
}

// heldDirection picks the first held move action in Up, Down, Left, Right
// order.
func heldDirection(held input.ActionSet) (component.Direction, bool) {
	switch {
	case held.Has(input.MoveUp):
		return component.North, true
	case held.Has(input.MoveDown):
		return component.South, true
	case held.Has(input.MoveLeft):
		return component.West, true
	case held.Has(input.MoveRight):
		return component.East, true
	}
	return component.South, false
}
