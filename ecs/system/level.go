package system

import (
	"image"

	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/levels"
)

// Terrain is what movement needs from the current level.
type Terrain interface {
	TileSize() int
	IsTransitioning() bool
	InBounds(p image.Point) bool
	IsTileSolid(x, y int) bool
	IsEntityAtGridPosition(p image.Point) bool
	DoorAt(p image.Point) (levels.Anchor, bool)
	SwitchLevel(target int, exitHint component.Direction, moveToExit bool) error
}

// Interactables is what the interact key needs from the current level.
type Interactables interface {
	TileSize() int
	IsTransitioning() bool
	IsInteractableAt(p image.Point) bool
	InteractableTypeAt(p image.Point) (levels.InteractableType, error)
	NPCAt(p image.Point) (levels.NPC, bool)
	StationAt(p image.Point) (levels.Station, bool)
	HasInteracted(p image.Point) bool
	MarkInteracted(p image.Point)
}

// LevelView is what the tilemap renderer draws from.
type LevelView interface {
	TileSize() int
	CurrentLevel() (*levels.Level, bool)
	TilemapVisible() bool
	IsTileSolid(x, y int) bool
}

// CombatStage runs the scene change out of a battle.
type CombatStage interface {
	IsTransitioning() bool
	ExitCombat(onDone func()) error
}

// gridPos is the tile under a transform.
func gridPos(t *component.Transform, tileSize int) image.Point {
	return levels.TileOf(int(t.X), int(t.Y), tileSize)
}
