package world

import (
	"fmt"
	"image"
	"maps"
	"slices"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/levels"
)

func (w *World) TileSize() int {
	return w.levels.TileSize
}

// CurrentLevel returns the loaded level's static data.
func (w *World) CurrentLevel() (*levels.Level, bool) {
	if !w.loaded {
		return nil, false
	}
	return w.levels.Level(w.current)
}

func (w *World) CurrentLevelID() int {
	return w.current
}

// TilemapVisible is false while a battle backdrop replaces the map.
func (w *World) TilemapVisible() bool {
	return w.tilemapVisible
}

func (w *World) InBounds(p image.Point) bool {
	if !w.loaded {
		return false
	}
	return w.grids[w.current].InBounds(p.X, p.Y)
}

// IsTileSolid never fails: tiles outside the map, or any tile before a
// level is loaded, are not solid.
func (w *World) IsTileSolid(x, y int) bool {
	if !w.loaded {
		return false
	}
	g, ok := w.grids[w.current]
	return ok && g.Solid(x, y)
}

// IsEntityAtGridPosition reports whether an NPC, station or enemy stands on
// tile p.
func (w *World) IsEntityAtGridPosition(p image.Point) bool {
	ts := w.TileSize()
	found := false
	check := func(e ecs.Entity) {
		if found {
			return
		}
		if t, ok := ecs.Get(w.entities, e, component.TransformComponent); ok {
			found = levels.TileOf(int(t.X), int(t.Y), ts) == p
		}
	}
	for _, e := range w.entities.Query(component.NPCComponent) {
		check(e)
	}
	for _, e := range w.entities.Query(component.StationComponent) {
		check(e)
	}
	ecs.ForEach(w.entities, component.CombatantComponent, func(e ecs.Entity, c *component.Combatant) {
		if !c.IsPlayer {
			check(e)
		}
	})
	return found
}

// DoorAt returns the building anchor on tile p.
func (w *World) DoorAt(p image.Point) (levels.Anchor, bool) {
	lvl, ok := w.CurrentLevel()
	if !ok {
		return levels.Anchor{}, false
	}
	for _, a := range lvl.Anchors {
		if a.Identifier == levels.AnchorBuildingInteract && levels.TileOf(a.X, a.Y, w.TileSize()) == p {
			return a, true
		}
	}
	return levels.Anchor{}, false
}

func (w *World) IsInteractableAt(p image.Point) bool {
	lvl, ok := w.CurrentLevel()
	return ok && slices.Contains(lvl.Interactables, p)
}

// InteractableTypeAt says what is on interactable tile p. Callers check
// IsInteractableAt first; a tile with nothing on it is ErrNoInteractable.
func (w *World) InteractableTypeAt(p image.Point) (levels.InteractableType, error) {
	if _, ok := w.NPCAt(p); ok {
		return levels.InteractableNPC, nil
	}
	if _, ok := w.StationAt(p); ok {
		return levels.InteractableStation, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrNoInteractable, p)
}

func (w *World) NPCAt(p image.Point) (levels.NPC, bool) {
	lvl, ok := w.CurrentLevel()
	if !ok {
		return levels.NPC{}, false
	}
	for _, n := range lvl.NPCs {
		if levels.TileOf(n.X, n.Y, w.TileSize()) == p {
			return n, true
		}
	}
	return levels.NPC{}, false
}

func (w *World) StationAt(p image.Point) (levels.Station, bool) {
	lvl, ok := w.CurrentLevel()
	if !ok {
		return levels.Station{}, false
	}
	for _, s := range lvl.Stations {
		if levels.TileOf(s.X, s.Y, w.TileSize()) == p {
			return s, true
		}
	}
	return levels.Station{}, false
}

// HasInteracted reports whether the interactable at p in the current level
// has been used.
func (w *World) HasInteracted(p image.Point) bool {
	return w.interacted[w.current][p]
}

func (w *World) MarkInteracted(p image.Point) {
	set := w.interacted[w.current]
	if set == nil {
		set = make(map[image.Point]bool)
		w.interacted[w.current] = set
	}
	set[p] = true
}

// InteractionRecord lists the used interactables per level for saving.
func (w *World) InteractionRecord() map[int][]image.Point {
	out := make(map[int][]image.Point, len(w.interacted))
	for id, set := range w.interacted {
		pts := slices.Collect(maps.Keys(set))
		slices.SortFunc(pts, func(a, b image.Point) int {
			if a.Y != b.Y {
				return a.Y - b.Y
			}
			return a.X - b.X
		})
		out[id] = pts
	}
	return out
}

// RestoreInteractions replaces the interaction record, e.g. from a save.
func (w *World) RestoreInteractions(record map[int][]image.Point) {
	w.interacted = make(map[int]map[image.Point]bool, len(record))
	for id, pts := range record {
		set := make(map[image.Point]bool, len(pts))
		for _, p := range pts {
			set[p] = true
		}
		w.interacted[id] = set
	}
}
