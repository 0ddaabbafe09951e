package entity

import (
	"fmt"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/levels"
	"github.com/milk9111/lumin/prefabs"
)

// NewNPC places a level NPC. Its head is drawn again as a raised sprite so
// it covers the player walking behind.
func NewNPC(w *ecs.World, levelID int, npc levels.NPC, spec *prefabs.NPCSpec) (ecs.Entity, error) {
	entity := w.CreateEntity()

	if err := ecs.Add(w, entity, component.NPCComponent, component.NPC{LevelID: levelID, Data: npc}); err != nil {
		return 0, fmt.Errorf("npc %s: add npc: %w", npc.ID, err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{X: float64(npc.X), Y: float64(npc.Y), ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("npc %s: add transform: %w", npc.ID, err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent, spriteFrom(spec.Sprite, npc.Texture)); err != nil {
		return 0, fmt.Errorf("npc %s: add sprite: %w", npc.ID, err)
	}

	if !spec.Raised.Source.Empty() {
		raised := component.RaisedSprite{
			TextureID: textureFile(npc.Texture),
			Source:    spec.Raised.Source.Rect(),
			ZIndex:    spec.Raised.Z,
		}
		if err := ecs.Add(w, entity, component.RaisedSpriteComponent, raised); err != nil {
			return 0, fmt.Errorf("npc %s: add raised sprite: %w", npc.ID, err)
		}
	}

	return entity, nil
}

func NewStation(w *ecs.World, levelID int, st levels.Station, spec *prefabs.StationSpec) (ecs.Entity, error) {
	entity := w.CreateEntity()

	if err := ecs.Add(w, entity, component.StationComponent, component.Station{LevelID: levelID, Data: st}); err != nil {
		return 0, fmt.Errorf("station %s: add station: %w", st.ID, err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{X: float64(st.X), Y: float64(st.Y), ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("station %s: add transform: %w", st.ID, err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent, spriteFrom(spec.Sprite, st.Texture)); err != nil {
		return 0, fmt.Errorf("station %s: add sprite: %w", st.ID, err)
	}

	return entity, nil
}
