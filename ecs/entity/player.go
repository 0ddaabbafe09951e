package entity

import (
	"fmt"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/ecs/system"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/prefabs"
)

// NewPlayerAt builds the player from its prefab at pixel position (x, y).
// clips may be nil when the animation set failed to load; the player then
// keeps the prefab's static source rect.
func NewPlayerAt(w *ecs.World, spec *prefabs.PlayerSpec, clips map[string]*component.AnimationClip, catalog *gameplay.Catalog, x, y float64) (ecs.Entity, error) {
	entity := w.CreateEntity()

	if err := ecs.Add(w, entity, component.PlayerComponent, component.Player{Name: spec.Name, Facing: component.South}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputStateComponent, component.InputState{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.SmoothMovementComponent, component.SmoothMovement{
		TargetX:  x,
		TargetY:  y,
		Speed:    spec.Speed,
		TileSize: spec.TileSize,
	}); err != nil {
		return 0, fmt.Errorf("player: add movement: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent, spriteFrom(spec.Sprite, "")); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}

	anim := component.Animation{Clips: clips}
	if system.PlayAnimation(&anim, spec.Idle) {
		system.StopAnimation(&anim)
	}
	if err := ecs.Add(w, entity, component.AnimationComponent, anim); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	c := spec.Combatant
	if err := ecs.Add(w, entity, component.CombatantComponent, component.Combatant{
		Name:      spec.Name,
		Health:    c.Health,
		MaxHealth: c.Health,
		Attack:    c.Attack,
		Defense:   c.Defense,
		Speed:     c.Speed,
		Spirit:    component.SpiritType(c.Spirit),
		IsPlayer:  true,
	}); err != nil {
		return 0, fmt.Errorf("player: add combatant: %w", err)
	}

	inv, err := startingInventory(spec.Inventory, catalog)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, entity, component.InventoryComponent, inv); err != nil {
		return 0, fmt.Errorf("player: add inventory: %w", err)
	}

	var knowledge component.CraftingKnowledge
	for _, id := range spec.Recipes {
		gameplay.Learn(&knowledge, id)
	}
	if err := ecs.Add(w, entity, component.CraftingKnowledgeComponent, knowledge); err != nil {
		return 0, fmt.Errorf("player: add crafting knowledge: %w", err)
	}

	return entity, nil
}

func startingInventory(spec prefabs.InventorySpec, catalog *gameplay.Catalog) (component.Inventory, error) {
	inv := gameplay.NewInventory()
	if spec.Capacity > 0 {
		inv.Capacity = spec.Capacity
	}
	for _, s := range spec.Items {
		it, err := catalog.Item(s.ID)
		if err != nil {
			return inv, fmt.Errorf("starting item: %w", err)
		}
		if err := gameplay.AddItem(&inv, it.ID, it.Flags, it.Stats, max(s.Count, 1)); err != nil {
			return inv, fmt.Errorf("starting item %s: %w", s.ID, err)
		}
	}
	for _, s := range spec.Essences {
		e, err := catalog.Essence(s.ID)
		if err != nil {
			return inv, fmt.Errorf("starting essence: %w", err)
		}
		gameplay.AddEssence(&inv, e.ID, e.Multipliers, max(s.Count, 1))
	}
	return inv, nil
}
