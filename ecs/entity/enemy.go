package entity

import (
	"fmt"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
)

// EnemyZ draws battle enemies above the backdrop.
const EnemyZ = 20

// NewEnemyAt spawns an encounter enemy at screen position (x, y); the camera
// is locked at the origin during combat.
func NewEnemyAt(w *ecs.World, enemy gameplay.Enemy, x, y float64) (ecs.Entity, error) {
	entity := w.CreateEntity()

	if err := ecs.Add(w, entity, component.CombatantComponent, enemy.Combatant()); err != nil {
		return 0, fmt.Errorf("enemy %s: add combatant: %w", enemy.Name, err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("enemy %s: add transform: %w", enemy.Name, err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent, component.Sprite{
		TextureID: textureFile(enemy.TextureID),
		ZIndex:    EnemyZ,
	}); err != nil {
		return 0, fmt.Errorf("enemy %s: add sprite: %w", enemy.Name, err)
	}

	return entity, nil
}
