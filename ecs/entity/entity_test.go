package entity

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/levels"
	"github.com/milk9111/lumin/prefabs"
)

func TestNewPlayerAtFromPrefab(t *testing.T) {
	prefabs.Dir = t.TempDir()
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	catalog, err := gameplay.LoadEmbeddedCatalog(context.Background())
	require.NoError(t, err)

	idle := image.Rect(32, 0, 64, 48)
	clips := map[string]*component.AnimationClip{
		spec.Idle: {Name: spec.Idle, Frames: []image.Rectangle{idle}, FrameDuration: 0.1, Loop: true},
	}

	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, spec, clips, catalog, 160, 288)
	require.NoError(t, err)

	tr := ecs.MustGet(w, e, component.TransformComponent)
	assert.Equal(t, 160.0, tr.X)
	m := ecs.MustGet(w, e, component.SmoothMovementComponent)
	assert.Equal(t, 160.0, m.TargetX)
	assert.False(t, m.Moving)

	sprite := ecs.MustGet(w, e, component.SpriteComponent)
	assert.Equal(t, "player.png", sprite.TextureID)
	assert.True(t, sprite.Shifted)

	anim := ecs.MustGet(w, e, component.AnimationComponent)
	assert.Nil(t, anim.State, "player starts standing still")
	assert.Equal(t, idle, anim.Frozen)

	c := ecs.MustGet(w, e, component.CombatantComponent)
	assert.True(t, c.IsPlayer)
	assert.Equal(t, c.MaxHealth, c.Health)

	inv := ecs.MustGet(w, e, component.InventoryComponent)
	assert.Equal(t, 3, gameplay.ItemCount(inv, "iron_scrap"))
	assert.ElementsMatch(t, spec.Recipes, ecs.MustGet(w, e, component.CraftingKnowledgeComponent).Recipes)
}

func TestNewNPCAddsRaisedLayer(t *testing.T) {
	prefabs.Dir = t.TempDir()
	spec, err := prefabs.LoadNPCSpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	e, err := NewNPC(w, 0, levels.NPC{ID: "elder", X: 448, Y: 288, Texture: "elder"}, spec)
	require.NoError(t, err)

	sprite := ecs.MustGet(w, e, component.SpriteComponent)
	assert.Equal(t, "elder.png", sprite.TextureID)
	raised := ecs.MustGet(w, e, component.RaisedSpriteComponent)
	assert.Equal(t, "elder.png", raised.TextureID)
	assert.Greater(t, raised.ZIndex, sprite.ZIndex)
	assert.Equal(t, 0, ecs.MustGet(w, e, component.NPCComponent).LevelID)
}

func TestNewEnemyAt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewEnemyAt(w, gameplay.Enemy{Name: "Wisp", Health: 18, TextureID: "enemies/wisp"}, 400, 120)
	require.NoError(t, err)

	assert.Equal(t, "enemies/wisp.png", ecs.MustGet(w, e, component.SpriteComponent).TextureID)
	c := ecs.MustGet(w, e, component.CombatantComponent)
	assert.False(t, c.IsPlayer)
	assert.Equal(t, 18, c.MaxHealth)
}

func TestTextureFile(t *testing.T) {
	assert.Equal(t, "a.png", textureFile("a"))
	assert.Equal(t, "a.jpg", textureFile("a.jpg"))
	assert.Equal(t, "", textureFile(""))
}
