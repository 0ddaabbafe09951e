package gameplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lumin/ecs/component"
)

func TestCraftItem(t *testing.T) {
	c := NewCrafter(loadTestCatalog(t), nil)
	inv := NewInventory()
	require.NoError(t, AddItem(&inv, "moonleaf", component.ItemStackable, nil, 3))

	require.True(t, c.CanCraft("brew_tonic", &inv))
	require.NoError(t, c.Craft("brew_tonic", &inv))

	assert.Equal(t, 1, ItemCount(&inv, "moonleaf"))
	assert.Equal(t, 1, ItemCount(&inv, "tonic"))

	var tonic component.ItemStack
	for _, s := range inv.Items {
		if s.ItemID == "tonic" {
			tonic = s
		}
	}
	assert.True(t, tonic.Flags.Has(component.ItemCrafted))
	assert.True(t, tonic.Flags.Has(component.ItemConsumable))
	assert.Equal(t, 10.0, tonic.Stats["heal"])
	assert.Equal(t, 2.0, tonic.Stats["moonleaf"])

	assert.False(t, c.CanCraft("brew_tonic", &inv))
	assert.ErrorIs(t, c.Craft("brew_tonic", &inv), ErrMissingIngredients)
	assert.Equal(t, 1, ItemCount(&inv, "moonleaf"), "failed craft consumes nothing")
}

func TestCraftEssence(t *testing.T) {
	c := NewCrafter(loadTestCatalog(t), nil)
	inv := NewInventory()
	AddEssence(&inv, "ember_essence", nil, 1)
	AddEssence(&inv, "tide_essence", nil, 1)

	require.NoError(t, c.Craft("kindle_dawn", &inv))
	assert.Equal(t, 1, EssenceCount(&inv, "dawn_essence"))
	assert.Zero(t, EssenceCount(&inv, "ember_essence"))
	assert.Zero(t, EssenceCount(&inv, "tide_essence"))
}

func TestCraftIntoFullInventory(t *testing.T) {
	c := NewCrafter(loadTestCatalog(t), nil)
	inv := component.Inventory{Capacity: 1}
	require.NoError(t, AddItem(&inv, "moonleaf", component.ItemStackable, nil, 2))

	assert.ErrorIs(t, c.Craft("brew_tonic", &inv), ErrInventoryFull)
	assert.Equal(t, 2, ItemCount(&inv, "moonleaf"))
}

func TestCraftUnknownRecipe(t *testing.T) {
	c := NewCrafter(loadTestCatalog(t), nil)
	inv := NewInventory()
	assert.False(t, c.CanCraft("nope", &inv))
	assert.ErrorIs(t, c.Craft("nope", &inv), ErrUnknownRecipe)
}

func TestKnownRecipesForStation(t *testing.T) {
	c := NewCrafter(loadTestCatalog(t), nil)
	k := &component.CraftingKnowledge{}
	Learn(k, "kindle_dawn")
	Learn(k, "brew_tonic")
	Learn(k, "brew_tonic")
	Learn(k, "unknown_recipe")

	bench := c.KnownRecipesForStation("workbench", k)
	require.Len(t, bench, 1)
	assert.Equal(t, "brew_tonic", bench[0].ID)

	altar := c.KnownRecipesForStation("altar", k)
	require.Len(t, altar, 1)
	assert.Equal(t, "kindle_dawn", altar[0].ID)

	assert.Empty(t, c.KnownRecipesForStation("altar", nil))
}
