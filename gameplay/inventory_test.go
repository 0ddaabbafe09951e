package gameplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lumin/ecs/component"
)

func TestAddItemMergesPlainStacks(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, AddItem(&inv, "moonleaf", component.ItemStackable, nil, 2))
	require.NoError(t, AddItem(&inv, "moonleaf", component.ItemStackable, nil, 3))

	assert.Len(t, inv.Items, 1)
	assert.Equal(t, 5, ItemCount(&inv, "moonleaf"))
}

func TestAddItemWithStatsTakesOwnSlot(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, AddItem(&inv, "ember_blade", component.ItemUsable, nil, 1))
	require.NoError(t, AddItem(&inv, "ember_blade", component.ItemUsable, map[string]float64{"attack": 12}, 1))

	assert.Len(t, inv.Items, 2)
	assert.Equal(t, 2, ItemCount(&inv, "ember_blade"))
}

func TestInventoryCapacity(t *testing.T) {
	inv := component.Inventory{Capacity: 2}
	require.NoError(t, AddItem(&inv, "a", 0, nil, 1))
	require.NoError(t, AddItem(&inv, "b", 0, nil, 1))

	assert.ErrorIs(t, AddItem(&inv, "c", 0, nil, 1), ErrInventoryFull)
	assert.NoError(t, AddItem(&inv, "a", 0, nil, 4), "existing stacks still grow when full")

	assert.False(t, Shrink(&inv, 1), "cannot shrink below used slots")
	assert.True(t, Expand(&inv, 3))
	assert.True(t, Shrink(&inv, 3))
	assert.Equal(t, 2, inv.Capacity)
}

func TestRemoveItem(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, AddItem(&inv, "moonleaf", 0, nil, 2))
	require.NoError(t, AddItem(&inv, "moonleaf", 0, map[string]float64{"x": 1}, 2))

	assert.False(t, RemoveItem(&inv, "moonleaf", 5))
	assert.Equal(t, 4, ItemCount(&inv, "moonleaf"))

	assert.True(t, RemoveItem(&inv, "moonleaf", 3))
	assert.Equal(t, 1, ItemCount(&inv, "moonleaf"))
	assert.Len(t, inv.Items, 1)

	assert.False(t, RemoveItem(&inv, "moonleaf", 0))
	assert.False(t, RemoveItem(&inv, "missing", 1))
}

func TestEssences(t *testing.T) {
	inv := component.Inventory{Capacity: 0}
	AddEssence(&inv, "ember_essence", nil, 2)
	AddEssence(&inv, "ember_essence", nil, 1)
	AddEssence(&inv, "ember_essence", map[string]float64{"attack": 2}, 1)

	assert.Equal(t, 4, EssenceCount(&inv, "ember_essence"))
	assert.Len(t, inv.Essences, 2)
	assert.True(t, HasEssence(&inv, "ember_essence", 4))

	assert.True(t, RemoveEssence(&inv, "ember_essence", 3))
	assert.Equal(t, 1, EssenceCount(&inv, "ember_essence"))
	assert.False(t, RemoveEssence(&inv, "ember_essence", 2))
}
