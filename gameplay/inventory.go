package gameplay

import (
	"errors"
	"maps"

	"github.com/milk9111/lumin/ecs/component"
)

const DefaultInventoryCapacity = 30

var ErrInventoryFull = errors.New("gameplay: inventory full")

func NewInventory() component.Inventory {
	return component.Inventory{Capacity: DefaultInventoryCapacity}
}

// UsedSlots counts item stacks. Essences do not take slots.
func UsedSlots(inv *component.Inventory) int {
	return len(inv.Items)
}

func IsFull(inv *component.Inventory) bool {
	return UsedSlots(inv) >= inv.Capacity
}

// CanAddItem reports whether count of id with the given flags and stats would
// fit without dropping anything.
func CanAddItem(inv *component.Inventory, id string, flags component.ItemFlags, stats map[string]float64) bool {
	if findStack(inv, id, flags, stats) >= 0 {
		return true
	}
	return !IsFull(inv)
}

// AddItem merges into a matching stack (same id, flags and no per-stack
// stats) or opens a new slot.
func AddItem(inv *component.Inventory, id string, flags component.ItemFlags, stats map[string]float64, count int) error {
	if count <= 0 {
		return nil
	}
	if i := findStack(inv, id, flags, stats); i >= 0 {
		inv.Items[i].Count += count
		return nil
	}
	if IsFull(inv) {
		return ErrInventoryFull
	}
	inv.Items = append(inv.Items, component.ItemStack{
		ItemID: id,
		Count:  count,
		Flags:  flags,
		Stats:  maps.Clone(stats),
	})
	return nil
}

func findStack(inv *component.Inventory, id string, flags component.ItemFlags, stats map[string]float64) int {
	if len(stats) > 0 {
		return -1
	}
	for i, s := range inv.Items {
		if s.ItemID == id && s.Flags == flags && len(s.Stats) == 0 {
			return i
		}
	}
	return -1
}

func ItemCount(inv *component.Inventory, id string) int {
	n := 0
	for _, s := range inv.Items {
		if s.ItemID == id {
			n += s.Count
		}
	}
	return n
}

func HasItem(inv *component.Inventory, id string, count int) bool {
	return ItemCount(inv, id) >= count
}

// RemoveItem takes count of id across stacks, oldest first. Nothing is
// removed when fewer than count are held.
func RemoveItem(inv *component.Inventory, id string, count int) bool {
	if count <= 0 || !HasItem(inv, id, count) {
		return false
	}
	kept := inv.Items[:0]
	for _, s := range inv.Items {
		if s.ItemID == id && count > 0 {
			take := min(s.Count, count)
			s.Count -= take
			count -= take
		}
		if s.Count > 0 {
			kept = append(kept, s)
		}
	}
	inv.Items = kept
	return true
}

func AddEssence(inv *component.Inventory, id string, multipliers map[string]float64, count int) {
	if count <= 0 {
		return
	}
	for i, s := range inv.Essences {
		if s.EssenceID == id && maps.Equal(s.Multipliers, multipliers) {
			inv.Essences[i].Count += count
			return
		}
	}
	inv.Essences = append(inv.Essences, component.EssenceStack{
		EssenceID:   id,
		Count:       count,
		Multipliers: maps.Clone(multipliers),
	})
}

func EssenceCount(inv *component.Inventory, id string) int {
	n := 0
	for _, s := range inv.Essences {
		if s.EssenceID == id {
			n += s.Count
		}
	}
	return n
}

func HasEssence(inv *component.Inventory, id string, count int) bool {
	return EssenceCount(inv, id) >= count
}

func RemoveEssence(inv *component.Inventory, id string, count int) bool {
	if count <= 0 || !HasEssence(inv, id, count) {
		return false
	}
	kept := inv.Essences[:0]
	for _, s := range inv.Essences {
		if s.EssenceID == id && count > 0 {
			take := min(s.Count, count)
			s.Count -= take
			count -= take
		}
		if s.Count > 0 {
			kept = append(kept, s)
		}
	}
	inv.Essences = kept
	return true
}

func Expand(inv *component.Inventory, amount int) bool {
	if amount <= 0 {
		return false
	}
	inv.Capacity += amount
	return true
}

// Shrink never drops capacity below the number of occupied slots.
func Shrink(inv *component.Inventory, amount int) bool {
	if amount <= 0 || inv.Capacity-amount < UsedSlots(inv) {
		return false
	}
	inv.Capacity -= amount
	return true
}
