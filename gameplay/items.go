package gameplay

import (
	"fmt"
	"maps"
	"strings"

	"github.com/milk9111/lumin/ecs/component"
)

type ItemType int

const (
	ItemMaterial ItemType = iota
	ItemWeapon
	ItemArmor
	ItemConsumable
	ItemKey
)

// Item is a catalog entry. Inventories hold ItemStacks that reference it by
// id; crafted stacks carry their own Stats.
type Item struct {
	ID          string
	Name        string
	Description string
	TextureID   string
	Type        ItemType
	Flags       component.ItemFlags
	Stats       map[string]float64
}

func (i Item) Clone() Item {
	out := i
	out.Stats = maps.Clone(i.Stats)
	return out
}

// Essence is a spirit essence catalog entry.
type Essence struct {
	ID          string
	Name        string
	Description string
	TextureID   string
	Spirit      component.SpiritType
	Tier        int
	Multipliers map[string]float64
}

func (e Essence) Clone() Essence {
	out := e
	out.Multipliers = maps.Clone(e.Multipliers)
	return out
}

var itemFlagNames = map[string]component.ItemFlags{
	"equipped":   component.ItemEquipped,
	"usable":     component.ItemUsable,
	"consumable": component.ItemConsumable,
	"stackable":  component.ItemStackable,
	"quest":      component.ItemQuest,
	"crafted":    component.ItemCrafted,
}

func ParseItemFlags(names []string) (component.ItemFlags, error) {
	flags := component.ItemNone
	for _, n := range names {
		f, ok := itemFlagNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return component.ItemNone, fmt.Errorf("gameplay: unknown item flag %q", n)
		}
		flags |= f
	}
	return flags, nil
}

func parseItemType(s string) (ItemType, error) {
	switch strings.ToLower(s) {
	case "", "material":
		return ItemMaterial, nil
	case "weapon":
		return ItemWeapon, nil
	case "armor":
		return ItemArmor, nil
	case "consumable":
		return ItemConsumable, nil
	case "key":
		return ItemKey, nil
	}
	return ItemMaterial, fmt.Errorf("gameplay: unknown item type %q", s)
}

func parseSpirit(s string) (component.SpiritType, error) {
	switch t := component.SpiritType(strings.ToLower(s)); t {
	case component.SpiritNone, component.SpiritFire, component.SpiritWater,
		component.SpiritEarth, component.SpiritLight, component.SpiritShadow:
		return t, nil
	}
	return component.SpiritNone, fmt.Errorf("gameplay: unknown spirit type %q", s)
}
