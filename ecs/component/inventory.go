package component

type ItemFlags uint32

const (
	ItemEquipped ItemFlags = 1 << iota
	ItemUsable
	ItemConsumable
	ItemStackable
	ItemQuest
	ItemCrafted
	ItemNone ItemFlags = 0
)

func (f ItemFlags) Has(flag ItemFlags) bool {
	return f&flag == flag
}

type ItemStack struct {
	ItemID string
	Count  int
	Flags  ItemFlags
	Stats  map[string]float64
}

type EssenceStack struct {
	EssenceID   string
	Count       int
	Multipliers map[string]float64
}

type Inventory struct {
	Capacity int
	Items    []ItemStack
	Essences []EssenceStack
}

// CraftingKnowledge lists the recipe ids an entity has learned.
type CraftingKnowledge struct {
	Recipes []string
}

var InventoryComponent = NewComponent[Inventory]()
var CraftingKnowledgeComponent = NewComponent[CraftingKnowledge]()
