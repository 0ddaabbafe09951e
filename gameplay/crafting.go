package gameplay

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs/component"
)

var ErrMissingIngredients = errors.New("gameplay: missing ingredients")

type Recipe struct {
	ID               string         `json:"recipeId"`
	Result           RecipeResult   `json:"result"`
	RequiredItems    map[string]int `json:"requiredItems"`
	RequiredEssences map[string]int `json:"requiredSpiritEssences"`
	StationTag       string         `json:"craftingStationTag"`
}

type RecipeResult struct {
	ID        string `json:"itemId"`
	Count     int    `json:"count"`
	IsEssence bool   `json:"isSpiritEssence"`
}

type Crafter struct {
	catalog *Catalog
	logger  *zap.Logger
}

func NewCrafter(catalog *Catalog, logger *zap.Logger) *Crafter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crafter{catalog: catalog, logger: logger}
}

func (c *Crafter) CanCraft(recipeID string, inv *component.Inventory) bool {
	r, ok := c.catalog.Recipe(recipeID)
	if !ok {
		return false
	}
	return hasIngredients(r, inv)
}

func hasIngredients(r Recipe, inv *component.Inventory) bool {
	for id, n := range r.RequiredItems {
		if !HasItem(inv, id, n) {
			return false
		}
	}
	for id, n := range r.RequiredEssences {
		if !HasEssence(inv, id, n) {
			return false
		}
	}
	return true
}

// Craft consumes the recipe inputs and adds the result. Item results are
// flagged Crafted and get the ingredient quantities folded into their stats.
// The inventory is untouched when any check fails.
func (c *Crafter) Craft(recipeID string, inv *component.Inventory) error {
	r, ok := c.catalog.Recipe(recipeID)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownRecipe, recipeID)
	}
	if !hasIngredients(r, inv) {
		return fmt.Errorf("%w for %s", ErrMissingIngredients, recipeID)
	}

	if r.Result.IsEssence {
		e, err := c.catalog.Essence(r.Result.ID)
		if err != nil {
			return err
		}
		mult := foldQuantities(e.Multipliers, r.RequiredEssences)
		consume(r, inv)
		AddEssence(inv, e.ID, mult, r.Result.Count)
	} else {
		it, err := c.catalog.Item(r.Result.ID)
		if err != nil {
			return err
		}
		flags := it.Flags | component.ItemCrafted
		stats := foldQuantities(it.Stats, r.RequiredItems)
		stats = foldQuantities(stats, r.RequiredEssences)
		if !CanAddItem(inv, it.ID, flags, stats) {
			return ErrInventoryFull
		}
		consume(r, inv)
		if err := AddItem(inv, it.ID, flags, stats, r.Result.Count); err != nil {
			return err
		}
	}

	c.logger.Debug("crafted",
		zap.String("recipe", r.ID),
		zap.String("result", r.Result.ID),
		zap.Int("count", r.Result.Count),
	)
	return nil
}

func consume(r Recipe, inv *component.Inventory) {
	for id, n := range r.RequiredItems {
		RemoveItem(inv, id, n)
	}
	for id, n := range r.RequiredEssences {
		RemoveEssence(inv, id, n)
	}
}

// foldQuantities multiplies each stat by the matching ingredient quantity,
// adding the quantity as a new stat when absent.
func foldQuantities(base map[string]float64, quantities map[string]int) map[string]float64 {
	if len(quantities) == 0 {
		return maps.Clone(base)
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]float64, len(quantities))
	}
	for k, n := range quantities {
		if v, ok := out[k]; ok {
			out[k] = v * float64(n)
		} else {
			out[k] = float64(n)
		}
	}
	return out
}

// KnownRecipesForStation lists learned recipes usable at a station, in the
// order they were learned.
func (c *Crafter) KnownRecipesForStation(stationTag string, knowledge *component.CraftingKnowledge) []Recipe {
	if knowledge == nil {
		return nil
	}
	var out []Recipe
	for _, id := range knowledge.Recipes {
		r, ok := c.catalog.Recipe(id)
		if ok && r.StationTag == stationTag {
			out = append(out, r)
		}
	}
	return out
}

// Learn adds recipeID to knowledge once.
func Learn(knowledge *component.CraftingKnowledge, recipeID string) {
	if !slices.Contains(knowledge.Recipes, recipeID) {
		knowledge.Recipes = append(knowledge.Recipes, recipeID)
	}
}
