package system

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/input"
)

// CraftingSystem drives the crafting menu: menu keys pick a recipe,
// interact crafts it and back closes the menu.
type CraftingSystem struct {
	ui      *UIState
	crafter *gameplay.Crafter
	catalog *gameplay.Catalog
	logger  *zap.Logger
}

func NewCraftingSystem(ui *UIState, crafter *gameplay.Crafter, catalog *gameplay.Catalog, logger *zap.Logger) *CraftingSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CraftingSystem{ui: ui, crafter: crafter, catalog: catalog, logger: logger}
}

func (s *CraftingSystem) Update(w *ecs.World, _ float64) {
	menu := &s.ui.Crafting
	if !menu.open {
		return
	}
	if menu.fresh {
		menu.fresh = false
		return
	}

	player, ok := w.First(component.PlayerComponent)
	if !ok {
		menu.Close()
		return
	}
	in, ok := ecs.Get(w, player, component.InputStateComponent)
	if !ok {
		return
	}

	switch {
	case in.Triggered.Has(input.Back):
		menu.Close()
	case in.Triggered.Has(input.MenuUp):
		menu.move(-1)
	case in.Triggered.Has(input.MenuDown):
		menu.move(1)
	case in.Triggered.Has(input.Interact):
		inv, ok := ecs.Get(w, player, component.InventoryComponent)
		if !ok || len(menu.recipes) == 0 {
			return
		}
		menu.message = s.craft(menu.recipes[menu.selected], inv)
	}
}

func (s *CraftingSystem) craft(r gameplay.Recipe, inv *component.Inventory) string {
	name := s.catalog.DisplayName(r.Result.ID, r.Result.IsEssence)
	err := s.crafter.Craft(r.ID, inv)
	switch {
	case err == nil:
		return fmt.Sprintf("Crafted %dx %s", r.Result.Count, name)
	case errors.Is(err, gameplay.ErrMissingIngredients):
		return "Missing ingredients"
	case errors.Is(err, gameplay.ErrInventoryFull):
		return "Your inventory is full"
	default:
		s.logger.Warn("craft failed", zap.String("recipe", r.ID), zap.Error(err))
		return "Cannot craft " + name
	}
}
