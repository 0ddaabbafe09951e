package system

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/input"
	"github.com/milk9111/lumin/levels"
)

// InteractionSystem handles the interact key against the tile the player
// faces: NPCs talk, hand out items or start a fight, stations open the
// crafting menu.
type InteractionSystem struct {
	level   Interactables
	ui      *UIState
	catalog *gameplay.Catalog
	crafter *gameplay.Crafter
	logger  *zap.Logger

	// OnCombat starts the encounter an NPC is bound to.
	OnCombat func(encounterID string)
}

func NewInteractionSystem(level Interactables, ui *UIState, catalog *gameplay.Catalog, crafter *gameplay.Crafter, logger *zap.Logger) *InteractionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionSystem{level: level, ui: ui, catalog: catalog, crafter: crafter, logger: logger}
}

func (s *InteractionSystem) Update(w *ecs.World, _ float64) {
	if s.ui.Blocking() || s.level.IsTransitioning() {
		return
	}
	ecs.ForEach3(w, component.PlayerComponent, component.TransformComponent, component.InputStateComponent, func(e ecs.Entity, p *component.Player, t *component.Transform, in *component.InputState) {
		if !in.Triggered.Has(input.Interact) {
			return
		}
		if m, ok := ecs.Get(w, e, component.SmoothMovementComponent); ok && m.Moving {
			return
		}
		dx, dy := p.Facing.Vector()
		tile := gridPos(t, s.level.TileSize()).Add(image.Pt(dx, dy))
		s.interact(w, e, tile)
	})
}

func (s *InteractionSystem) interact(w *ecs.World, player ecs.Entity, tile image.Point) {
	if !s.level.IsInteractableAt(tile) {
		return
	}
	typ, err := s.level.InteractableTypeAt(tile)
	if err != nil {
		s.logger.Debug("interactable without owner", zap.Stringer("tile", tile), zap.Error(err))
		return
	}

	switch typ {
	case levels.InteractableNPC:
		npc, ok := s.level.NPCAt(tile)
		if !ok || !npc.Interactive {
			return
		}
		s.talk(w, player, npc, tile)
	case levels.InteractableStation:
		st, ok := s.level.StationAt(tile)
		if !ok {
			return
		}
		knowledge, _ := ecs.Get(w, player, component.CraftingKnowledgeComponent)
		s.ui.Crafting.Open(st.Tag, s.crafter.KnownRecipesForStation(st.Tag, knowledge))
	}
}

func (s *InteractionSystem) talk(w *ecs.World, player ecs.Entity, npc levels.NPC, tile image.Point) {
	if npc.CombatID != "" {
		id := npc.CombatID
		s.ui.Dialogue.Start(gameplay.BuildDialogue(npc.Dialogue), func() {
			if s.OnCombat != nil {
				s.OnCombat(id)
			}
		})
		return
	}

	switch npc.Type {
	case levels.NPCItemGiver:
		if s.level.HasInteracted(tile) && !npc.Repeatable {
			s.ui.Dialogue.Start(gameplay.BuildDialogue(npc.ErrorDialogue), nil)
			return
		}
		line, err := s.give(w, player, npc)
		if err != nil {
			s.logger.Info("gift not given", zap.String("npc", npc.ID), zap.Error(err))
			if line != "" {
				s.ui.Dialogue.Start(gameplay.BuildDialogue([]string{line}), nil)
			}
			return
		}
		s.level.MarkInteracted(tile)
		s.ui.Dialogue.Start(gameplay.BuildDialogue(npc.Dialogue).WithLine(line), nil)
	default:
		s.ui.Dialogue.Start(gameplay.BuildDialogue(npc.Dialogue), nil)
	}
}

// give adds the NPC's gift to the player's inventory and returns the line
// announcing it.
func (s *InteractionSystem) give(w *ecs.World, player ecs.Entity, npc levels.NPC) (string, error) {
	inv, err := ecs.Require(w, player, component.InventoryComponent)
	if err != nil {
		return "", err
	}
	amount := max(npc.ItemAmount, 1)
	name := s.catalog.DisplayName(npc.ItemID, npc.IsSpiritEssence)

	if npc.IsSpiritEssence {
		var mult map[string]float64
		if e, err := s.catalog.Essence(npc.ItemID); err == nil {
			mult = e.Multipliers
		} else {
			s.logger.Warn("unknown essence gift", zap.String("npc", npc.ID), zap.Error(err))
		}
		gameplay.AddEssence(inv, npc.ItemID, mult, amount)
	} else {
		flags := component.ItemNone
		if it, err := s.catalog.Item(npc.ItemID); err == nil {
			flags = it.Flags
		} else {
			s.logger.Warn("unknown item gift", zap.String("npc", npc.ID), zap.Error(err))
		}
		if err := gameplay.AddItem(inv, npc.ItemID, flags, nil, amount); err != nil {
			if errors.Is(err, gameplay.ErrInventoryFull) {
				return "Your inventory is full.", err
			}
			return "", err
		}
	}
	return fmt.Sprintf("You received %dx %s.", amount, name), nil
}
