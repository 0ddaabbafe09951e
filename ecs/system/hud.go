package system

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/render"
)

// HUDZ keeps overlays above the world and below the fade.
const HUDZ = 1000

const (
	hudMargin   = 10
	hudPadding  = 8
	hudFontSize = 14
)

var (
	panelColor  = color.RGBA{R: 20, G: 20, B: 32, A: 230}
	borderColor = color.RGBA{R: 200, G: 200, B: 220, A: 255}
	textColor   = color.White
)

// HUDRenderer draws the dialogue box, crafting menu, inventory and battle panel.
type HUDRenderer struct {
	ui      *UIState
	combat  *CombatSystem
	catalog *gameplay.Catalog
	fonts   Fonts
	fontID  string
	logger  *zap.Logger
	warned  bool
}

func NewHUDRenderer(ui *UIState, combat *CombatSystem, catalog *gameplay.Catalog, fonts Fonts, fontID string, logger *zap.Logger) *HUDRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HUDRenderer{ui: ui, combat: combat, catalog: catalog, fonts: fonts, fontID: fontID, logger: logger}
}

func (h *HUDRenderer) Draw(w *ecs.World, q *render.Queue) {
	face, err := h.fonts.Font(h.fontID, hudFontSize)
	if err != nil {
		if !h.warned {
			h.warned = true
			h.logger.Warn("hud font unavailable", zap.String("font", h.fontID), zap.Error(err))
		}
	}
	view := q.Viewport()

	if h.combat != nil && h.combat.Active() {
		h.panel(q, image.Rect(view.Min.X+hudMargin, view.Max.Y-110, view.Max.X-hudMargin, view.Max.Y-hudMargin), h.battleText(), face)
	}
	if h.ui.Crafting.IsOpen() {
		h.panel(q, image.Rect(view.Max.X-240, view.Min.Y+hudMargin, view.Max.X-hudMargin, view.Min.Y+200), h.craftingText(), face)
	}
	if h.ui.Inventory {
		if player, ok := w.First(component.PlayerComponent); ok {
			if inv, ok := ecs.Get(w, player, component.InventoryComponent); ok {
				h.panel(q, image.Rect(view.Min.X+hudMargin, view.Min.Y+hudMargin, view.Min.X+240, view.Max.Y-hudMargin), h.inventoryText(inv), face)
			}
		}
	}
	if h.ui.Dialogue.Active() {
		h.panel(q, image.Rect(view.Min.X+hudMargin, view.Max.Y-90, view.Max.X-hudMargin, view.Max.Y-hudMargin), h.ui.Dialogue.Text(), face)
	}
}

func (h *HUDRenderer) panel(q *render.Queue, r image.Rectangle, body string, face text.Face) {
	q.Enqueue(render.DrawRectangle(r, panelColor, true, HUDZ))
	q.Enqueue(render.DrawRectangle(r, borderColor, false, HUDZ+1))
	q.Enqueue(render.DrawText(body, face, textColor, r.Inset(hudPadding), HUDZ+2))
}

func (h *HUDRenderer) craftingText() string {
	m := &h.ui.Crafting
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", strings.ToUpper(m.Station()))
	if len(m.Recipes()) == 0 {
		sb.WriteString("You don't know any recipes here.\n")
	}
	for i, r := range m.Recipes() {
		cursor := "  "
		if i == m.Selected() {
			cursor = "> "
		}
		fmt.Fprintf(&sb, "%s%s x%d\n", cursor, h.catalog.DisplayName(r.Result.ID, r.Result.IsEssence), r.Result.Count)
	}
	if msg := m.Message(); msg != "" {
		sb.WriteString("\n" + msg)
	}
	return sb.String()
}

func (h *HUDRenderer) inventoryText(inv *component.Inventory) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INVENTORY %d/%d\n", gameplay.UsedSlots(inv), inv.Capacity)
	if len(inv.Items) == 0 && len(inv.Essences) == 0 {
		sb.WriteString("Empty.\n")
	}
	for _, it := range inv.Items {
		fmt.Fprintf(&sb, "%s x%d\n", h.catalog.DisplayName(it.ItemID, false), it.Count)
	}
	if len(inv.Essences) > 0 {
		sb.WriteString("\nESSENCES\n")
	}
	for _, e := range inv.Essences {
		fmt.Fprintf(&sb, "%s x%d\n", h.catalog.DisplayName(e.EssenceID, true), e.Count)
	}
	return sb.String()
}

func (h *HUDRenderer) battleText() string {
	b := h.combat.Battle()
	turn := h.combat.Turn()
	var sb strings.Builder

	var enemies []*component.Combatant
	for _, f := range b.Fighters() {
		if f.IsPlayer {
			fmt.Fprintf(&sb, "%s  HP %d/%d\n", f.Name, f.Health, f.MaxHealth)
		} else {
			enemies = append(enemies, f)
		}
	}
	for i, f := range enemies {
		cursor := "  "
		if turn != nil && turn.IsPlayer && i == h.combat.Target() {
			cursor = "> "
		}
		fmt.Fprintf(&sb, "%s%s  HP %d/%d\n", cursor, f.Name, f.Health, f.MaxHealth)
	}
	if log := b.Log(); len(log) > 0 {
		sb.WriteString(log[len(log)-1])
	}
	return sb.String()
}
