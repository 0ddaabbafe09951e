package world

import (
	"image"
	"path"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/ecs/entity"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/render"
)

// BackdropName is the named render command that holds the battle backdrop.
const (
	BackdropName = "combat_backdrop"
	BackdropZ    = -1
)

const enemySpacing = 56

// EnterCombat fades the overworld out and stages the encounter: the map
// and its sprites are hidden, the backdrop is shown and the enemies are
// spawned. onReady runs once the scene has faded back in.
func (w *World) EnterCombat(encounterID string, onReady func()) error {
	enc, err := w.catalog.Encounter(encounterID)
	if err != nil {
		return err
	}
	return w.begin(&transition{kind: KindCombatEnter, encounter: enc, onDone: onReady}, PhaseFreeze)
}

// ExitCombat undoes EnterCombat. onDone runs after the fade in.
func (w *World) ExitCombat(onDone func()) error {
	return w.begin(&transition{kind: KindCombatExit, onDone: onDone}, PhaseFadeOut)
}

func (w *World) stageCombat(enc gameplay.Encounter) {
	w.tilemapVisible = false
	w.hideOverworld()

	vw, vh := w.camera.Viewport()
	if w.textures != nil && enc.Backdrop != "" {
		tex, err := w.textures.Drawable(backdropFile(enc.Backdrop))
		if err != nil {
			w.logger.Warn("combat backdrop", zap.String("encounter", enc.ID), zap.Error(err))
		} else {
			w.queue.SetNamed(BackdropName, render.DrawTexture(tex, image.Rect(0, 0, vw, vh), BackdropZ))
		}
	}

	for i, e := range enc.Enemies {
		x := float64(vw*2/3 + (i%2)*enemySpacing)
		y := float64(vh/5 + i*enemySpacing)
		if _, err := entity.NewEnemyAt(w.entities, e, x, y); err != nil {
			w.logger.Warn("spawn enemy", zap.String("encounter", enc.ID), zap.String("enemy", e.Name), zap.Error(err))
		}
	}

	w.logger.Info("combat staged", zap.String("encounter", enc.ID), zap.Int("enemies", len(enc.Enemies)))
	w.push(ecs.EventCombatStarted, enc.Music)
}

func (w *World) unstageCombat() {
	w.queue.RemoveNamed(BackdropName)

	var enemies []ecs.Entity
	ecs.ForEach(w.entities, component.CombatantComponent, func(e ecs.Entity, c *component.Combatant) {
		if !c.IsPlayer {
			enemies = append(enemies, e)
		}
	})
	for _, e := range enemies {
		w.entities.DestroyEntity(e)
	}

	w.showOverworld()
	w.tilemapVisible = true
	w.camera.Unlock()

	music := ""
	if lvl, ok := w.CurrentLevel(); ok {
		music = lvl.Music
	}
	w.push(ecs.EventCombatEnded, music)
}

func (w *World) hideOverworld() {
	w.hidden = w.hidden[:0]
	ecs.ForEach(w.entities, component.SpriteComponent, func(e ecs.Entity, s *component.Sprite) {
		if s.Hidden {
			return
		}
		s.Hidden = true
		w.hidden = append(w.hidden, e)
	})
}

func (w *World) showOverworld() {
	for _, e := range w.hidden {
		if s, ok := ecs.Get(w.entities, e, component.SpriteComponent); ok {
			s.Hidden = false
		}
	}
	w.hidden = w.hidden[:0]
}

func backdropFile(id string) string {
	if path.Ext(id) != "" {
		return id
	}
	return id + ".png"
}
