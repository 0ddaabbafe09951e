package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/input"
)

// DefaultEnemyDelay is how long an enemy "thinks" before acting, in seconds.
const DefaultEnemyDelay = 0.6

// CombatSystem runs a turn-based battle between the player and the enemy
// combatants the world spawned for an encounter.
type CombatSystem struct {
	stage  CombatStage
	policy gameplay.Policy
	ui     *UIState
	logger *zap.Logger

	EnemyDelay float64
	// OnFinished runs after the scene has returned to the overworld.
	OnFinished func(gameplay.Outcome)

	battle   *gameplay.Battle
	entities map[*component.Combatant]ecs.Entity
	turn     *component.Combatant
	target   int
	wait     float64
	exiting  bool
}

func NewCombatSystem(stage CombatStage, policy gameplay.Policy, ui *UIState, logger *zap.Logger) *CombatSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == nil {
		policy = gameplay.AttackFirst{}
	}
	return &CombatSystem{stage: stage, policy: policy, ui: ui, logger: logger, EnemyDelay: DefaultEnemyDelay}
}

// Begin starts a battle with every combatant in w, player first.
func (s *CombatSystem) Begin(w *ecs.World) {
	var fighters []*component.Combatant
	s.entities = make(map[*component.Combatant]ecs.Entity)
	ecs.ForEach(w, component.CombatantComponent, func(e ecs.Entity, c *component.Combatant) {
		if c.IsPlayer {
			fighters = append([]*component.Combatant{c}, fighters...)
		} else {
			fighters = append(fighters, c)
		}
		s.entities[c] = e
	})

	s.battle = gameplay.NewBattle(fighters...)
	s.turn = nil
	s.target = 0
	s.wait = 0
	s.exiting = false
	s.ui.Combat = true
	s.logger.Info("battle started", zap.Int("fighters", len(fighters)))
}

// Active reports whether a battle is running or winding down.
func (s *CombatSystem) Active() bool {
	return s.battle != nil
}

func (s *CombatSystem) Battle() *gameplay.Battle {
	return s.battle
}

// Turn is the combatant whose turn it is, or nil between turns.
func (s *CombatSystem) Turn() *component.Combatant {
	return s.turn
}

// Target is the opponent index the player has selected.
func (s *CombatSystem) Target() int {
	return s.target
}

func (s *CombatSystem) Update(w *ecs.World, dt float64) {
	if s.battle == nil || s.exiting || s.stage.IsTransitioning() {
		return
	}
	if s.battle.IsOver() {
		s.finish(w)
		return
	}
	if s.turn == nil {
		s.turn = s.battle.Next()
		s.wait = s.EnemyDelay
		if s.turn == nil {
			return
		}
	}

	if s.turn.IsPlayer {
		s.playerTurn(w)
		return
	}
	s.wait -= dt
	if s.wait > 0 {
		return
	}
	s.perform(w, s.turn, s.policy.Choose(s.turn, s.battle))
}

func (s *CombatSystem) playerTurn(w *ecs.World) {
	triggered := playerTriggered(w)
	n := len(s.battle.Opponents(s.turn))
	if n == 0 {
		return
	}
	s.target = min(s.target, n-1)

	switch {
	case triggered.Has(input.MenuUp), triggered.Has(input.MenuLeft):
		s.target = (s.target - 1 + n) % n
	case triggered.Has(input.MenuDown), triggered.Has(input.MenuRight):
		s.target = (s.target + 1) % n
	case triggered.Has(input.Interact):
		s.perform(w, s.turn, gameplay.Action{Kind: gameplay.ActionAttack, Target: s.target})
	case triggered.Has(input.Back):
		s.perform(w, s.turn, gameplay.Action{Kind: gameplay.ActionDefend})
	}
}

func (s *CombatSystem) perform(w *ecs.World, actor *component.Combatant, a gameplay.Action) {
	target, dmg := s.battle.Perform(actor, a)
	s.turn = nil
	if target == nil {
		return
	}
	s.logger.Debug("attack",
		zap.String("attacker", actor.Name),
		zap.String("target", target.Name),
		zap.Int("damage", dmg),
	)
	if target.Health > 0 || target.IsPlayer {
		return
	}
	if sprite, ok := ecs.Get(w, s.entities[target], component.SpriteComponent); ok {
		sprite.Hidden = true
	}
}

func (s *CombatSystem) finish(w *ecs.World) {
	outcome := s.battle.Outcome()
	s.exiting = true
	err := s.stage.ExitCombat(func() {
		if outcome == gameplay.OutcomeDefeat {
			ecs.ForEach(w, component.CombatantComponent, func(_ ecs.Entity, c *component.Combatant) {
				if c.IsPlayer {
					c.Health = c.MaxHealth
				}
			})
		}
		s.battle = nil
		s.entities = nil
		s.turn = nil
		s.exiting = false
		s.ui.Combat = false
		s.logger.Info("battle over", zap.Stringer("outcome", outcome))
		if s.OnFinished != nil {
			s.OnFinished(outcome)
		}
	})
	if err != nil {
		s.exiting = false
		s.logger.Warn("leave combat", zap.Error(err))
	}
}
