package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/gameplay"
)

// Kind is the scene operation a transition performs.
type Kind int

const (
	KindNone Kind = iota
	KindLevelSwitch
	KindCombatEnter
	KindCombatExit
)

func (k Kind) String() string {
	switch k {
	case KindLevelSwitch:
		return "level_switch"
	case KindCombatEnter:
		return "combat_enter"
	case KindCombatExit:
		return "combat_exit"
	default:
		return "none"
	}
}

// Phase is a step of a transition. Not every kind uses every phase:
// only a level switch that walks through a door nudges, and leaving combat
// starts straight at FadeOut.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseNudge
	PhaseFreeze
	PhaseFadeOut
	PhaseSwap
	PhaseSettle
	PhaseFadeIn
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseNudge:
		return "nudge"
	case PhaseFreeze:
		return "freeze"
	case PhaseFadeOut:
		return "fade_out"
	case PhaseSwap:
		return "swap"
	case PhaseSettle:
		return "settle"
	case PhaseFadeIn:
		return "fade_in"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// PhaseListener is told about every phase a transition enters.
type PhaseListener func(Kind, Phase)

const (
	DefaultFadeDuration = 2.0
	DefaultSettleDelay  = 100 * time.Millisecond
)

type transition struct {
	kind  Kind
	phase Phase

	// level switch
	target     int
	exitHint   component.Direction
	moveToExit bool

	// combat enter
	encounter gameplay.Encounter

	settleUntil time.Time
	onDone      func()
}

// IsTransitioning reports whether a scene operation is running.
func (w *World) IsTransitioning() bool {
	return w.active != nil
}

// ActiveTransition returns the kind and phase of the running operation.
func (w *World) ActiveTransition() (Kind, Phase) {
	if w.active == nil {
		return KindNone, PhaseIdle
	}
	return w.active.kind, w.active.phase
}

func (w *World) begin(t *transition, first Phase) error {
	if w.active != nil {
		w.logger.Warn("scene operation rejected",
			zap.Stringer("requested", t.kind),
			zap.Stringer("running", w.active.kind),
			zap.Stringer("phase", w.active.phase),
		)
		return ErrTransitionInProgress
	}
	w.active = t
	w.logger.Debug("scene operation started", zap.Stringer("kind", t.kind))
	w.enter(t, first)
	return nil
}

// advance moves the running transition through every phase whose wait
// condition already holds. Phases that wait yield until a later Update.
func (w *World) advance() {
	for t := w.active; t != nil && t == w.active; {
		next, ok := w.ready(t)
		if !ok {
			return
		}
		w.enter(t, next)
	}
}

func (w *World) ready(t *transition) (Phase, bool) {
	switch t.phase {
	case PhaseNudge:
		if w.playerMoving() {
			return 0, false
		}
		return PhaseFreeze, true
	case PhaseFreeze:
		return PhaseFadeOut, true
	case PhaseFadeOut:
		if !w.HasFaded() {
			return 0, false
		}
		return PhaseSwap, true
	case PhaseSwap:
		return PhaseSettle, true
	case PhaseSettle:
		if w.clock.Now().Before(t.settleUntil) {
			return 0, false
		}
		return PhaseFadeIn, true
	case PhaseFadeIn:
		if !w.HasFaded() {
			return 0, false
		}
		return PhaseDone, true
	}
	return 0, false
}

func (w *World) enter(t *transition, p Phase) {
	t.phase = p
	if w.onPhase != nil {
		w.onPhase(t.kind, p)
	}

	switch p {
	case PhaseNudge:
		w.nudgePlayer(t.exitHint)
	case PhaseFreeze:
		w.freeze()
		if t.kind == KindCombatEnter {
			w.camera.Lock()
		}
	case PhaseFadeOut:
		w.fader.Start(false, w.fadeDuration, true)
	case PhaseSwap:
		switch t.kind {
		case KindLevelSwitch:
			w.swapLevel(t)
		case KindCombatEnter:
			w.stageCombat(t.encounter)
		case KindCombatExit:
			w.unstageCombat()
		}
	case PhaseSettle:
		t.settleUntil = w.clock.Now().Add(w.settleDelay)
	case PhaseFadeIn:
		w.fader.Start(true, w.fadeDuration, false)
	case PhaseDone:
		w.active = nil
		w.logger.Debug("scene operation finished", zap.Stringer("kind", t.kind))
		if t.onDone != nil {
			t.onDone()
		}
	}
}
