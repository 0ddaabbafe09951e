package gameplay

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs/component"
)

// Policy picks an action for a combatant that is not player controlled.
type Policy interface {
	Choose(self *component.Combatant, b *Battle) Action
}

// AttackFirst always attacks the first opponent.
type AttackFirst struct{}

func (AttackFirst) Choose(*component.Combatant, *Battle) Action {
	return Action{Kind: ActionAttack}
}

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// ScriptPolicy runs the tengo script named by the combatant's Script field.
// The script sees `self` and `foes` and sets `action` ("attack" or
// "defend") and `target` (index into foes). Combatants without a script, or
// whose script fails, use the fallback.
type ScriptPolicy struct {
	load     ScriptLoader
	fallback Policy
	compiled map[string]*tengo.Compiled
	logger   *zap.Logger
}

func NewScriptPolicy(load ScriptLoader, logger *zap.Logger) *ScriptPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptPolicy{
		load:     load,
		fallback: AttackFirst{},
		compiled: make(map[string]*tengo.Compiled),
		logger:   logger,
	}
}

// Invalidate drops the compiled copy of a script so the next turn reloads
// it.
func (p *ScriptPolicy) Invalidate(name string) {
	delete(p.compiled, name)
}

func (p *ScriptPolicy) Choose(self *component.Combatant, b *Battle) Action {
	if strings.TrimSpace(self.Script) == "" {
		return p.fallback.Choose(self, b)
	}
	a, err := p.run(self, b)
	if err != nil {
		p.logger.Warn("enemy script failed",
			zap.String("script", self.Script),
			zap.String("combatant", self.Name),
			zap.Error(err),
		)
		return p.fallback.Choose(self, b)
	}
	return a
}

func (p *ScriptPolicy) run(self *component.Combatant, b *Battle) (Action, error) {
	c, err := p.compile(self.Script)
	if err != nil {
		return Action{}, err
	}

	foes := make([]any, 0)
	for _, f := range b.Opponents(self) {
		foes = append(foes, combatantMap(f))
	}
	if err := c.Set("self", combatantMap(self)); err != nil {
		return Action{}, err
	}
	if err := c.Set("foes", foes); err != nil {
		return Action{}, err
	}
	if err := c.Set("action", "attack"); err != nil {
		return Action{}, err
	}
	if err := c.Set("target", 0); err != nil {
		return Action{}, err
	}
	if err := c.Run(); err != nil {
		return Action{}, err
	}

	a := Action{Target: c.Get("target").Int()}
	switch s := c.Get("action").String(); s {
	case "attack":
		a.Kind = ActionAttack
	case "defend":
		a.Kind = ActionDefend
	default:
		return Action{}, fmt.Errorf("gameplay: script %s: unknown action %q", self.Script, s)
	}
	return a, nil
}

func (p *ScriptPolicy) compile(name string) (*tengo.Compiled, error) {
	if c, ok := p.compiled[name]; ok {
		return c, nil
	}
	src, err := p.load(name)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("self", map[string]any{})
	_ = script.Add("foes", []any{})
	_ = script.Add("action", "attack")
	_ = script.Add("target", 0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("gameplay: compile %s: %w", name, err)
	}
	p.compiled[name] = c
	return c, nil
}

func combatantMap(c *component.Combatant) map[string]any {
	return map[string]any{
		"name":      c.Name,
		"health":    c.Health,
		"maxHealth": c.MaxHealth,
		"attack":    c.Attack,
		"defense":   c.Defense,
		"speed":     c.Speed,
		"spirit":    string(c.Spirit),
		"isPlayer":  c.IsPlayer,
	}
}
