package gameplay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lumin/ecs/component"
)

func TestEffectiveness(t *testing.T) {
	cases := []struct {
		att, def component.SpiritType
		want     float64
	}{
		{component.SpiritFire, component.SpiritEarth, 2},
		{component.SpiritEarth, component.SpiritFire, 0.5},
		{component.SpiritWater, component.SpiritFire, 2},
		{component.SpiritFire, component.SpiritWater, 0.5},
		{component.SpiritLight, component.SpiritShadow, 2},
		{component.SpiritShadow, component.SpiritShadow, 2},
		{component.SpiritShadow, component.SpiritLight, 1},
		{component.SpiritNone, component.SpiritFire, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Effectiveness(c.att, c.def), "%s vs %s", c.att, c.def)
	}
}

func TestDamage(t *testing.T) {
	fire := &component.Combatant{Attack: 10, Spirit: component.SpiritFire}
	earth := &component.Combatant{Defense: 3, Spirit: component.SpiritEarth}
	water := &component.Combatant{Defense: 3, Spirit: component.SpiritWater}
	wall := &component.Combatant{Defense: 50}

	assert.Equal(t, 14, Damage(fire, earth))
	assert.Equal(t, 3, Damage(fire, water))
	assert.Equal(t, 0, Damage(fire, wall))
}

func TestBattleTurnOrder(t *testing.T) {
	hero := &component.Combatant{Name: "hero", Health: 30, Attack: 9, Speed: 5, IsPlayer: true}
	fast := &component.Combatant{Name: "fast", Health: 10, Attack: 2, Speed: 8}
	slow := &component.Combatant{Name: "slow", Health: 10, Attack: 2, Speed: 1}
	tie := &component.Combatant{Name: "tie", Health: 10, Attack: 2, Speed: 5}

	b := NewBattle(slow, hero, tie, fast)
	var order []string
	for range 4 {
		order = append(order, b.Next().Name)
	}
	assert.Equal(t, []string{"fast", "hero", "tie", "slow"}, order)
	assert.Equal(t, "fast", b.Next().Name, "new round starts over")
}

func TestBattleEndsWhenOneSideIsEmpty(t *testing.T) {
	hero := &component.Combatant{Name: "hero", Health: 30, Attack: 12, Speed: 5, IsPlayer: true}
	foe := &component.Combatant{Name: "foe", Health: 10, Attack: 2, Defense: 2, Speed: 1}

	b := NewBattle(hero, foe)
	assert.Equal(t, hero, b.Next())
	target, dmg := b.Perform(hero, Action{Kind: ActionAttack, Target: 7})
	assert.Equal(t, foe, target)
	assert.Equal(t, 10, dmg)

	assert.True(t, b.IsOver())
	assert.Equal(t, OutcomeVictory, b.Outcome())
	assert.Nil(t, b.Next())
	assert.Zero(t, foe.Health)
	assert.Contains(t, b.Log(), "foe is defeated")
}

func TestDefeatedCombatantLosesTurn(t *testing.T) {
	hero := &component.Combatant{Name: "hero", Health: 30, Attack: 20, Speed: 9, IsPlayer: true}
	a := &component.Combatant{Name: "a", Health: 5, Speed: 5}
	c := &component.Combatant{Name: "c", Health: 50, Speed: 1}

	b := NewBattle(hero, a, c)
	require.Equal(t, hero, b.Next())
	b.Attack(hero, a)
	assert.Equal(t, c, b.Next())
}

func TestDefendHalvesNextHit(t *testing.T) {
	hero := &component.Combatant{Name: "hero", Health: 30, Attack: 10, Speed: 1, IsPlayer: true}
	foe := &component.Combatant{Name: "foe", Health: 50, Speed: 9}

	b := NewBattle(hero, foe)
	require.Equal(t, foe, b.Next())
	b.Perform(foe, Action{Kind: ActionDefend})
	require.Equal(t, hero, b.Next())
	_, dmg := b.Perform(hero, Action{Kind: ActionAttack})
	assert.Equal(t, 5, dmg)

	require.Equal(t, foe, b.Next())
	require.Equal(t, hero, b.Next())
	_, dmg = b.Perform(hero, Action{Kind: ActionAttack})
	assert.Equal(t, 10, dmg, "defense lasts until the defender's next turn")
}

const defendWhenHurt = `
action = "attack"
target = 0
if self.health * 3 < self.maxHealth {
	action = "defend"
} else {
	weakest := -1
	for i, f in foes {
		if weakest < 0 || f.health < foes[weakest].health {
			weakest = i
		}
	}
	if weakest >= 0 {
		target = weakest
	}
}
`

func TestScriptPolicy(t *testing.T) {
	loads := 0
	p := NewScriptPolicy(func(name string) ([]byte, error) {
		loads++
		switch name {
		case "wisp.tengo":
			return []byte(defendWhenHurt), nil
		case "broken.tengo":
			return []byte(`action = `), nil
		case "weird.tengo":
			return []byte(`action = "dance"`), nil
		}
		return nil, errors.New("not found")
	}, nil)

	strong := &component.Combatant{Name: "p1", Health: 20, IsPlayer: true}
	weak := &component.Combatant{Name: "p2", Health: 4, IsPlayer: true}
	wisp := &component.Combatant{Name: "wisp", Health: 9, MaxHealth: 9, Script: "wisp.tengo"}
	b := NewBattle(strong, weak, wisp)

	assert.Equal(t, Action{Kind: ActionAttack, Target: 1}, p.Choose(wisp, b))

	wisp.Health = 2
	assert.Equal(t, ActionDefend, p.Choose(wisp, b).Kind)
	assert.Equal(t, 1, loads, "compiled scripts are cached")

	p.Invalidate("wisp.tengo")
	p.Choose(wisp, b)
	assert.Equal(t, 2, loads)

	for _, script := range []string{"", "missing.tengo", "broken.tengo", "weird.tengo"} {
		wisp.Script = script
		assert.Equal(t, Action{Kind: ActionAttack}, p.Choose(wisp, b), "fallback for %q", script)
	}
}
