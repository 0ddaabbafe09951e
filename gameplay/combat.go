package gameplay

import (
	"slices"

	"github.com/milk9111/lumin/ecs/component"
)

type Encounter struct {
	ID           string
	Backdrop     string
	Music        string
	VictoryMusic string
	DefeatMusic  string
	Enemies      []Enemy
}

type Enemy struct {
	Name      string
	Health    int
	Attack    int
	Defense   int
	Speed     int
	Spirit    component.SpiritType
	TextureID string
	Script    string
}

// Combatant builds the component for an enemy.
func (e Enemy) Combatant() component.Combatant {
	return component.Combatant{
		Name:      e.Name,
		Health:    e.Health,
		MaxHealth: e.Health,
		Attack:    e.Attack,
		Defense:   e.Defense,
		Speed:     e.Speed,
		Spirit:    e.Spirit,
		Script:    e.Script,
	}
}

type matchup struct {
	attacker, defender component.SpiritType
}

var effectiveness = map[matchup]float64{
	{component.SpiritFire, component.SpiritEarth}:    2.0,
	{component.SpiritEarth, component.SpiritFire}:    0.5,
	{component.SpiritWater, component.SpiritFire}:    2.0,
	{component.SpiritFire, component.SpiritWater}:    0.5,
	{component.SpiritLight, component.SpiritShadow}:  2.0,
	{component.SpiritShadow, component.SpiritShadow}: 2.0,
}

// Effectiveness is the damage multiplier of an attacker's spirit against a
// defender's. Unlisted matchups are neutral.
func Effectiveness(attacker, defender component.SpiritType) float64 {
	if v, ok := effectiveness[matchup{attacker, defender}]; ok {
		return v
	}
	return 1.0
}

// Damage is (attack - defense) * effectiveness truncated toward zero, never
// negative.
func Damage(attacker, defender *component.Combatant) int {
	d := int(float64(attacker.Attack-defender.Defense) * Effectiveness(attacker.Spirit, defender.Spirit))
	return max(d, 0)
}

type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefend
)

func (k ActionKind) String() string {
	if k == ActionDefend {
		return "defend"
	}
	return "attack"
}

// Action is one combatant's choice for a turn. Target indexes the acting
// side's opponents as returned by Battle.Opponents.
type Action struct {
	Kind   ActionKind
	Target int
}

type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	}
	return "undecided"
}

// Battle tracks the combatants of one fight and whose turn it is.
type Battle struct {
	fighters  []*component.Combatant
	queue     []*component.Combatant
	defending map[*component.Combatant]bool
	log       []string
}

func NewBattle(fighters ...*component.Combatant) *Battle {
	return &Battle{
		fighters:  slices.Clone(fighters),
		defending: make(map[*component.Combatant]bool),
	}
}

func (b *Battle) Fighters() []*component.Combatant {
	return slices.Clone(b.fighters)
}

// Next returns whose turn it is, refilling the round in descending speed
// order (ties keep join order) when the previous round is spent. It returns
// nil once the battle is over.
func (b *Battle) Next() *component.Combatant {
	if b.IsOver() {
		return nil
	}
	for {
		if len(b.queue) == 0 {
			b.queue = slices.Clone(b.fighters)
			slices.SortStableFunc(b.queue, func(x, y *component.Combatant) int {
				return y.Speed - x.Speed
			})
		}
		c := b.queue[0]
		b.queue = b.queue[1:]
		if slices.Contains(b.fighters, c) {
			delete(b.defending, c)
			return c
		}
	}
}

// Opponents lists the living combatants on the other side from c.
func (b *Battle) Opponents(c *component.Combatant) []*component.Combatant {
	var out []*component.Combatant
	for _, f := range b.fighters {
		if f.IsPlayer != c.IsPlayer {
			out = append(out, f)
		}
	}
	return out
}

// Perform applies a to actor. Out-of-range targets fall back to the first
// opponent.
func (b *Battle) Perform(actor *component.Combatant, a Action) (target *component.Combatant, damage int) {
	if a.Kind == ActionDefend {
		b.defending[actor] = true
		b.log = append(b.log, actor.Name+" is defending")
		return nil, 0
	}
	opps := b.Opponents(actor)
	if len(opps) == 0 {
		return nil, 0
	}
	if a.Target < 0 || a.Target >= len(opps) {
		a.Target = 0
	}
	target = opps[a.Target]
	return target, b.Attack(actor, target)
}

// Attack hits target and removes it from the battle when its health runs
// out. Defending halves the damage taken.
func (b *Battle) Attack(attacker, target *component.Combatant) int {
	dmg := Damage(attacker, target)
	if b.defending[target] {
		dmg /= 2
	}
	target.Health -= dmg
	b.log = append(b.log, attacker.Name+" hits "+target.Name)
	if target.Health <= 0 {
		target.Health = 0
		b.fighters = slices.DeleteFunc(b.fighters, func(f *component.Combatant) bool { return f == target })
		b.log = append(b.log, target.Name+" is defeated")
	}
	return dmg
}

// IsOver reports whether one side has nobody left.
func (b *Battle) IsOver() bool {
	return b.Outcome() != OutcomeUndecided
}

func (b *Battle) Outcome() Outcome {
	var players, enemies int
	for _, f := range b.fighters {
		if f.IsPlayer {
			players++
		} else {
			enemies++
		}
	}
	switch {
	case players == 0:
		return OutcomeDefeat
	case enemies == 0:
		return OutcomeVictory
	}
	return OutcomeUndecided
}

func (b *Battle) Log() []string {
	return slices.Clone(b.log)
}
