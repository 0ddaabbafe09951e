package component

type SpiritType string

const (
	SpiritNone   SpiritType = ""
	SpiritFire   SpiritType = "fire"
	SpiritWater  SpiritType = "water"
	SpiritEarth  SpiritType = "earth"
	SpiritLight  SpiritType = "light"
	SpiritShadow SpiritType = "shadow"
)

type Combatant struct {
	Name      string
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
	Speed     int
	Spirit    SpiritType
	IsPlayer  bool
	Script    string
}

var CombatantComponent = NewComponent[Combatant]()
