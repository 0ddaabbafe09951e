package component

// SmoothMovement interpolates an entity from tile to tile.
type SmoothMovement struct {
	TargetX  float64
	TargetY  float64
	Moving   bool
	Speed    float64 // pixels per second
	TileSize float64
}

var SmoothMovementComponent = NewComponent[SmoothMovement]()

type Direction int

const (
	South Direction = iota
	North
	West
	East
)

// Vector returns the unit grid step for d.
func (d Direction) Vector() (int, int) {
	switch d {
	case North:
		return 0, -1
	case West:
		return -1, 0
	case East:
		return 1, 0
	default:
		return 0, 1
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "south"
	}
}
