package component

type Player struct {
	Name   string
	Facing Direction
}

var PlayerComponent = NewComponent[Player]()
