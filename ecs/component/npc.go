package component

import "github.com/milk9111/lumin/levels"

// NPC marks an entity spawned from a level placement. Entities carrying it
// are torn down on every level switch.
type NPC struct {
	LevelID int
	Data    levels.NPC
}

type Station struct {
	LevelID int
	Data    levels.Station
}

var NPCComponent = NewComponent[NPC]()
var StationComponent = NewComponent[Station]()
