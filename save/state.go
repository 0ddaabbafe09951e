package save

import (
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/milk9111/lumin/ecs/component"
)

// State is everything needed to resume a session.
type State struct {
	ID            uuid.UUID                `json:"id"`
	PlayerName    string                   `json:"playerName"`
	PosX          float64                  `json:"posX"`
	PosY          float64                  `json:"posY"`
	Facing        component.Direction      `json:"facing"`
	LevelID       int                      `json:"currentMap"`
	Items         []component.ItemStack    `json:"inventoryItems"`
	Essences      []component.EssenceStack `json:"spiritEssences"`
	Interactions  map[int][]image.Point    `json:"interactionData"`
	LevelChecksum uint64                   `json:"levelChecksum"`
	SavedAt       time.Time                `json:"saveTimestamp"`
}

// Store persists a single save slot.
type Store interface {
	Save(State) error
	// Load reports false when nothing has been saved yet.
	Load() (State, bool, error)
}
