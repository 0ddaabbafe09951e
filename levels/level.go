package levels

import (
	"image"
	"slices"
)

// Set is every level of the game plus the tile size they share.
type Set struct {
	TileSize int
	Levels   []*Level

	checksum uint64
}

// Level returns the level with id, or false when id is out of range.
func (s *Set) Level(id int) (*Level, bool) {
	if s == nil || id < 0 || id >= len(s.Levels) {
		return nil, false
	}
	return s.Levels[id], true
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Levels)
}

// Tilesets lists every tileset the set's layers draw from, sorted and
// without duplicates.
func (s *Set) Tilesets() []string {
	var out []string
	for _, lvl := range s.Levels {
		for _, l := range lvl.Layers {
			if l.Tileset != "" {
				out = append(out, l.Tileset)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Checksum identifies the content the set was parsed from. Saves record it
// so a load against edited levels can be detected.
func (s *Set) Checksum() uint64 {
	return s.checksum
}

// Level is the immutable static layout of one map.
type Level struct {
	ID     int
	Name   string
	Width  int
	Height int
	Music  string

	Layers        []TileLayer
	Collision     Grid
	Anchors       []Anchor
	NPCs          []NPC
	Stations      []Station
	Interactables []image.Point // tile coordinates
}

type TileLayer struct {
	Name    string
	Tileset string
	Z       float64
	Tiles   []Tile
}

// Tile is a tile placed at pixel position X, Y using the tileset region at
// SrcX, SrcY.
type Tile struct {
	X, Y       int
	SrcX, SrcY int
}

// Anchor is a marker placed in a level's entity layer, e.g. a building door.
type Anchor struct {
	Identifier  string
	Interaction string
	BuildingID  int
	TargetLevel int
	X, Y        int
}

const (
	AnchorPlayerSpawn      = "player_spawn"
	AnchorBuildingInteract = "building_interact"
	InteractionEnter       = "enter"
	InteractionExit        = "exit"
)

type NPCType int

const (
	NPCDialogue NPCType = iota
	NPCItemGiver
)

type NPC struct {
	ID              string
	X, Y            int
	Texture         string
	Type            NPCType
	Interactive     bool
	Dialogue        []string
	ErrorDialogue   []string
	ItemID          string
	ItemAmount      int
	IsSpiritEssence bool
	Repeatable      bool
	CombatID        string
}

type Station struct {
	ID      string
	Texture string
	Tag     string
	X, Y    int
}

// TileOf returns the grid position of a pixel position.
func TileOf(x, y, tileSize int) image.Point {
	if tileSize <= 0 {
		return image.Point{}
	}
	return image.Pt(floorDiv(x, tileSize), floorDiv(y, tileSize))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// InteractableType says what sits on an interactable tile.
type InteractableType int

const (
	InteractableNPC InteractableType = iota
	InteractableStation
)

func (t InteractableType) String() string {
	if t == InteractableStation {
		return "station"
	}
	return "npc"
}
