package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrAssetNotFound = errors.New("levels: asset not found")
	ErrParse         = errors.New("levels: parse error")
)

type fileSet struct {
	TileSize int         `json:"tileSize"`
	Levels   []fileLevel `json:"levels"`
}

type fileLevel struct {
	Identifier    string      `json:"identifier"`
	Width         int         `json:"pxWid"`
	Height        int         `json:"pxHei"`
	Music         string      `json:"music,omitempty"`
	Layers        []fileLayer `json:"layers"`
	Collision     fileGrid    `json:"collision"`
	Anchors       []fileAnch  `json:"anchors,omitempty"`
	NPCs          []fileNPC   `json:"npcs,omitempty"`
	Stations      []fileStat  `json:"stations,omitempty"`
	Interactables [][2]int    `json:"interactables,omitempty"`
}

type fileLayer struct {
	Name    string   `json:"name"`
	Tileset string   `json:"tileset"`
	ZIndex  float64  `json:"zIndex"`
	Tiles   [][4]int `json:"gridTiles"`
}

type fileGrid struct {
	Cols int     `json:"cWid"`
	Rows int     `json:"cHei"`
	CSV  []uint8 `json:"intGridCsv"`
}

type fileAnch struct {
	Identifier  string `json:"identifier"`
	Interaction string `json:"interaction"`
	BuildingID  int    `json:"buildingId"`
	TargetLevel int    `json:"targetLevel"`
	Px          [2]int `json:"px"`
}

type fileNPC struct {
	ID              string   `json:"id"`
	Px              [2]int   `json:"px"`
	Texture         string   `json:"texture"`
	Type            string   `json:"type"`
	Interactive     bool     `json:"interactive"`
	Dialogue        []string `json:"dialogue,omitempty"`
	ErrorDialogue   []string `json:"errorDialogue,omitempty"`
	ItemID          string   `json:"itemId,omitempty"`
	ItemAmount      int      `json:"itemAmount,omitempty"`
	IsSpiritEssence bool     `json:"isSpiritEssence,omitempty"`
	Repeatable      bool     `json:"isRepeatable,omitempty"`
	CombatID        string   `json:"combatId,omitempty"`
}

type fileStat struct {
	ID      string `json:"id"`
	Texture string `json:"texture"`
	Tag     string `json:"stationTag"`
	Px      [2]int `json:"px"`
}

// LoadSet reads and validates a level set. Level ids come from identifiers
// of the form "Level_N" and must cover 0..len-1.
func LoadSet(fsys fs.FS, path string) (*Set, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes a level set from JSON.
func Parse(data []byte) (*Set, error) {
	var raw fileSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if raw.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tileSize must be positive", ErrParse)
	}

	set := &Set{TileSize: raw.TileSize, checksum: xxhash.Sum64(data)}
	for _, fl := range raw.Levels {
		lvl, err := convertLevel(fl)
		if err != nil {
			return nil, err
		}
		set.Levels = append(set.Levels, lvl)
	}

	sort.Slice(set.Levels, func(i, j int) bool { return set.Levels[i].ID < set.Levels[j].ID })
	for i, lvl := range set.Levels {
		if lvl.ID != i {
			return nil, fmt.Errorf("%w: level ids must be contiguous from 0, missing %d", ErrParse, i)
		}
	}
	return set, nil
}

func convertLevel(fl fileLevel) (*Level, error) {
	id, err := parseLevelID(fl.Identifier)
	if err != nil {
		return nil, err
	}
	if fl.Collision.Cols*fl.Collision.Rows != len(fl.Collision.CSV) {
		return nil, fmt.Errorf("%w: %s collision grid is %dx%d but has %d cells",
			ErrParse, fl.Identifier, fl.Collision.Cols, fl.Collision.Rows, len(fl.Collision.CSV))
	}

	lvl := &Level{
		ID:     id,
		Name:   fl.Identifier,
		Width:  fl.Width,
		Height: fl.Height,
		Music:  fl.Music,
		Collision: Grid{
			Cols:  fl.Collision.Cols,
			Rows:  fl.Collision.Rows,
			Cells: fl.Collision.CSV,
		},
	}

	for _, layer := range fl.Layers {
		tl := TileLayer{Name: layer.Name, Tileset: layer.Tileset, Z: layer.ZIndex}
		for _, t := range layer.Tiles {
			tl.Tiles = append(tl.Tiles, Tile{X: t[0], Y: t[1], SrcX: t[2], SrcY: t[3]})
		}
		lvl.Layers = append(lvl.Layers, tl)
	}
	for _, a := range fl.Anchors {
		lvl.Anchors = append(lvl.Anchors, Anchor{
			Identifier:  a.Identifier,
			Interaction: a.Interaction,
			BuildingID:  a.BuildingID,
			TargetLevel: a.TargetLevel,
			X:           a.Px[0],
			Y:           a.Px[1],
		})
	}
	for _, n := range fl.NPCs {
		npcType, err := parseNPCType(n.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s npc %s: %v", ErrParse, fl.Identifier, n.ID, err)
		}
		lvl.NPCs = append(lvl.NPCs, NPC{
			ID:              n.ID,
			X:               n.Px[0],
			Y:               n.Px[1],
			Texture:         n.Texture,
			Type:            npcType,
			Interactive:     n.Interactive,
			Dialogue:        n.Dialogue,
			ErrorDialogue:   n.ErrorDialogue,
			ItemID:          n.ItemID,
			ItemAmount:      n.ItemAmount,
			IsSpiritEssence: n.IsSpiritEssence,
			Repeatable:      n.Repeatable,
			CombatID:        n.CombatID,
		})
	}
	for _, s := range fl.Stations {
		lvl.Stations = append(lvl.Stations, Station{
			ID:      s.ID,
			Texture: s.Texture,
			Tag:     s.Tag,
			X:       s.Px[0],
			Y:       s.Px[1],
		})
	}
	for _, p := range fl.Interactables {
		lvl.Interactables = append(lvl.Interactables, image.Pt(p[0], p[1]))
	}
	return lvl, nil
}

func parseLevelID(identifier string) (int, error) {
	raw, ok := strings.CutPrefix(identifier, "Level_")
	if !ok {
		return 0, fmt.Errorf("%w: level identifier %q must look like Level_N", ErrParse, identifier)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: level identifier %q has no numeric id", ErrParse, identifier)
	}
	return id, nil
}

func parseNPCType(s string) (NPCType, error) {
	switch strings.ToLower(s) {
	case "", "dialogue":
		return NPCDialogue, nil
	case "itemgiver", "item_giver":
		return NPCItemGiver, nil
	default:
		return 0, fmt.Errorf("unknown npc type %q", s)
	}
}
