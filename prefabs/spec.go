package prefabs

import (
	"fmt"
	"image"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name       string        `yaml:"name"`
	Speed      float64       `yaml:"speed"`
	TileSize   float64       `yaml:"tile_size"`
	Sprite     SpriteSpec    `yaml:"sprite"`
	Animations string        `yaml:"animations"`
	Idle       string        `yaml:"idle"`
	Combatant  CombatantSpec `yaml:"combatant"`
	Inventory  InventorySpec `yaml:"inventory"`
	Recipes    []string      `yaml:"recipes"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Speed <= 0 || spec.TileSize <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: speed and tile_size must be positive")
	}
	return &spec, nil
}

// NPCSpec describes how level NPC placements are drawn. The texture comes
// from the placement itself.
type NPCSpec struct {
	Sprite SpriteSpec `yaml:"sprite"`
	Raised SpriteSpec `yaml:"raised"`
}

func LoadNPCSpec() (*NPCSpec, error) {
	spec, err := LoadSpec[NPCSpec]("npc.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type StationSpec struct {
	Sprite SpriteSpec `yaml:"sprite"`
}

func LoadStationSpec() (*StationSpec, error) {
	spec, err := LoadSpec[StationSpec]("station.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SpriteSpec struct {
	Texture string   `yaml:"texture"`
	Source  RectSpec `yaml:"source"`
	Z       float64  `yaml:"z"`
	Shifted bool     `yaml:"shifted"`
}

type RectSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r RectSpec) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r RectSpec) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

type CombatantSpec struct {
	Health  int    `yaml:"health"`
	Attack  int    `yaml:"attack"`
	Defense int    `yaml:"defense"`
	Speed   int    `yaml:"speed"`
	Spirit  string `yaml:"spirit"`
}

type InventorySpec struct {
	Capacity int         `yaml:"capacity"`
	Items    []StackSpec `yaml:"items"`
	Essences []StackSpec `yaml:"essences"`
}

type StackSpec struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}
