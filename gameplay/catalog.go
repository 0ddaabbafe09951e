package gameplay

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sync/errgroup"
)

//go:embed data/*.json
var DataFS embed.FS

var (
	ErrUnknownItem      = errors.New("gameplay: unknown item")
	ErrUnknownEssence   = errors.New("gameplay: unknown spirit essence")
	ErrUnknownRecipe    = errors.New("gameplay: unknown recipe")
	ErrUnknownEncounter = errors.New("gameplay: unknown encounter")
)

// Catalog is the static game data: items, essences, recipes and combat
// encounters. It is read-only after LoadCatalog returns.
type Catalog struct {
	items      map[string]Item
	essences   map[string]Essence
	recipes    map[string]Recipe
	encounters map[string]Encounter
}

type itemJSON struct {
	ID          string             `json:"itemId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	TextureID   string             `json:"textureId"`
	Type        string             `json:"type"`
	Flags       []string           `json:"flags"`
	Stats       map[string]float64 `json:"stats"`
}

type essenceJSON struct {
	ID          string             `json:"essenceId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	TextureID   string             `json:"textureId"`
	Spirit      string             `json:"spiritType"`
	Tier        int                `json:"spiritTier"`
	Multipliers map[string]float64 `json:"spiritProperties"`
}

type encounterJSON struct {
	ID           string      `json:"combatId"`
	Backdrop     string      `json:"backgroundTextureId"`
	Music        string      `json:"musicId"`
	VictoryMusic string      `json:"victoryMusicId"`
	DefeatMusic  string      `json:"defeatMusicId"`
	Enemies      []enemyJSON `json:"combatants"`
}

type enemyJSON struct {
	Name      string `json:"name"`
	Health    int    `json:"health"`
	Attack    int    `json:"attack"`
	Defense   int    `json:"defense"`
	Speed     int    `json:"speed"`
	Spirit    string `json:"spiritType"`
	TextureID string `json:"textureId"`
	Script    string `json:"script"`
}

// LoadCatalog reads items.json, essences.json, recipes.json and
// encounters.json from fsys concurrently.
func LoadCatalog(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	var (
		items      []itemJSON
		essences   []essenceJSON
		recipes    []Recipe
		encounters []encounterJSON
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return decodeFile(ctx, fsys, "items.json", &items) })
	g.Go(func() error { return decodeFile(ctx, fsys, "essences.json", &essences) })
	g.Go(func() error { return decodeFile(ctx, fsys, "recipes.json", &recipes) })
	g.Go(func() error { return decodeFile(ctx, fsys, "encounters.json", &encounters) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:      make(map[string]Item, len(items)),
		essences:   make(map[string]Essence, len(essences)),
		recipes:    make(map[string]Recipe, len(recipes)),
		encounters: make(map[string]Encounter, len(encounters)),
	}

	for _, raw := range items {
		flags, err := ParseItemFlags(raw.Flags)
		if err != nil {
			return nil, fmt.Errorf("gameplay: item %s: %w", raw.ID, err)
		}
		typ, err := parseItemType(raw.Type)
		if err != nil {
			return nil, fmt.Errorf("gameplay: item %s: %w", raw.ID, err)
		}
		c.items[raw.ID] = Item{
			ID:          raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
			TextureID:   raw.TextureID,
			Type:        typ,
			Flags:       flags,
			Stats:       raw.Stats,
		}
	}

	for _, raw := range essences {
		spirit, err := parseSpirit(raw.Spirit)
		if err != nil {
			return nil, fmt.Errorf("gameplay: essence %s: %w", raw.ID, err)
		}
		c.essences[raw.ID] = Essence{
			ID:          raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
			TextureID:   raw.TextureID,
			Spirit:      spirit,
			Tier:        raw.Tier,
			Multipliers: raw.Multipliers,
		}
	}

	for _, r := range recipes {
		if r.Result.IsEssence {
			if _, ok := c.essences[r.Result.ID]; !ok {
				return nil, fmt.Errorf("gameplay: recipe %s: %w %q", r.ID, ErrUnknownEssence, r.Result.ID)
			}
		} else if _, ok := c.items[r.Result.ID]; !ok {
			return nil, fmt.Errorf("gameplay: recipe %s: %w %q", r.ID, ErrUnknownItem, r.Result.ID)
		}
		if r.Result.Count <= 0 {
			r.Result.Count = 1
		}
		c.recipes[r.ID] = r
	}

	for _, raw := range encounters {
		enc := Encounter{
			ID:           raw.ID,
			Backdrop:     raw.Backdrop,
			Music:        raw.Music,
			VictoryMusic: raw.VictoryMusic,
			DefeatMusic:  raw.DefeatMusic,
		}
		for _, e := range raw.Enemies {
			spirit, err := parseSpirit(e.Spirit)
			if err != nil {
				return nil, fmt.Errorf("gameplay: encounter %s: %w", raw.ID, err)
			}
			enc.Enemies = append(enc.Enemies, Enemy{
				Name:      e.Name,
				Health:    e.Health,
				Attack:    e.Attack,
				Defense:   e.Defense,
				Speed:     e.Speed,
				Spirit:    spirit,
				TextureID: e.TextureID,
				Script:    e.Script,
			})
		}
		c.encounters[raw.ID] = enc
	}

	return c, nil
}

// LoadEmbeddedCatalog loads the catalog shipped with the binary.
func LoadEmbeddedCatalog(ctx context.Context) (*Catalog, error) {
	sub, err := fs.Sub(DataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(ctx, sub)
}

func decodeFile(ctx context.Context, fsys fs.FS, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("gameplay: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("gameplay: parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) Item(id string) (Item, error) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, fmt.Errorf("%w %q", ErrUnknownItem, id)
	}
	return it.Clone(), nil
}

func (c *Catalog) Essence(id string) (Essence, error) {
	e, ok := c.essences[id]
	if !ok {
		return Essence{}, fmt.Errorf("%w %q", ErrUnknownEssence, id)
	}
	return e.Clone(), nil
}

func (c *Catalog) Recipe(id string) (Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

func (c *Catalog) Encounter(id string) (Encounter, error) {
	enc, ok := c.encounters[id]
	if !ok {
		return Encounter{}, fmt.Errorf("%w %q", ErrUnknownEncounter, id)
	}
	return enc, nil
}

// DisplayName returns the catalog name for an item or essence id, or the id
// itself when it is not in the catalog.
func (c *Catalog) DisplayName(id string, essence bool) string {
	if essence {
		if e, ok := c.essences[id]; ok {
			return e.Name
		}
		return id
	}
	if it, ok := c.items[id]; ok {
		return it.Name
	}
	return id
}
