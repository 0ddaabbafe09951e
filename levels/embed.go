package levels

import "embed"

//go:embed *.json
var LevelsFS embed.FS

// DefaultSet is the level set shipped with the game.
const DefaultSet = "world.json"

// LoadEmbedded loads a level set compiled into the binary.
func LoadEmbedded(name string) (*Set, error) {
	return LoadSet(LevelsFS, name)
}
