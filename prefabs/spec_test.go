package prefabs

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	Dir = t.TempDir()

	p, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, 96.0, p.Speed)
	assert.Equal(t, image.Rect(0, 0, 32, 48), p.Sprite.Source.Rect())
	assert.Equal(t, "fire", p.Combatant.Spirit)
	assert.NotEmpty(t, p.Recipes)

	n, err := LoadNPCSpec()
	require.NoError(t, err)
	assert.Equal(t, 17.0, n.Sprite.Z)
	assert.Equal(t, 18.0, n.Raised.Z)
	assert.Equal(t, 16, n.Raised.Source.H)

	s, err := LoadStationSpec()
	require.NoError(t, err)
	assert.False(t, s.Sprite.Shifted)
	assert.False(t, s.Sprite.Source.Empty())
}

func TestDiskOverrideWins(t *testing.T) {
	Dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(Dir, "player.yaml"), []byte("speed: 10\ntile_size: 16\n"), 0o644))

	p, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.Speed)
	assert.Equal(t, 16.0, p.TileSize)
}

func TestInvalidPlayerSpec(t *testing.T) {
	Dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(Dir, "player.yaml"), []byte("speed: 0\n"), 0o644))
	_, err := LoadPlayerSpec()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(Dir, "player.yaml"), []byte("speed: [\n"), 0o644))
	_, err = LoadPlayerSpec()
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	Dir = t.TempDir()
	for _, name := range []string{"wisp.tengo", "scripts/wisp.tengo", "prefabs/scripts/wisp.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "action")
	}
	_, err := LoadScript("missing.tengo")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ChangePrefab, Classify("prefabs/npc.YAML"))
	assert.Equal(t, ChangeScript, Classify("x/wisp.tengo"))
	assert.Equal(t, ChangeLevel, Classify("levels/world.json"))
	assert.Equal(t, ChangeOther, Classify("notes.txt"))
}
