package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is where on-disk prefab overrides are looked up. Files found there win
// over the embedded copies so edits show up under hot reload.
var Dir = "prefabs"

// LoadScript returns a combat script by file name, e.g. "wisp.tengo".
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	s, _ = strings.CutPrefix(s, "prefabs/")
	return s
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	s, _ = strings.CutPrefix(s, "prefabs/")
	s, _ = strings.CutPrefix(s, "scripts/")
	return "scripts/" + s
}
