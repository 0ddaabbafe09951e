package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/render"
)

var ErrResourceNotFound = errors.New("assets: resource not found")

// DefaultFont is served from the Go fonts when no file overrides it.
const DefaultFont = "default"

const (
	texturesDir   = "textures"
	fontsDir      = "fonts"
	audioDir      = "audio"
	animationsDir = "animations"
)

type fontKey struct {
	id   string
	size float64
}

// Cache loads textures, fonts, sounds and animation clips from an fs.FS the
// first time they are asked for and returns the same handle afterwards. It
// is not safe for concurrent use.
type Cache struct {
	fsys       fs.FS
	logger     *zap.Logger
	sampleRate int

	textures    *store[string, *ebiten.Image]
	fontSources *store[string, *text.GoTextFaceSource]
	fonts       *store[fontKey, text.Face]
	sounds      *store[string, []byte]
	animations  *store[string, map[string]*component.AnimationClip]
}

func NewCache(fsys fs.FS, sampleRate int, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		fsys:        fsys,
		logger:      logger,
		sampleRate:  sampleRate,
		textures:    newStore[string, *ebiten.Image](),
		fontSources: newStore[string, *text.GoTextFaceSource](),
		fonts:       newStore[fontKey, text.Face](),
		sounds:      newStore[string, []byte](),
		animations:  newStore[string, map[string]*component.AnimationClip](),
	}
}

// Texture returns the image stored at textures/<id>.
func (c *Cache) Texture(id string) (*ebiten.Image, error) {
	return c.textures.get(id, func() (*ebiten.Image, error) {
		b, err := c.read(texturesDir, id)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("assets: decode texture %q: %w", id, err)
		}
		c.logger.Debug("texture loaded", zap.String("id", id), zap.Stringer("bounds", img.Bounds()))
		return ebiten.NewImageFromImage(img), nil
	})
}

// Drawable is Texture typed for the render queue.
func (c *Cache) Drawable(id string) (render.Texture, error) {
	img, err := c.Texture(id)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Preload loads every listed texture up front. The first one that cannot be
// loaded is returned, so base assets fail startup instead of drawing nothing.
func (c *Cache) Preload(textures ...string) error {
	for _, id := range textures {
		if id == "" {
			continue
		}
		if _, err := c.Texture(id); err != nil {
			return fmt.Errorf("assets: preload: %w", err)
		}
	}
	return nil
}

// Font returns a face for fonts/<id>.ttf at size. Faces are cached by
// (id, size); the parsed font file is shared between sizes.
func (c *Cache) Font(id string, size float64) (text.Face, error) {
	return c.fonts.get(fontKey{id: id, size: size}, func() (text.Face, error) {
		src, err := c.fontSources.get(id, func() (*text.GoTextFaceSource, error) {
			b, err := c.read(fontsDir, id+".ttf")
			if errors.Is(err, ErrResourceNotFound) && id == DefaultFont {
				b, err = goregular.TTF, nil
			}
			if err != nil {
				return nil, err
			}
			src, err := text.NewGoTextFaceSource(bytes.NewReader(b))
			if err != nil {
				return nil, fmt.Errorf("assets: parse font %q: %w", id, err)
			}
			return src, nil
		})
		if err != nil {
			return nil, err
		}
		return &text.GoTextFace{Source: src, Size: size}, nil
	})
}

// Sound returns decoded PCM for audio/<id> at the cache's sample rate.
func (c *Cache) Sound(id string) ([]byte, error) {
	return c.sounds.get(id, func() ([]byte, error) {
		b, err := c.read(audioDir, id)
		if err != nil {
			return nil, err
		}
		var stream io.Reader
		switch strings.ToLower(path.Ext(id)) {
		case ".wav":
			stream, err = wav.DecodeWithSampleRate(c.sampleRate, bytes.NewReader(b))
		case ".mp3":
			stream, err = mp3.DecodeWithSampleRate(c.sampleRate, bytes.NewReader(b))
		default:
			// already decoded PCM in ebiten's native format
			return b, nil
		}
		if err != nil {
			return nil, fmt.Errorf("assets: decode sound %q: %w", id, err)
		}
		pcm, err := io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("assets: read sound %q: %w", id, err)
		}
		return pcm, nil
	})
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonClip struct {
	Name          string     `json:"name"`
	Frames        []jsonRect `json:"frames"`
	FrameDuration float64    `json:"frameDuration"`
	IsLooping     bool       `json:"isLooping"`
	IsInverted    bool       `json:"isInverted"`
}

// Animations returns the clips in animations/<id>.json keyed by name.
func (c *Cache) Animations(id string) (map[string]*component.AnimationClip, error) {
	return c.animations.get(id, func() (map[string]*component.AnimationClip, error) {
		b, err := c.read(animationsDir, id+".json")
		if err != nil {
			return nil, err
		}
		var raw []jsonClip
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("assets: parse animations %q: %w", id, err)
		}
		clips := make(map[string]*component.AnimationClip, len(raw))
		for _, rc := range raw {
			if len(rc.Frames) == 0 || rc.FrameDuration <= 0 {
				c.logger.Warn("skipping animation clip", zap.String("set", id), zap.String("clip", rc.Name))
				continue
			}
			clip := &component.AnimationClip{
				Name:          rc.Name,
				FrameDuration: rc.FrameDuration,
				Loop:          rc.IsLooping,
				Inverted:      rc.IsInverted,
			}
			for _, f := range rc.Frames {
				clip.Frames = append(clip.Frames, image.Rect(f.X, f.Y, f.X+f.W, f.Y+f.H))
			}
			clips[rc.Name] = clip
		}
		return clips, nil
	})
}

func (c *Cache) read(dir, id string) ([]byte, error) {
	clean := cleanAssetPath(id)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty id", ErrResourceNotFound)
	}
	b, err := fs.ReadFile(c.fsys, path.Join(dir, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s/%s", ErrResourceNotFound, dir, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: read %s/%s: %w", dir, clean, err)
	}
	return b, nil
}

// cleanAssetPath turns ids written relative to the project or as absolute
// paths into fs-relative paths.
func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		s = s[idx+len("/assets/"):]
	}
	s = strings.TrimPrefix(s, "assets/")
	for _, dir := range []string{texturesDir, fontsDir, audioDir, animationsDir} {
		s = strings.TrimPrefix(s, dir+"/")
	}
	return path.Clean(strings.TrimPrefix(s, "/"))
}
