package system

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/render"
)

// CollisionDebugZ draws the collision overlay above every sprite.
const CollisionDebugZ = 250

var collisionDebugColor = color.RGBA{R: 255, A: 96}

// Textures resolves texture ids to drawable images.
type Textures interface {
	Drawable(id string) (render.Texture, error)
}

// Fonts resolves a font id at a pixel size.
type Fonts interface {
	Font(id string, size float64) (text.Face, error)
}

// missingLog warns once per asset id so a missing texture does not flood the
// log every frame.
type missingLog struct {
	logger *zap.Logger
	seen   map[string]bool
}

func (m *missingLog) warn(id string, err error) {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[id] {
		return
	}
	m.seen[id] = true
	m.logger.Warn("missing texture", zap.String("id", id), zap.Error(err))
}

// SpriteRenderer queues every visible sprite at its transform.
type SpriteRenderer struct {
	textures Textures
	camera   *render.Camera
	tileSize int
	missing  missingLog
}

func NewSpriteRenderer(textures Textures, camera *render.Camera, tileSize int, logger *zap.Logger) *SpriteRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpriteRenderer{textures: textures, camera: camera, tileSize: tileSize, missing: missingLog{logger: logger}}
}

func (r *SpriteRenderer) Draw(w *ecs.World, q *render.Queue) {
	shift := r.tileSize / 2
	ecs.ForEach2(w, component.TransformComponent, component.SpriteComponent, func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Hidden {
			return
		}
		tex, err := r.textures.Drawable(s.TextureID)
		if err != nil {
			r.missing.warn(s.TextureID, err)
			return
		}

		x, y := r.camera.ToScreen(t.X, t.Y)
		if s.Shifted {
			y -= shift
		}
		size := tex.Bounds().Size()
		if s.HasSource {
			size = s.Source.Size()
		}
		dst := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x, y).Add(scaled(size, t))}
		if !dst.Overlaps(q.Viewport()) {
			return
		}
		if s.HasSource {
			q.Enqueue(render.DrawTextureRegion(tex, s.Source, dst, s.ZIndex))
		} else {
			q.Enqueue(render.DrawTexture(tex, dst, s.ZIndex))
		}

		raised, ok := ecs.Get(w, e, component.RaisedSpriteComponent)
		if !ok {
			return
		}
		rt, err := r.textures.Drawable(raised.TextureID)
		if err != nil {
			r.missing.warn(raised.TextureID, err)
			return
		}
		rdst := image.Rect(x, y, x+raised.Source.Dx(), y+raised.Source.Dy())
		q.Enqueue(render.DrawTextureRegion(rt, raised.Source, rdst, raised.ZIndex))
	})
}

func scaled(size image.Point, t *component.Transform) image.Point {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return image.Pt(int(float64(size.X)*sx), int(float64(size.Y)*sy))
}

// TilemapRenderer queues the tile layers of the current level, skipping
// tiles outside the viewport.
type TilemapRenderer struct {
	level    LevelView
	textures Textures
	camera   *render.Camera
	missing  missingLog

	ShowCollision bool
}

func NewTilemapRenderer(level LevelView, textures Textures, camera *render.Camera, logger *zap.Logger) *TilemapRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TilemapRenderer{level: level, textures: textures, camera: camera, missing: missingLog{logger: logger}}
}

func (r *TilemapRenderer) Draw(q *render.Queue) {
	lvl, ok := r.level.CurrentLevel()
	if !ok || !r.level.TilemapVisible() {
		return
	}
	ts := r.level.TileSize()
	if ts <= 0 {
		return
	}
	view := q.Viewport()

	for _, layer := range lvl.Layers {
		tex, err := r.textures.Drawable(layer.Tileset)
		if err != nil {
			r.missing.warn(layer.Tileset, err)
			continue
		}
		for _, tile := range layer.Tiles {
			x, y := r.camera.ToScreen(float64(tile.X), float64(tile.Y))
			dst := image.Rect(x, y, x+ts, y+ts)
			if !dst.Overlaps(view) {
				continue
			}
			src := image.Rect(tile.SrcX, tile.SrcY, tile.SrcX+ts, tile.SrcY+ts)
			q.Enqueue(render.DrawTextureRegion(tex, src, dst, layer.Z))
		}
	}

	if r.ShowCollision {
		r.drawCollision(q, lvl.Width/ts, lvl.Height/ts, ts)
	}
}

func (r *TilemapRenderer) drawCollision(q *render.Queue, cols, rows, ts int) {
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			if !r.level.IsTileSolid(tx, ty) {
				continue
			}
			x, y := r.camera.ToScreen(float64(tx*ts), float64(ty*ts))
			dst := image.Rect(x, y, x+ts, y+ts)
			if dst.Overlaps(q.Viewport()) {
				q.Enqueue(render.DrawRectangle(dst, collisionDebugColor, false, CollisionDebugZ))
			}
		}
	}
}
