package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface draws commands onto an ebiten image, usually the screen
// passed to Game.Draw.
type EbitenSurface struct {
	dst *ebiten.Image
}

func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{dst: dst}
}

func (s *EbitenSurface) DrawTexture(tex Texture, src image.Rectangle, hasSource bool, dst image.Rectangle) {
	img, ok := tex.(*ebiten.Image)
	if !ok || img == nil {
		return
	}
	if hasSource {
		sub, ok := img.SubImage(src).(*ebiten.Image)
		if !ok {
			return
		}
		img = sub
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if !dst.Empty() {
		op.GeoM.Scale(float64(dst.Dx())/float64(b.Dx()), float64(dst.Dy())/float64(b.Dy()))
	}
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	s.dst.DrawImage(img, op)
}

func (s *EbitenSurface) DrawText(str string, face text.Face, clr color.Color, dst image.Rectangle) {
	if face == nil {
		return
	}
	m := face.Metrics()
	lineHeight := m.HAscent + m.HDescent + m.HLineGap

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight

	lines := str
	if dst.Dx() > 0 {
		lines = strings.Join(wrapText(str, face, float64(dst.Dx())), "\n")
	}
	text.Draw(s.dst, lines, face, op)
}

func (s *EbitenSurface) FillRect(dst image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(s.dst, float32(dst.Min.X), float32(dst.Min.Y), float32(dst.Dx()), float32(dst.Dy()), clr, false)
}

func (s *EbitenSurface) StrokeRect(dst image.Rectangle, clr color.Color) {
	vector.StrokeRect(s.dst, float32(dst.Min.X), float32(dst.Min.Y), float32(dst.Dx()), float32(dst.Dy()), 1, clr, false)
}

func (s *EbitenSurface) Clear(clr color.Color) {
	s.dst.Fill(clr)
}

// wrapText breaks str into lines no wider than width, splitting on spaces.
// Explicit newlines are kept.
func wrapText(str string, face text.Face, width float64) []string {
	var out []string
	for _, para := range strings.Split(str, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if text.Advance(candidate, face) > width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}
