package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Kind tags the variant carried by a Command.
type Kind int

const (
	KindDrawTexture Kind = iota
	KindDrawText
	KindDrawRectangle
	KindClear
	KindClearRegion
	KindFadeOverlay
	KindHoldBlackOverlay
)

func (k Kind) String() string {
	switch k {
	case KindDrawTexture:
		return "draw_texture"
	case KindDrawText:
		return "draw_text"
	case KindDrawRectangle:
		return "draw_rectangle"
	case KindClear:
		return "clear"
	case KindClearRegion:
		return "clear_region"
	case KindFadeOverlay:
		return "fade_overlay"
	case KindHoldBlackOverlay:
		return "hold_black_overlay"
	default:
		return "unknown"
	}
}

// Z sentinels. Clear commands use ZMin and overlays use ZMax so they sort to
// the ends of the queue.
const (
	ZMin = -math.MaxFloat64
	ZMax = math.MaxFloat64
)

// Texture is anything with pixel bounds; *ebiten.Image satisfies it.
type Texture interface {
	Bounds() image.Rectangle
}

// Command is one queued draw operation.
type Command struct {
	Kind Kind
	Z    float64

	Texture   Texture
	Source    image.Rectangle
	HasSource bool
	Dest      image.Rectangle

	Text string
	Face text.Face

	Color  color.Color
	Filled bool
	Alpha  uint8
}

// DrawTexture blits the whole texture into dst.
func DrawTexture(tex Texture, dst image.Rectangle, z float64) Command {
	return Command{Kind: KindDrawTexture, Texture: tex, Dest: dst, Z: z}
}

// DrawTextureRegion blits src of tex into dst.
func DrawTextureRegion(tex Texture, src, dst image.Rectangle, z float64) Command {
	return Command{Kind: KindDrawTexture, Texture: tex, Source: src, HasSource: true, Dest: dst, Z: z}
}

func DrawText(s string, face text.Face, clr color.Color, dst image.Rectangle, z float64) Command {
	return Command{Kind: KindDrawText, Text: s, Face: face, Color: clr, Dest: dst, Z: z}
}

func DrawRectangle(dst image.Rectangle, clr color.Color, filled bool, z float64) Command {
	return Command{Kind: KindDrawRectangle, Dest: dst, Color: clr, Filled: filled, Z: z}
}

func Clear(clr color.Color) Command {
	return Command{Kind: KindClear, Color: clr, Z: ZMin}
}

func ClearRegion(dst image.Rectangle, clr color.Color, z float64) Command {
	return Command{Kind: KindClearRegion, Dest: dst, Color: clr, Z: z}
}

func FadeOverlay(alpha uint8) Command {
	return Command{Kind: KindFadeOverlay, Alpha: alpha, Z: ZMax}
}

func HoldBlackOverlay() Command {
	return Command{Kind: KindHoldBlackOverlay, Alpha: 255, Z: ZMax}
}
