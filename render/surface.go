package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Surface is the output a Queue flushes into.
type Surface interface {
	DrawTexture(tex Texture, src image.Rectangle, hasSource bool, dst image.Rectangle)
	DrawText(s string, face text.Face, clr color.Color, dst image.Rectangle)
	FillRect(dst image.Rectangle, clr color.Color)
	StrokeRect(dst image.Rectangle, clr color.Color)
	Clear(clr color.Color)
}
