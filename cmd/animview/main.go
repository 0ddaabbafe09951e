// Command animview plays the clips of an animation set from the assets
// directory so frame timing and ping-pong loops can be checked without
// starting the game. Left and right cycle through the clips.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/lumin/assets"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/ecs/system"
)

const viewSize = 256

type viewer struct {
	sheet *ebiten.Image
	clips map[string]*component.AnimationClip
	names []string
	idx   int
	state component.AnimationState
	scale float64
}

func (v *viewer) clip() *component.AnimationClip {
	return v.clips[v.names[v.idx]]
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.idx = (v.idx + 1) % len(v.names)
		v.state = component.AnimationState{Clip: v.names[v.idx]}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.idx = (v.idx + len(v.names) - 1) % len(v.names)
		v.state = component.AnimationState{Clip: v.names[v.idx]}
	}
	system.Advance(&v.state, v.clip(), 1/float64(ebiten.TPS()))
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	c := v.clip()
	src := c.Frames[v.state.Frame]
	frame := v.sheet.SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.scale, v.scale)
	op.GeoM.Translate(
		(viewSize-float64(src.Dx())*v.scale)/2,
		(viewSize-float64(src.Dy())*v.scale)/2,
	)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)

	mode := "once"
	switch {
	case c.Loop && c.Inverted:
		mode = "ping-pong"
	case c.Loop:
		mode = "loop"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %d/%d  %s", c.Name, v.state.Frame+1, len(c.Frames), mode))
}

func (v *viewer) Layout(int, int) (int, int) {
	return viewSize, viewSize
}

func main() {
	dir := flag.String("assets", "assets", "assets directory")
	set := flag.String("set", "player", "animation set id under animations/")
	texture := flag.String("texture", "player.png", "sprite sheet under textures/")
	scale := flag.Float64("scale", 4, "zoom factor")
	flag.Parse()

	cache := assets.NewCache(os.DirFS(*dir), 44100, nil)
	clips, err := cache.Animations(*set)
	if err != nil {
		log.Fatal(err)
	}
	if len(clips) == 0 {
		log.Fatalf("animation set %q has no clips", *set)
	}
	sheet, err := cache.Texture(*texture)
	if err != nil {
		log.Fatal(err)
	}

	names := make([]string, 0, len(clips))
	for name, c := range clips {
		if !framesInside(c.Frames, sheet.Bounds()) {
			log.Printf("skipping %s: frames outside %s", name, *texture)
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		log.Fatalf("no clip of %q fits %s", *set, *texture)
	}
	slices.Sort(names)

	v := &viewer{
		sheet: sheet,
		clips: clips,
		names: names,
		state: component.AnimationState{Clip: names[0]},
		scale: *scale,
	}
	ebiten.SetWindowSize(viewSize*2, viewSize*2)
	ebiten.SetWindowTitle("animview: " + *set)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func framesInside(frames []image.Rectangle, bounds image.Rectangle) bool {
	for _, f := range frames {
		if !f.In(bounds) {
			return false
		}
	}
	return true
}
