package component

import "image"

// Sprite draws a texture from the asset cache at the entity's transform.
// Shifted sprites are drawn half a tile higher so tall characters overlap
// the tile above their feet.
type Sprite struct {
	TextureID string
	Source    image.Rectangle
	HasSource bool
	ZIndex    float64
	Shifted   bool
	Hidden    bool
}

// RaisedSprite is an extra layer drawn above Sprite, e.g. the head of an NPC
// that must cover the player when they walk behind it.
type RaisedSprite struct {
	TextureID string
	Source    image.Rectangle
	ZIndex    float64
}

var SpriteComponent = NewComponent[Sprite]()
var RaisedSpriteComponent = NewComponent[RaisedSprite]()
