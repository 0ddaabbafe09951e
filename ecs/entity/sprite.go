package entity

import (
	"path"

	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/prefabs"
)

// textureFile appends .png to ids written without an extension.
func textureFile(id string) string {
	if id == "" || path.Ext(id) != "" {
		return id
	}
	return id + ".png"
}

func spriteFrom(spec prefabs.SpriteSpec, texture string) component.Sprite {
	if texture == "" {
		texture = spec.Texture
	}
	s := component.Sprite{
		TextureID: textureFile(texture),
		ZIndex:    spec.Z,
		Shifted:   spec.Shifted,
	}
	if !spec.Source.Empty() {
		s.Source = spec.Source.Rect()
		s.HasSource = true
	}
	return s
}
