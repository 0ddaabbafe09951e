package system

import (
	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/render"
)

// CameraSystem keeps the camera centered on the player's tile.
type CameraSystem struct {
	camera   *render.Camera
	tileSize int
}

func NewCameraSystem(camera *render.Camera, tileSize int) *CameraSystem {
	return &CameraSystem{camera: camera, tileSize: tileSize}
}

func (cs *CameraSystem) Update(w *ecs.World, _ float64) {
	player, ok := w.First(component.PlayerComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}
	half := float64(cs.tileSize) / 2
	cs.camera.Follow(t.X+half, t.Y+half)
}
