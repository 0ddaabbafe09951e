package system

import (
	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
)

// PlayAnimation restarts anim on the named clip from its first frame. It
// reports false and changes nothing when the clip does not exist.
func PlayAnimation(anim *component.Animation, name string) bool {
	if anim == nil {
		return false
	}
	if _, ok := anim.Clips[name]; !ok {
		return false
	}
	anim.State = &component.AnimationState{Clip: name}
	return true
}

// StopAnimation stops anim and remembers the frame it was showing so the
// sprite keeps that pose.
func StopAnimation(anim *component.Animation) {
	if anim == nil || anim.State == nil {
		return
	}
	if clip, ok := anim.Clips[anim.State.Clip]; ok && len(clip.Frames) > 0 {
		anim.Frozen = clip.Frames[clampFrame(anim.State.Frame, len(clip.Frames))]
		anim.HasFrozen = true
	}
	anim.State = nil
}

// CurrentClip is the playing clip name, or "" when stopped.
func CurrentClip(anim *component.Animation) string {
	if anim == nil || anim.State == nil {
		return ""
	}
	return anim.State.Clip
}

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.AnimationComponent, component.SpriteComponent, func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if anim.State == nil {
			if anim.HasFrozen {
				sprite.Source = anim.Frozen
				sprite.HasSource = true
			}
			return
		}

		clip, ok := anim.Clips[anim.State.Clip]
		if !ok || len(clip.Frames) == 0 {
			return
		}

		Advance(anim.State, clip, dt)
		sprite.Source = clip.Frames[anim.State.Frame]
		sprite.HasSource = true
	})
}

// Advance moves state forward by dt seconds, stepping once per elapsed frame
// duration.
func Advance(state *component.AnimationState, clip *component.AnimationClip, dt float64) {
	n := len(clip.Frames)
	if n == 0 || clip.FrameDuration <= 0 {
		return
	}
	state.Elapsed += dt
	for state.Elapsed >= clip.FrameDuration {
		state.Elapsed -= clip.FrameDuration
		step(state, clip, n)
	}
}

func step(state *component.AnimationState, clip *component.AnimationClip, n int) {
	if clip.Inverted {
		if state.Frame <= 0 {
			state.Returning = false
		}
		if state.Returning {
			state.Frame--
		} else {
			state.Frame++
		}
	} else {
		state.Frame++
	}

	if state.Frame < n {
		return
	}
	switch {
	case !clip.Loop:
		state.Frame = n - 1
	case clip.Inverted:
		// n-2 so the last frame is not shown twice in a row
		state.Returning = true
		state.Frame = max(n-2, 0)
	default:
		state.Frame = 0
	}
}

func clampFrame(i, n int) int {
	return min(max(i, 0), n-1)
}
