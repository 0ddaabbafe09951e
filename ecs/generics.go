package ecs

import (
	"fmt"

	"github.com/milk9111/lumin/ecs/component"
)

// Add stores a copy of value on e, replacing any existing component of the
// same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value T) error {
	v := value
	return w.AddComponent(e, kind.ID(), &v)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

// Get returns a pointer to the stored component. Mutations through it are
// visible to later readers.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	ptr, ok := value.(*T)
	return ptr, ok
}

// Require is Get for callers that treat absence as an error.
func Require[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, error) {
	if !w.IsAlive(e) {
		return nil, fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	ptr, ok := Get(w, e, kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s on entity %s", component.ErrComponentNotFound, kind.Name(), e)
	}
	return ptr, nil
}

// MustGet panics when e lacks the component. Use it only where presence is
// an invariant of the calling code.
func MustGet[T any](w *World, e Entity, kind component.ComponentKind[T]) *T {
	ptr, err := Require(w, e, kind)
	if err != nil {
		panic(err)
	}
	return ptr
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	set := w.store(ka.ID())
	if set == nil {
		return
	}
	ents := append([]Entity(nil), set.Entities()...)
	for _, e := range ents {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
