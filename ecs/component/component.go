package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
	ErrComponentNotFound    = errors.New("ecs: component not found")
)

// Identified is satisfied by every ComponentKind regardless of its type
// parameter, so heterogeneous kinds can be passed to queries.
type Identified interface {
	ID() ComponentID
	Name() string
}

type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	return ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

// NewComponent registers a new component kind for T.
func NewComponent[T any]() ComponentKind[T] {
	return NewComponentKind[T]()
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Name() string {
	return k.name
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Kind returns k; it lets package-level handles be written either as
// `TransformComponent` or `TransformComponent.Kind()`.
func (k ComponentKind[T]) Kind() ComponentKind[T] {
	return k
}

type ComponentID uint32

var nextComponentID atomic.Uint32
