package ecs

import "strconv"

// Entity identifies a component bag inside a World. The zero value is never
// issued and ids are not recycled.
type Entity uint64

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
