package world

import "time"

// Clock is the time source for the settle delay between a scene swap and
// the fade back in.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
