package render

import (
	"image"
	"image/color"
	"slices"
	"sort"
)

// Queue accumulates commands for one frame in z order. Equal z values keep
// their insertion order.
type Queue struct {
	commands []Command
	viewport image.Rectangle

	named      map[string]Command
	namedOrder []string
}

func NewQueue(width, height int) *Queue {
	return &Queue{
		viewport: image.Rect(0, 0, width, height),
		named:    make(map[string]Command),
	}
}

// Enqueue inserts cmd before the first command with a strictly greater z.
func (q *Queue) Enqueue(cmd Command) {
	idx := sort.Search(len(q.commands), func(i int) bool {
		return q.commands[i].Z > cmd.Z
	})
	q.commands = slices.Insert(q.commands, idx, cmd)
}

func (q *Queue) Len() int {
	return len(q.commands)
}

// Commands returns a copy of the pending commands in flush order.
func (q *Queue) Commands() []Command {
	return slices.Clone(q.commands)
}

func (q *Queue) Viewport() image.Rectangle {
	return q.viewport
}

// Flush dispatches every pending command to s in order and empties the
// queue.
func (q *Queue) Flush(s Surface) {
	for _, cmd := range q.commands {
		q.dispatch(s, cmd)
	}
	clear(q.commands)
	q.commands = q.commands[:0]
}

func (q *Queue) dispatch(s Surface, cmd Command) {
	switch cmd.Kind {
	case KindDrawTexture:
		if cmd.Texture == nil {
			return
		}
		s.DrawTexture(cmd.Texture, cmd.Source, cmd.HasSource, cmd.Dest)
	case KindDrawText:
		if cmd.Text == "" || cmd.Face == nil {
			return
		}
		s.DrawText(cmd.Text, cmd.Face, colorOr(cmd.Color, color.White), cmd.Dest)
	case KindDrawRectangle:
		if cmd.Filled {
			s.FillRect(cmd.Dest, colorOr(cmd.Color, color.White))
		} else {
			s.StrokeRect(cmd.Dest, colorOr(cmd.Color, color.White))
		}
	case KindClear:
		s.Clear(colorOr(cmd.Color, color.Black))
	case KindClearRegion:
		s.FillRect(cmd.Dest, colorOr(cmd.Color, color.Black))
	case KindFadeOverlay, KindHoldBlackOverlay:
		s.FillRect(q.viewport, color.NRGBA{A: cmd.Alpha})
	}
}

// SetNamed registers a command that is re-enqueued every frame by
// EnqueueNamed until removed.
func (q *Queue) SetNamed(name string, cmd Command) {
	if _, ok := q.named[name]; !ok {
		q.namedOrder = append(q.namedOrder, name)
	}
	q.named[name] = cmd
}

func (q *Queue) RemoveNamed(name string) bool {
	if _, ok := q.named[name]; !ok {
		return false
	}
	delete(q.named, name)
	q.namedOrder = slices.DeleteFunc(q.namedOrder, func(n string) bool { return n == name })
	return true
}

func (q *Queue) Named(name string) (Command, bool) {
	cmd, ok := q.named[name]
	return cmd, ok
}

// EnqueueNamed adds every named command in registration order.
func (q *Queue) EnqueueNamed() {
	for _, name := range q.namedOrder {
		q.Enqueue(q.named[name])
	}
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
