package gameplay

import "strings"

// TypewriterDelay is the time between revealed runes, in seconds.
const TypewriterDelay = 0.05

const continueMarker = " ▼"

type DialogueNode struct {
	Text string
	Next *DialogueNode
}

// BuildDialogue links lines into a chain in one forward pass. It returns nil
// for no lines.
func BuildDialogue(lines []string) *DialogueNode {
	var head, tail *DialogueNode
	for _, l := range lines {
		n := &DialogueNode{Text: l}
		if head == nil {
			head = n
		} else {
			tail.Next = n
		}
		tail = n
	}
	return head
}

func (n *DialogueNode) Lines() []string {
	var out []string
	for ; n != nil; n = n.Next {
		out = append(out, n.Text)
	}
	return out
}

// WithLine returns a copy of the chain with text appended. The receiver is
// not modified.
func (n *DialogueNode) WithLine(text string) *DialogueNode {
	return BuildDialogue(append(n.Lines(), text))
}

// DialogueBox reveals a chain one rune at a time.
type DialogueBox struct {
	node    *DialogueNode
	runes   []rune
	shown   int
	timer   float64
	waiting bool
	fresh   bool
	onDone  func()
}

// Start shows node. onDone, if set, runs once after the last line is
// dismissed. An empty chain finishes immediately.
func (b *DialogueBox) Start(node *DialogueNode, onDone func()) {
	b.onDone = onDone
	if node == nil {
		b.finish()
		return
	}
	b.show(node)
	b.fresh = true
}

func (b *DialogueBox) show(node *DialogueNode) {
	b.node = node
	b.runes = []rune(node.Text)
	b.shown = 0
	b.timer = 0
	b.waiting = len(b.runes) == 0
}

func (b *DialogueBox) Active() bool {
	return b.node != nil
}

func (b *DialogueBox) Update(dt float64) {
	if b.node == nil {
		return
	}
	b.fresh = false
	if b.waiting {
		return
	}
	b.timer += dt
	for b.timer >= TypewriterDelay && b.shown < len(b.runes) {
		b.timer -= TypewriterDelay
		b.shown++
	}
	if b.shown >= len(b.runes) {
		b.waiting = true
	}
}

// Advance handles the interact key: it completes a line that is still
// typing, otherwise moves to the next line or closes the box. Presses in
// the same frame the box opened are ignored.
func (b *DialogueBox) Advance() {
	if b.node == nil || b.fresh {
		return
	}
	if !b.waiting {
		b.shown = len(b.runes)
		b.waiting = true
		return
	}
	if b.node.Next != nil {
		b.show(b.node.Next)
		return
	}
	b.finish()
}

func (b *DialogueBox) finish() {
	b.node = nil
	b.runes = nil
	b.waiting = false
	if cb := b.onDone; cb != nil {
		b.onDone = nil
		cb()
	}
}

// Text is what the box currently displays.
func (b *DialogueBox) Text() string {
	if b.node == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(string(b.runes[:b.shown]))
	if b.waiting {
		sb.WriteString(continueMarker)
	}
	return sb.String()
}
