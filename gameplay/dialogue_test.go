package gameplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDialogue(t *testing.T) {
	assert.Nil(t, BuildDialogue(nil))

	n := BuildDialogue([]string{"a", "b", "c"})
	require.NotNil(t, n)
	assert.Equal(t, []string{"a", "b", "c"}, n.Lines())

	longer := n.WithLine("d")
	assert.Equal(t, []string{"a", "b", "c", "d"}, longer.Lines())
	assert.Equal(t, []string{"a", "b", "c"}, n.Lines(), "original chain unchanged")

	var empty *DialogueNode
	assert.Equal(t, []string{"x"}, empty.WithLine("x").Lines())
}

func TestDialogueBoxTypewriter(t *testing.T) {
	var b DialogueBox
	done := 0
	b.Start(BuildDialogue([]string{"Hi", "Bye"}), func() { done++ })
	require.True(t, b.Active())

	b.Advance()
	assert.Equal(t, "", b.Text(), "press in the opening frame is ignored")

	b.Update(TypewriterDelay)
	assert.Equal(t, "H", b.Text())
	b.Update(TypewriterDelay)
	assert.Equal(t, "Hi ▼", b.Text())

	b.Advance()
	assert.Equal(t, "", b.Text())

	b.Update(TypewriterDelay)
	b.Advance()
	assert.Equal(t, "Bye ▼", b.Text(), "interact completes the line")

	b.Advance()
	assert.False(t, b.Active())
	assert.Equal(t, 1, done)

	b.Advance()
	assert.Equal(t, 1, done)
}

func TestDialogueBoxLargeStep(t *testing.T) {
	var b DialogueBox
	b.Start(BuildDialogue([]string{"Hello"}), nil)
	b.Update(TypewriterDelay * 3.5)
	assert.Equal(t, "Hel", b.Text())
}

func TestDialogueBoxEmptyChainFinishes(t *testing.T) {
	var b DialogueBox
	called := false
	b.Start(nil, func() { called = true })
	assert.True(t, called)
	assert.False(t, b.Active())
}
