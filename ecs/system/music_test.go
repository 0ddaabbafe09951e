package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/lumin/ecs"
)

type fakeMusic struct {
	current string
	played  []string
	stops   int
	updates int
}

func (m *fakeMusic) Play(track string) { m.current = track; m.played = append(m.played, track) }
func (m *fakeMusic) Stop()             { m.current = ""; m.stops++ }
func (m *fakeMusic) Update()           { m.updates++ }
func (m *fakeMusic) Current() string   { return m.current }

func TestMusicFollowsWorldEvents(t *testing.T) {
	w := ecs.NewWorld()
	player := &fakeMusic{}
	sys := NewMusicSystem(player, nil)

	w.Events().Push(ecs.Event{Type: ecs.EventLevelSwitched, Data: "town_theme.wav"})
	sys.Update(w, frameDT)
	w.Events().Push(ecs.Event{Type: ecs.EventLevelSwitched, Data: "town_theme.wav"})
	sys.Update(w, frameDT)
	w.Events().Push(ecs.Event{Type: ecs.EventCombatStarted, Data: "combat.wav"})
	w.Events().Push(ecs.Event{Type: "unrelated", Data: "nope.wav"})
	sys.Update(w, frameDT)
	w.Events().Push(ecs.Event{Type: ecs.EventCombatEnded, Data: ""})
	sys.Update(w, frameDT)

	assert.Equal(t, []string{"town_theme.wav", "combat.wav"}, player.played, "same track is not restarted")
	assert.Equal(t, 1, player.stops)
	assert.Equal(t, 4, player.updates)
	assert.Zero(t, w.Events().Len(), "events drained")
}
