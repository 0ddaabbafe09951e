package system

import (
	"bytes"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/lumin/ecs"
)

const (
	defaultMusicVolume     = 1.0
	defaultMusicFadeFrames = 30
)

// MusicPlayer plays one looping track at a time. Update is called every
// frame so implementations can crossfade.
type MusicPlayer interface {
	Play(track string)
	Stop()
	Update()
	Current() string
}

// MusicSystem is the only consumer of the world event queue: it switches
// tracks when a level loads or a battle starts or ends.
type MusicSystem struct {
	player MusicPlayer
	logger *zap.Logger
}

func NewMusicSystem(player MusicPlayer, logger *zap.Logger) *MusicSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MusicSystem{player: player, logger: logger}
}

func (m *MusicSystem) Update(w *ecs.World, _ float64) {
	for _, ev := range w.Events().Drain() {
		switch ev.Type {
		case ecs.EventLevelSwitched, ecs.EventCombatStarted, ecs.EventCombatEnded:
			track, _ := ev.Data.(string)
			m.request(strings.TrimSpace(track))
		}
	}
	if m.player != nil {
		m.player.Update()
	}
}

func (m *MusicSystem) request(track string) {
	if m.player == nil || track == m.player.Current() {
		return
	}
	m.logger.Debug("music", zap.String("track", track))
	if track == "" {
		m.player.Stop()
		return
	}
	m.player.Play(track)
}

// SoundSource returns decoded PCM for a track id.
type SoundSource interface {
	Sound(id string) ([]byte, error)
}

// EbitenMusic fades the current track out over a number of frames before
// starting the next one.
type EbitenMusic struct {
	ctx    *audio.Context
	sounds SoundSource
	logger *zap.Logger

	Volume     float64
	FadeFrames int

	players map[string]*audio.Player
	current string
	volume  float64

	pending   string
	switching bool
	fadeStep  float64
}

func NewEbitenMusic(ctx *audio.Context, sounds SoundSource, logger *zap.Logger) *EbitenMusic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EbitenMusic{
		ctx:        ctx,
		sounds:     sounds,
		logger:     logger,
		Volume:     defaultMusicVolume,
		FadeFrames: defaultMusicFadeFrames,
		players:    make(map[string]*audio.Player),
	}
}

func (m *EbitenMusic) Current() string {
	if m.switching {
		return m.pending
	}
	return m.current
}

func (m *EbitenMusic) Play(track string) {
	m.request(track)
}

func (m *EbitenMusic) Stop() {
	m.request("")
}

func (m *EbitenMusic) request(track string) {
	m.pending = track
	m.switching = true
	frames := m.FadeFrames
	if frames <= 0 {
		frames = defaultMusicFadeFrames
	}
	m.fadeStep = m.volume / float64(frames)
	if m.fadeStep <= 0 {
		m.fadeStep = 1
	}
}

func (m *EbitenMusic) Update() {
	cur := m.players[m.current]
	if !m.switching {
		if cur != nil && !cur.IsPlaying() {
			cur.Rewind()
			cur.Play()
		}
		return
	}

	if cur != nil {
		m.volume -= m.fadeStep
		if m.volume > 0 {
			cur.SetVolume(m.volume)
			return
		}
		cur.Pause()
		_ = cur.Rewind()
	}
	m.switchToPending()
}

func (m *EbitenMusic) switchToPending() {
	track := m.pending
	m.pending = ""
	m.switching = false
	m.current = ""
	m.volume = 0
	if track == "" {
		return
	}

	p, err := m.playerFor(track)
	if err != nil {
		m.logger.Warn("load music", zap.String("track", track), zap.Error(err))
		return
	}
	m.current = track
	m.volume = min(m.Volume, 1)
	_ = p.Rewind()
	p.SetVolume(m.volume)
	p.Play()
}

func (m *EbitenMusic) playerFor(track string) (*audio.Player, error) {
	if p, ok := m.players[track]; ok {
		return p, nil
	}
	pcm, err := m.sounds.Sound(track)
	if err != nil {
		return nil, err
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := m.ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	m.players[track] = p
	return p, nil
}
