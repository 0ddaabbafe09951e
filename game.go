package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/lumin/assets"
	"github.com/milk9111/lumin/config"
	"github.com/milk9111/lumin/ecs"
	"github.com/milk9111/lumin/ecs/component"
	"github.com/milk9111/lumin/ecs/entity"
	"github.com/milk9111/lumin/ecs/system"
	"github.com/milk9111/lumin/gameplay"
	"github.com/milk9111/lumin/input"
	"github.com/milk9111/lumin/levels"
	"github.com/milk9111/lumin/prefabs"
	"github.com/milk9111/lumin/render"
	"github.com/milk9111/lumin/save"
	"github.com/milk9111/lumin/world"
)

var errQuit = errors.New("quit")

var clearColor = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	entities  *ecs.World
	scheduler *ecs.Scheduler
	world     *world.World
	player    ecs.Entity
	saveID    uuid.UUID

	levels  *levels.Set
	cache   *assets.Cache
	mapping *input.Mapping
	ui      *system.UIState
	combat  *system.CombatSystem
	policy  *gameplay.ScriptPolicy
	store   save.Store
	watcher *prefabs.Watcher

	queue    *render.Queue
	fader    *render.Fader
	camera   *render.Camera
	tilemap  *system.TilemapRenderer
	sprites  *system.SpriteRenderer
	hud      *system.HUDRenderer
	pauseUI  *ebitenui.UI
	lastTick time.Time
	quit     bool
}

func NewGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	set, err := loadLevels(cfg.Paths.Levels)
	if err != nil {
		return nil, err
	}
	catalog, err := gameplay.LoadEmbeddedCatalog(context.Background())
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	npcSpec, err := prefabs.LoadNPCSpec()
	if err != nil {
		return nil, err
	}
	stationSpec, err := prefabs.LoadStationSpec()
	if err != nil {
		return nil, err
	}

	mapping := input.DefaultMapping()
	if err := mapping.Apply(cfg.Keybinds); err != nil {
		return nil, fmt.Errorf("keybinds: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		entities: ecs.NewWorld(),
		saveID:   uuid.New(),
		levels:   set,
		cache:    assets.NewCache(os.DirFS(cfg.Paths.Assets), cfg.Audio.SampleRate, logger.Named("assets")),
		mapping:  mapping,
		ui:       &system.UIState{},
		policy:   gameplay.NewScriptPolicy(prefabs.LoadScript, logger.Named("script")),
		store:    save.NewFileStore(cfg.Paths.Saves, cfg.Save.Slot, cfg.Save.Passphrase, logger.Named("save")),
		queue:    render.NewQueue(cfg.Display.Width, cfg.Display.Height),
		fader:    &render.Fader{},
		camera:   render.NewCamera(cfg.Display.Width, cfg.Display.Height),
	}

	base := append([]string{playerSpec.Sprite.Texture}, set.Tilesets()...)
	if err := g.cache.Preload(base...); err != nil {
		return nil, err
	}

	g.world = world.New(g.entities, world.Options{
		Levels:      set,
		Catalog:     catalog,
		Textures:    g.cache,
		Queue:       g.queue,
		Fader:       g.fader,
		Camera:      g.camera,
		NPCSpec:     npcSpec,
		StationSpec: stationSpec,
		OnPhase: func(k world.Kind, p world.Phase) {
			logger.Debug("transition", zap.Stringer("kind", k), zap.Stringer("phase", p))
		},
		Logger: logger.Named("world"),
	})

	clips, err := g.cache.Animations(playerSpec.Animations)
	if err != nil {
		logger.Warn("player animations", zap.String("set", playerSpec.Animations), zap.Error(err))
	}
	if err := g.world.LoadLevel(cfg.Dev.StartLevel); err != nil {
		return nil, err
	}
	spawn, _ := g.world.SpawnPoint()
	g.player, err = entity.NewPlayerAt(g.entities, playerSpec, clips, catalog, float64(spawn.X), float64(spawn.Y))
	if err != nil {
		return nil, err
	}
	g.restore()

	crafter := gameplay.NewCrafter(catalog, logger.Named("crafting"))
	interaction := system.NewInteractionSystem(g.world, g.ui, catalog, crafter, logger.Named("interaction"))
	g.combat = system.NewCombatSystem(g.world, g.policy, g.ui, logger.Named("combat"))
	interaction.OnCombat = g.startCombat
	g.combat.OnFinished = func(o gameplay.Outcome) {
		logger.Info("combat finished", zap.Stringer("outcome", o))
	}

	ts := g.world.TileSize()
	music := system.NewEbitenMusic(audio.NewContext(cfg.Audio.SampleRate), g.cache, logger.Named("music"))
	music.Volume = cfg.Audio.MusicVolume
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(nil, mapping),
		system.NewInventorySystem(g.ui),
		interaction,
		system.NewDialogueSystem(g.ui),
		system.NewCraftingSystem(g.ui, crafter, catalog, logger.Named("crafting")),
		system.NewPlayerMovementSystem(g.world, g.ui, logger.Named("movement")),
		g.combat,
		g.world,
		system.NewAnimationSystem(),
		system.NewCameraSystem(g.camera, ts),
		system.NewMusicSystem(music, logger.Named("music")),
	)

	g.tilemap = system.NewTilemapRenderer(g.world, g.cache, g.camera, logger.Named("render"))
	g.tilemap.ShowCollision = cfg.Dev.ShowCollisionBoxes
	g.sprites = system.NewSpriteRenderer(g.cache, g.camera, ts, logger.Named("render"))
	g.hud = system.NewHUDRenderer(g.ui, g.combat, catalog, g.cache, assets.DefaultFont, logger.Named("hud"))
	g.pauseUI = NewPauseUI(g)

	if cfg.Dev.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadLevels(dir string) (*levels.Set, error) {
	if dir == "" {
		return levels.LoadEmbedded(levels.DefaultSet)
	}
	return levels.LoadSet(os.DirFS(dir), levels.DefaultSet)
}

func (g *Game) startCombat(encounterID string) {
	err := g.world.EnterCombat(encounterID, func() {
		g.combat.Begin(g.entities)
	})
	if err != nil {
		g.logger.Warn("enter combat", zap.String("encounter", encounterID), zap.Error(err))
	}
}

// Update runs one frame. A panic inside a system is logged and the frame
// dropped; the previous frame stays on screen.
func (g *Game) Update() error {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("frame panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	if g.quit {
		return errQuit
	}

	g.reload()
	g.togglePause()
	if g.ui.Paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.entities, g.frameTime())
	return nil
}

// frameTime is the wall time since the last frame, capped so a stall does
// not teleport anything.
func (g *Game) frameTime() float64 {
	now := time.Now()
	defer func() { g.lastTick = now }()
	if g.lastTick.IsZero() {
		return 1.0 / float64(ebiten.TPS())
	}
	return min(now.Sub(g.lastTick).Seconds(), 0.1)
}

func (g *Game) togglePause() {
	key, ok := g.mapping.Key(input.Options)
	if !ok || !inpututil.IsKeyJustPressed(key) {
		return
	}
	if g.ui.Combat || g.world.IsTransitioning() {
		return
	}
	g.ui.Paused = !g.ui.Paused
	g.lastTick = time.Time{}
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.DrainErrors() {
		g.logger.Warn("watcher", zap.Error(err))
	}
	for _, path := range g.watcher.Drain() {
		switch prefabs.Classify(path) {
		case prefabs.ChangeScript:
			g.policy.Invalidate(filepath.Base(path))
			g.logger.Info("script reloaded", zap.String("path", path))
		default:
			// specs and levels are read once at startup
			g.logger.Info("change applies on restart", zap.String("path", path))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	q := g.queue
	q.Enqueue(render.Clear(clearColor))
	g.tilemap.Draw(q)
	g.sprites.Draw(g.entities, q)
	g.hud.Draw(g.entities, q)
	q.EnqueueNamed()
	g.fader.Overlay(q)
	q.Flush(render.NewEbitenSurface(screen))

	if g.ui.Paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Display.Width, g.cfg.Display.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// Save writes the current session to the save slot.
func (g *Game) Save() error {
	state := save.State{
		ID:            g.saveID,
		LevelID:       g.world.CurrentLevelID(),
		Interactions:  g.world.InteractionRecord(),
		LevelChecksum: g.levels.Checksum(),
	}
	if p, ok := ecs.Get(g.entities, g.player, component.PlayerComponent); ok {
		state.PlayerName = p.Name
		state.Facing = p.Facing
	}
	if t, ok := ecs.Get(g.entities, g.player, component.TransformComponent); ok {
		state.PosX, state.PosY = t.X, t.Y
	}
	if inv, ok := ecs.Get(g.entities, g.player, component.InventoryComponent); ok {
		state.Items = inv.Items
		state.Essences = inv.Essences
	}
	if err := g.store.Save(state); err != nil {
		return err
	}
	g.logger.Info("game saved", zap.Int("level", state.LevelID))
	return nil
}

// restore applies the save slot, if any, on top of a freshly spawned player.
// A save made against different level data is ignored.
func (g *Game) restore() {
	state, ok, err := g.store.Load()
	if err != nil {
		g.logger.Warn("load save", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if state.LevelChecksum != g.levels.Checksum() {
		g.logger.Warn("save made for different levels, starting fresh",
			zap.Uint64("saved", state.LevelChecksum),
			zap.Uint64("current", g.levels.Checksum()),
		)
		return
	}
	if err := g.world.LoadLevel(state.LevelID); err != nil {
		g.logger.Warn("restore level", zap.Int("level", state.LevelID), zap.Error(err))
		return
	}
	g.world.RestoreInteractions(state.Interactions)
	g.saveID = state.ID

	if p, ok := ecs.Get(g.entities, g.player, component.PlayerComponent); ok {
		p.Facing = state.Facing
	}
	if t, ok := ecs.Get(g.entities, g.player, component.TransformComponent); ok {
		t.X, t.Y = state.PosX, state.PosY
	}
	if m, ok := ecs.Get(g.entities, g.player, component.SmoothMovementComponent); ok {
		m.TargetX, m.TargetY = state.PosX, state.PosY
		m.Moving = false
	}
	if inv, ok := ecs.Get(g.entities, g.player, component.InventoryComponent); ok {
		inv.Items = state.Items
		inv.Essences = state.Essences
	}
	g.logger.Info("save restored",
		zap.Stringer("id", state.ID),
		zap.Int("level", state.LevelID),
		zap.Time("saved_at", state.SavedAt),
	)
}
