package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/assets"
	"github.com/milk9111/warehouse/config"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/system"
	"github.com/milk9111/warehouse/levels"
	"github.com/milk9111/warehouse/prefabs"
)

type Game struct {
	cfg *config.Config
	log *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	warehouse *levels.Warehouse
	mixer     *assets.Mixer
	watcher   *prefabs.Watcher

	failureUI *ebitenui.UI
	quit      bool
}

func NewGame(cfg *config.Config, log *zap.Logger) (*Game, error) {
	fsys, err := assets.Open(cfg.Assets.Root)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		log:       log,
		world:     ecs.NewWorld(),
		scheduler: ecs.NewScheduler(),
		mixer:     assets.NewMixer(cfg.Assets.SampleRate),
	}

	g.warehouse, err = levels.NewWarehouse(g.world, levels.Options{
		Assets:      fsys,
		Concurrency: cfg.Assets.Concurrency,
		SampleRate:  cfg.Assets.SampleRate,
		Gravity:     cfg.Physics.Gravity,
		Keys:        system.EbitenKeys{},
		Mixer:       g.mixer,
		Log:         log,
	})
	if err != nil {
		return nil, err
	}
	g.warehouse.Install(g.scheduler)

	if cfg.Debug.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn("prefab hot reload disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadPrefabs()
	g.scheduler.Update(g.world)

	if g.warehouse.Phase() == component.LoadPhaseFailed {
		if g.failureUI == nil {
			g.failureUI = newFailureUI(g.cfg.Window.Width, g.cfg.Window.Height, g.warehouse, func() { g.quit = true })
		}
		g.failureUI.Update()
	}
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			g.log.Warn("prefab watcher", zap.Error(err))
		}
	default:
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	if err := g.warehouse.ReloadPrefabs(changed); err != nil {
		g.log.Error("reload prefabs", zap.Strings("files", changed), zap.Error(err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.Debug.Physics {
		system.DrawPhysicsDebug(g.warehouse.Space(), screen, system.DebugView{
			OriginX: float64(g.cfg.Window.Width) / 2,
			OriginY: float64(g.cfg.Window.Height) * 0.75,
			Scale:   g.cfg.Debug.PixelScale,
		})
	}
	if g.cfg.Debug.Overlay {
		system.DrawLoadDebug(g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.2f", ebiten.ActualTPS()), 0, g.cfg.Window.Height-16)
	}
	if g.failureUI != nil {
		g.failureUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if err := g.mixer.Close(); err != nil {
		g.log.Warn("close mixer", zap.Error(err))
	}
}
