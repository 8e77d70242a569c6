package main

import (
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/config"
	"github.com/milk9111/outlaw/game"
	"github.com/milk9111/outlaw/shop"
	"github.com/sirupsen/logrus"
)

// App adapts the simulation to ebiten: it polls input, feeds wall-clock
// deltas to the game and draws the result.
type App struct {
	sim   *game.Game
	input *Input
	log   logrus.FieldLogger
	debug bool

	configName string
	watcher    *config.Watcher
	tracker    *config.Tracker

	pauseUI     *ebitenui.UI
	vendorUI    *ebitenui.UI
	vendorDirty bool

	width, height int
	last          time.Time
	frames        int
	feed          []string
}

func NewApp(sim *game.Game, configName string, watcher *config.Watcher, debug bool, log logrus.FieldLogger) *App {
	a := &App{
		sim:        sim,
		input:      NewInput(),
		log:        log,
		debug:      debug,
		configName: configName,
		watcher:    watcher,
		tracker:    config.NewTracker(configName),
		width:      common.BaseWidth,
		height:     common.BaseHeight,
	}
	if m := sim.Map(); !m.IsEmpty() {
		a.width, a.height = int(m.PixelWidth()), int(m.PixelHeight())
	}
	a.pauseUI = NewPauseUI(a)
	return a
}

func (a *App) Update() error {
	a.frames++
	now := time.Now()
	dt := 0.0
	if !a.last.IsZero() {
		dt = now.Sub(a.last).Seconds()
	}
	a.last = now

	a.reload()
	a.input.Update(a.sim.Player().Position)
	if a.input.ToggleDebug {
		a.debug = !a.debug
	}

	switch a.sim.State() {
	case game.Menu, game.GameOver:
		if a.input.Confirm {
			a.sim.Start()
		}
	case game.Paused:
		a.pauseUI.Update()
		if a.input.PausePressed {
			a.sim.Resume()
		}
	case game.Playing:
		a.updatePlaying(dt)
	}

	a.drainNotifications()
	return nil
}

func (a *App) updatePlaying(dt float64) {
	if a.input.PausePressed {
		a.sim.Pause()
		return
	}

	if a.sim.VendorActive() {
		if a.vendorUI == nil || a.vendorDirty {
			a.vendorUI = NewVendorUI(a)
			a.vendorDirty = false
		}
		a.vendorUI.Update()
		if t, ok := offerAt(a.sim.VendorOffers(), a.input.Buy); ok {
			a.buy(t)
		}
		if a.input.LeaveVendor {
			a.sim.LeaveVendor()
		}
	}

	a.sim.SetMoveDirection(a.input.Move, a.input.Moving)
	a.sim.SetShootDirection(a.input.Shoot, a.input.Firing)
	if a.input.UseItem {
		a.sim.UseItem()
	}
	a.sim.UpdateGame(dt)
}

func (a *App) buy(t shop.ItemType) {
	a.sim.Purchase(t)
	a.vendorDirty = true
}

// reload picks up edited config files. Changes apply from the next run.
func (a *App) reload() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			if config.IsConfigFile(name) && !a.tracker.Changed() {
				continue
			}
			cfg, err := config.LoadGame(a.configName)
			if err != nil {
				a.log.WithError(err).WithField("file", name).Warn("config: reload failed")
				continue
			}
			a.sim.Reconfigure(cfg, cfg.DropPolicy(a.log))
			a.log.WithField("file", name).Info("config: reloaded")
		case err, ok := <-a.watcher.Errors:
			if ok {
				a.log.WithError(err).Warn("config: watcher")
			}
		default:
			return
		}
	}
}

const feedSize = 6

func (a *App) drainNotifications() {
	for _, n := range a.sim.Notifications() {
		switch n.Kind {
		case game.VendorOpened, game.Purchased, game.PurchaseRejected, game.CoinsChanged:
			a.vendorDirty = true
		case game.VendorClosed:
			a.vendorUI = nil
		}
		if a.debug {
			a.log.WithFields(logrus.Fields{"kind": n.Kind.String(), "name": n.Name, "value": n.Value}).Debug("game: notification")
		}
		if n.Kind == game.PlayerShot || n.Kind == game.EnemySpawned {
			continue
		}
		a.feed = append(a.feed, n.String())
		if len(a.feed) > feedSize {
			a.feed = a.feed[len(a.feed)-feedSize:]
		}
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	drawWorld(screen, a.sim)
	drawHUD(screen, a)

	switch a.sim.State() {
	case game.Paused:
		a.pauseUI.Draw(screen)
	case game.Playing:
		if a.sim.VendorActive() && a.vendorUI != nil {
			a.vendorUI.Draw(screen)
		}
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Close stops the config watcher.
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Close()
}
