package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/outlaw/config"
	"github.com/milk9111/outlaw/game"
	"github.com/milk9111/outlaw/level"
	"github.com/milk9111/outlaw/levels"
	"github.com/milk9111/outlaw/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configName := flag.String("config", config.GameFile, "tuning file under config/ (embedded copy if absent)")
	levelName := flag.String("level", "", "map file in levels/ or a path on disk (default from config)")
	layout := flag.String("layout", "", "layout name inside the map file")
	hard := flag.Bool("hard", false, "enable hard mode")
	seed := flag.Int64("seed", 0, "rng seed (0 uses the config seed)")
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	watch := flag.Bool("watch", true, "reload config/ files when they change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	opts := logger.Options{}
	if *debug {
		opts.Level = "debug"
	}
	log := logger.New(opts)

	cfg, err := config.LoadGame(*configName)
	if err != nil {
		log.WithError(err).Warn("config: using defaults")
	}
	if *hard {
		cfg.HardMode = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	tiles := loadMap(cfg, *levelName, *layout, log)

	sim := game.New(game.Options{
		Config: &cfg,
		Map:    tiles,
		Drops:  cfg.DropPolicy(log),
		Log:    log,
	})

	var watcher *config.Watcher
	if *watch {
		watcher = watchConfig(log)
	}

	app := NewApp(sim, *configName, watcher, *debug, log)
	defer app.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowSize(app.width*2, app.height*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("outlaw")
	ebiten.SetTPS(cfg.TargetTPS)

	if err := ebiten.RunGame(app); err != nil {
		log.WithError(err).Fatal("game: run")
	}
}

// loadMap prefers a file on disk, then the embedded levels. A map that cannot
// be loaded leaves the arena empty.
func loadMap(cfg config.Game, name, layout string, log logrus.FieldLogger) *level.TileMap {
	if name == "" {
		name = cfg.Map
	}
	if name == "" {
		name = levels.DefaultMap
	}
	if layout == "" {
		layout = cfg.Layout
	}

	if _, err := os.Stat(name); err == nil {
		tiles, err := level.Load(name, layout)
		if err == nil {
			return tiles
		}
		log.WithError(err).WithField("map", name).Warn("level: disk map rejected")
	}
	tiles, err := levels.Load(name, layout)
	if err != nil {
		log.WithError(err).WithField("map", name).Error("level: using empty map")
		return level.Empty()
	}
	log.WithFields(logrus.Fields{"map": tiles.Name, "width": tiles.Width, "height": tiles.Height}).Info("level: loaded")
	return tiles
}

// watchConfig watches the on-disk config directory if there is one.
func watchConfig(log logrus.FieldLogger) *config.Watcher {
	dirs := []string{}
	for _, dir := range []string{config.Dir, config.Dir + "/scripts"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.WithError(err).Warn("config: watcher disabled")
		return nil
	}
	log.WithField("dirs", dirs).Info("config: watching")
	return w
}
