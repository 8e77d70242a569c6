// Command soak runs the simulation headless with a simple bot and reports
// how each run ended. It is used to check tuning changes without a window.
package main

import (
	"flag"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/config"
	"github.com/milk9111/outlaw/game"
	"github.com/milk9111/outlaw/levels"
	"github.com/milk9111/outlaw/logger"
	"github.com/milk9111/outlaw/shop"
	"github.com/sirupsen/logrus"
)

func main() {
	configName := flag.String("config", config.GameFile, "tuning file under config/")
	levelName := flag.String("level", levels.DefaultMap, "embedded map name")
	layout := flag.String("layout", "", "layout name inside the map file")
	botName := flag.String("bot", "soak.yaml", "bot settings under config/")
	runs := flag.Int("runs", 0, "number of runs (0 uses the bot file)")
	seed := flag.Int64("seed", 0, "seed of the first run (0 uses the bot file)")
	hard := flag.Bool("hard", false, "enable hard mode")
	flag.Parse()

	log := logger.New(logger.Options{})

	bot, err := loadBot(*botName)
	if err != nil {
		log.WithError(err).Warn("soak: using default bot")
	}
	if *runs > 0 {
		bot.Runs = *runs
	}
	if *seed != 0 {
		bot.Seed = *seed
	}

	cfg, err := config.LoadGame(*configName)
	if err != nil {
		log.WithError(err).Warn("config: using defaults")
	}
	cfg.HardMode = cfg.HardMode || *hard

	tiles, err := levels.Load(*levelName, *layout)
	if err != nil {
		log.WithError(err).Fatal("level: load")
	}

	won := 0
	for i := 0; i < bot.Runs; i++ {
		runSeed := bot.Seed + int64(i)
		sim := game.New(game.Options{
			Config: &cfg,
			Map:    tiles,
			Drops:  cfg.DropPolicy(log),
			Rand:   rand.New(rand.NewSource(runSeed)),
			Log:    log.WithField("run", i),
		})
		outcome := bot.play(sim, cfg)
		if outcome == game.OutcomeWon {
			won++
		}
		log.WithFields(logrus.Fields{
			"seed":    runSeed,
			"outcome": outcome.String(),
			"kills":   sim.Kills(),
			"coins":   sim.Player().Coins,
		}).Info("soak: run finished")
	}
	log.WithFields(logrus.Fields{"runs": bot.Runs, "won": won}).Info("soak: done")
}

// Bot is the scripted player.
type Bot struct {
	Runs int   `yaml:"runs"`
	Seed int64 `yaml:"seed"`
	// KeepDistance is how close the nearest enemy may get before the bot
	// backs away.
	KeepDistance float64         `yaml:"keep_distance"`
	Buy          []shop.ItemType `yaml:"buy"`
}

func defaultBot() Bot {
	return Bot{Runs: 10, Seed: 1, KeepDistance: 96}
}

// loadBot reads bot settings, falling back to defaultBot for a missing file
// and for zero fields.
func loadBot(name string) (Bot, error) {
	bot, err := config.LoadSpec[Bot](name)
	if err != nil {
		return defaultBot(), err
	}
	d := defaultBot()
	if bot.Runs <= 0 {
		bot.Runs = d.Runs
	}
	if bot.Seed == 0 {
		bot.Seed = d.Seed
	}
	if bot.KeepDistance <= 0 {
		bot.KeepDistance = d.KeepDistance
	}
	return bot, nil
}

// play drives one run at the target tick rate until it ends. The bot shoots
// at the nearest enemy, backs away when it gets close and buys from its list.
func (b Bot) play(sim *game.Game, cfg config.Game) game.Outcome {
	dt := 1 / float64(cfg.TargetTPS)
	limit := int((cfg.MaxGameTime+10*cfg.VendorInterval)/dt) + 1
	sim.Start()
	for i := 0; i < limit && sim.State() == game.Playing; i++ {
		if sim.VendorActive() {
			b.shop(sim)
		}
		b.steer(sim)
		if _, ok := sim.HeldItem(); ok {
			sim.UseItem()
		}
		sim.UpdateGame(dt)
		sim.Notifications()
	}
	return sim.Outcome()
}

func (b Bot) steer(sim *game.Game) {
	pos := sim.Player().Position
	var nearest cp.Vector
	best := math.Inf(1)
	for _, e := range sim.Enemies() {
		if d := e.Position.DistanceSq(pos); d < best {
			best = d
			nearest = e.Position
		}
	}
	if math.IsInf(best, 1) {
		sim.SetShootDirection(cp.Vector{}, false)
		sim.SetMoveDirection(sim.Map().Center().Sub(pos), true)
		return
	}
	aim := nearest.Sub(pos)
	sim.SetShootDirection(aim, true)
	sim.SetMoveDirection(aim.Neg(), best < b.KeepDistance*b.KeepDistance)
}

// shop buys every listed offer the bot can afford, in list order.
func (b Bot) shop(sim *game.Game) {
	offers := sim.VendorOffers()
	for _, want := range b.Buy {
		for _, offer := range offers {
			if offer.Type == want && offer.Price <= sim.Player().Coins {
				sim.Purchase(offer.Type)
			}
		}
	}
	sim.LeaveVendor()
}
