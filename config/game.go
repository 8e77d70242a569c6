package config

import (
	"fmt"
	"sort"

	"github.com/milk9111/outlaw/collision"
	"github.com/milk9111/outlaw/drops"
	"github.com/milk9111/outlaw/enemy"
	"github.com/milk9111/outlaw/item"
	"github.com/milk9111/outlaw/player"
	"github.com/milk9111/outlaw/shop"
	"github.com/sirupsen/logrus"
)

// GameFile is the default tuning file name.
const GameFile = "game.yaml"

// Drops configures the drop policy. A script, when set, decides and the
// static chance and weights act as its fallback.
type Drops struct {
	Chance  float64            `yaml:"chance"`
	Weights map[string]float64 `yaml:"weights"`
	Script  string             `yaml:"script,omitempty"`
}

// Game is the full simulation tuning.
type Game struct {
	TargetTPS       int     `yaml:"target_tps"`
	MaxFrameSkip    int     `yaml:"max_frame_skip"`
	MaxGameTime     float64 `yaml:"max_game_time"`
	VendorInterval  float64 `yaml:"vendor_interval"`
	HardMode        bool    `yaml:"hard_mode"`
	HardEnemyHealth int     `yaml:"hard_enemy_health"`
	Map             string  `yaml:"map"`
	Layout          string  `yaml:"layout,omitempty"`
	Seed            int64   `yaml:"seed,omitempty"`

	Radii   collision.Radii   `yaml:"radii"`
	Player  player.Config     `yaml:"player"`
	Enemy   enemy.Config      `yaml:"enemy"`
	Items   item.Tuning       `yaml:"items"`
	Drops   Drops             `yaml:"drops"`
	Catalog []shop.ItemConfig `yaml:"catalog"`
}

// DefaultGame is the built-in tuning, matching the embedded game.yaml.
func DefaultGame() Game {
	weights := make(map[string]float64)
	for _, w := range item.DefaultWeights() {
		weights[w.Type.String()] = w.Weight
	}
	return Game{
		TargetTPS:       60,
		MaxFrameSkip:    3,
		MaxGameTime:     180,
		VendorInterval:  60,
		HardEnemyHealth: 2,
		Map:             "arena.json",
		Radii:           collision.DefaultRadii(),
		Player:          player.DefaultConfig(),
		Enemy:           enemy.DefaultConfig(),
		Items:           item.DefaultTuning(),
		Drops:           Drops{Chance: 0.3, Weights: weights},
		Catalog:         shop.DefaultCatalog(),
	}
}

// LoadGame reads a tuning file over the defaults and validates it.
func LoadGame(name string) (Game, error) {
	g := DefaultGame()
	// yaml merges maps into existing ones; start the weights empty so the
	// file's table replaces the default one.
	g.Drops.Weights = nil
	if err := LoadInto(name, &g); err != nil {
		return DefaultGame(), err
	}
	if g.Drops.Weights == nil {
		g.Drops.Weights = DefaultGame().Drops.Weights
	}
	if err := g.Validate(); err != nil {
		return DefaultGame(), fmt.Errorf("config: %s: %w", name, err)
	}
	g.Player = g.Player.WithDefaults()
	g.Enemy = g.Enemy.WithDefaults()
	g.Items = g.Items.WithDefaults()
	return g, nil
}

// Validate reports the first invalid setting.
func (g Game) Validate() error {
	if g.TargetTPS <= 0 {
		return fmt.Errorf("target_tps must be positive, got %d", g.TargetTPS)
	}
	if g.MaxFrameSkip <= 0 {
		return fmt.Errorf("max_frame_skip must be positive, got %d", g.MaxFrameSkip)
	}
	if g.MaxGameTime <= 0 {
		return fmt.Errorf("max_game_time must be positive, got %v", g.MaxGameTime)
	}
	if g.VendorInterval < 0 {
		return fmt.Errorf("vendor_interval must not be negative, got %v", g.VendorInterval)
	}
	if g.Radii.Player <= 0 || g.Radii.Enemy <= 0 || g.Radii.Bullet <= 0 {
		return fmt.Errorf("radii must be positive, got %+v", g.Radii)
	}
	if g.Drops.Chance < 0 || g.Drops.Chance > 1 {
		return fmt.Errorf("drops.chance must be in [0,1], got %v", g.Drops.Chance)
	}
	for name, w := range g.Drops.Weights {
		if _, ok := item.ParseType(name); !ok {
			return fmt.Errorf("drops.weights: unknown item %q", name)
		}
		if w < 0 {
			return fmt.Errorf("drops.weights: %s is negative", name)
		}
	}
	return shop.ValidateCatalog(g.Catalog)
}

// MaxDelta is the largest dt one tick may simulate.
func (g Game) MaxDelta() float64 {
	return float64(g.MaxFrameSkip) / float64(g.TargetTPS)
}

// EnemyConfig applies hard mode to the enemy tuning.
func (g Game) EnemyConfig() enemy.Config {
	cfg := g.Enemy
	if g.HardMode && g.HardEnemyHealth > cfg.Health {
		cfg.Health = g.HardEnemyHealth
	}
	return cfg
}

// DropWeights returns the static weights in a stable order.
func (g Game) DropWeights() []item.Weight {
	names := make([]string, 0, len(g.Drops.Weights))
	for name := range g.Drops.Weights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, _ := item.ParseType(names[i])
		b, _ := item.ParseType(names[j])
		return a < b
	})
	out := make([]item.Weight, 0, len(names))
	for _, name := range names {
		t, ok := item.ParseType(name)
		if !ok {
			continue
		}
		out = append(out, item.Weight{Type: t, Weight: g.Drops.Weights[name]})
	}
	return out
}

// DropPolicy builds the configured policy. A script that fails to load or
// compile is logged and the static policy is used instead.
func (g Game) DropPolicy(log logrus.FieldLogger) drops.Policy {
	static := drops.NewStatic(g.Drops.Chance, g.DropWeights())
	if g.Drops.Script == "" {
		return static
	}
	src, err := LoadScript(g.Drops.Script)
	if err != nil {
		if log != nil {
			log.WithError(err).WithField("script", g.Drops.Script).Warn("config: drop script unavailable")
		}
		return static
	}
	policy, err := drops.NewScript(src, static, log)
	if err != nil {
		if log != nil {
			log.WithError(err).WithField("script", g.Drops.Script).Warn("config: drop script rejected")
		}
		return static
	}
	return policy
}
