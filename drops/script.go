package drops

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/outlaw/item"
	"github.com/milk9111/outlaw/logger"
	"github.com/sirupsen/logrus"
)

// Script is a drop policy written in tengo. The script reads the globals
// game_time, hard_mode and kills and must define chance (a number) and
// weights (a map of item name to weight).
type Script struct {
	compiled *tengo.Compiled
	fallback Policy
	log      logrus.FieldLogger
	warned   bool
}

// NewScript compiles src and checks that it runs. fallback answers when a
// later run fails; nil means Default().
func NewScript(src []byte, fallback Policy, log logrus.FieldLogger) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("game_time", 0.0)
	_ = script.Add("hard_mode", false)
	_ = script.Add("kills", 0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("drops: compile: %w", err)
	}
	if fallback == nil {
		fallback = Default()
	}
	s := &Script{compiled: compiled, fallback: fallback, log: logger.OrDiscard(log)}
	if _, err := s.run(Context{}); err != nil {
		return nil, err
	}
	return s, nil
}

// Decide runs the script. Errors are logged and answered by the fallback.
func (s *Script) Decide(ctx Context) Decision {
	if s == nil {
		return Default().Decide(ctx)
	}
	d, err := s.run(ctx)
	if err != nil {
		s.log.WithError(err).Warn("drops: script failed, using fallback")
		return s.fallback.Decide(ctx)
	}
	return d
}

func (s *Script) run(ctx Context) (Decision, error) {
	if err := s.compiled.Set("game_time", ctx.GameTime); err != nil {
		return Decision{}, fmt.Errorf("drops: set game_time: %w", err)
	}
	if err := s.compiled.Set("hard_mode", ctx.HardMode); err != nil {
		return Decision{}, fmt.Errorf("drops: set hard_mode: %w", err)
	}
	if err := s.compiled.Set("kills", ctx.Kills); err != nil {
		return Decision{}, fmt.Errorf("drops: set kills: %w", err)
	}
	if err := s.compiled.Run(); err != nil {
		return Decision{}, fmt.Errorf("drops: run: %w", err)
	}

	chance := s.compiled.Get("chance")
	if chance.IsUndefined() {
		return Decision{}, fmt.Errorf("drops: script does not define chance")
	}
	raw := s.compiled.Get("weights")
	if raw.IsUndefined() {
		return Decision{}, fmt.Errorf("drops: script does not define weights")
	}

	byName := raw.Map()
	weights := make([]item.Weight, 0, len(byName))
	for _, t := range item.Types() {
		v, ok := byName[t.String()]
		if !ok {
			continue
		}
		w, ok := toFloat(v)
		if !ok {
			return Decision{}, fmt.Errorf("drops: weight %s is %T, want a number", t, v)
		}
		weights = append(weights, item.Weight{Type: t, Weight: w})
	}
	if !s.warned {
		for name := range byName {
			if _, ok := item.ParseType(name); !ok {
				s.log.WithField("item", name).Warn("drops: unknown item in weights")
				s.warned = true
			}
		}
	}

	return Decision{Chance: chance.Float(), Table: item.NewWeightTable(weights)}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
