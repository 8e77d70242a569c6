package drops

import (
	"math/rand"

	"github.com/milk9111/outlaw/item"
)

// Context is what a policy may look at when an enemy dies.
type Context struct {
	GameTime float64
	HardMode bool
	Kills    int
}

// Decision is the chance of a drop and the table to draw it from.
type Decision struct {
	Chance float64
	Table  item.WeightTable
}

// Policy decides drops.
type Policy interface {
	Decide(ctx Context) Decision
}

// Static always returns the same decision.
type Static struct {
	decision Decision
}

func NewStatic(chance float64, weights []item.Weight) *Static {
	return &Static{decision: Decision{Chance: chance, Table: item.NewWeightTable(weights)}}
}

// Default is the built-in policy: a 30% chance over item.DefaultWeights.
func Default() *Static {
	return NewStatic(0.3, item.DefaultWeights())
}

func (s *Static) Decide(Context) Decision {
	if s == nil {
		return Default().decision
	}
	return s.decision
}

// Roll asks p for a decision and draws against its chance. It reports the
// table to pick from when a drop happens.
func Roll(p Policy, ctx Context, rng *rand.Rand) (item.WeightTable, bool) {
	if p == nil || rng == nil {
		return item.WeightTable{}, false
	}
	d := p.Decide(ctx)
	if d.Chance <= 0 || rng.Float64() >= d.Chance {
		return item.WeightTable{}, false
	}
	return d.Table, true
}
