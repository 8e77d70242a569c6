package item

// Weight is the relative chance of one item type in a drop.
type Weight struct {
	Type   Type
	Weight float64
}

type cumulative struct {
	typ   Type
	upper float64
}

// WeightTable picks item types from a uniform draw in [0,1).
type WeightTable struct {
	entries []cumulative
}

// NewWeightTable normalises weights into a cumulative table. Non-positive
// weights are dropped.
func NewWeightTable(weights []Weight) WeightTable {
	total := 0.0
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return WeightTable{}
	}
	entries := make([]cumulative, 0, len(weights))
	acc := 0.0
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		acc += w.Weight / total
		entries = append(entries, cumulative{typ: w.Type, upper: acc})
	}
	return WeightTable{entries: entries}
}

// Pick returns the first type whose cumulative weight reaches draw. Draws past
// the end of the table, and empty tables, yield a coin.
func (t WeightTable) Pick(draw float64) Type {
	for _, e := range t.entries {
		if e.upper >= draw {
			return e.typ
		}
	}
	return Coin
}

func (t WeightTable) Len() int {
	return len(t.entries)
}

// DefaultWeights is the built-in drop table.
func DefaultWeights() []Weight {
	return []Weight{
		{Type: Coin, Weight: 30},
		{Type: FiveCoins, Weight: 8},
		{Type: ExtraLife, Weight: 3},
		{Type: Coffee, Weight: 10},
		{Type: MachineGun, Weight: 10},
		{Type: Wheel, Weight: 8},
		{Type: Shotgun, Weight: 8},
		{Type: Badge, Weight: 6},
		{Type: Tombstone, Weight: 6},
		{Type: SmokeBomb, Weight: 6},
		{Type: Nuke, Weight: 5},
	}
}
