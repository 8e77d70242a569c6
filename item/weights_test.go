package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightTablePick(t *testing.T) {
	table := NewWeightTable([]Weight{
		{Type: Coffee, Weight: 1},
		{Type: Wheel, Weight: 0},
		{Type: Nuke, Weight: 3},
	})
	assert.Equal(t, 2, table.Len())

	cases := []struct {
		draw float64
		want Type
	}{
		{0, Coffee},
		{0.25, Coffee},
		{0.2500001, Nuke},
		{0.99, Nuke},
		{1.5, Coin},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, table.Pick(c.draw), "draw %v", c.draw)
	}
}

func TestEmptyWeightTableFallsBackToCoin(t *testing.T) {
	assert.Equal(t, Coin, WeightTable{}.Pick(0.3))
	assert.Equal(t, Coin, NewWeightTable([]Weight{{Type: Nuke, Weight: -1}}).Pick(0.3))
}

func TestDefaultWeightsCoverEveryType(t *testing.T) {
	seen := map[Type]bool{}
	for _, w := range DefaultWeights() {
		assert.Positive(t, w.Weight)
		seen[w.Type] = true
	}
	for _, typ := range Types() {
		assert.True(t, seen[typ], typ.String())
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, ok := ParseType(typ.String())
		assert.True(t, ok)
		assert.Equal(t, typ, got)
	}
	_, ok := ParseType("banana")
	assert.False(t, ok)
}
