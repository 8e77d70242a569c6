package item

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItems() *Manager {
	return NewManager(32, 10, rand.New(rand.NewSource(12345)), nil)
}

func itemKinds(evts []Event) []EventKind {
	out := make([]EventKind, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.Kind)
	}
	return out
}

func TestCreateTypedTruncatesToCell(t *testing.T) {
	m := newTestItems()
	_, ok := m.CreateTyped(cp.Vector{X: 70, Y: 33}, Coffee)
	require.True(t, ok)
	it, ok := m.ItemAt(level.Cell{X: 2, Y: 1})
	require.True(t, ok)
	assert.Equal(t, Coffee, it.Type)
	assert.Equal(t, 10.0, it.RemainTime)

	_, ok = m.CreateTyped(cp.Vector{X: 95, Y: 63}, Nuke)
	assert.False(t, ok, "one item per cell")
	assert.Len(t, m.Items(), 1)
}

func TestCreateRandomUsesTable(t *testing.T) {
	m := newTestItems()
	table := NewWeightTable([]Weight{{Type: SmokeBomb, Weight: 1}})
	_, ok := m.CreateRandom(cp.Vector{X: 10, Y: 10}, table)
	require.True(t, ok)
	assert.Equal(t, SmokeBomb, m.Items()[0].Type)
}

func TestItemsExpire(t *testing.T) {
	m := newTestItems()
	m.CreateTyped(cp.Vector{X: 10, Y: 10}, Coin)
	m.Events()
	far := level.Cell{X: 9, Y: 9}

	for i := 0; i < 9; i++ {
		m.Tick(1, far)
	}
	assert.Len(t, m.Items(), 1)
	m.Tick(1, far)
	assert.Empty(t, m.Items())
	assert.Equal(t, []EventKind{Expired}, itemKinds(m.Events()))

	_, ok := m.CreateTyped(cp.Vector{X: 10, Y: 10}, Coin)
	assert.True(t, ok, "cell is free again")
}

func TestInstantItemsApplyOnContact(t *testing.T) {
	m := newTestItems()
	m.CreateTyped(cp.Vector{X: 10, Y: 10}, FiveCoins)
	m.Events()
	m.Tick(0.1, level.Cell{})
	evts := m.Events()
	require.Len(t, evts, 1)
	assert.Equal(t, ApplyRequested, evts[0].Kind)
	assert.Equal(t, FiveCoins, evts[0].Item.Type)
	_, held := m.HeldItem()
	assert.False(t, held)
	assert.Empty(t, m.Items())
}

func TestPickupFillsSlotThenAutoApplies(t *testing.T) {
	m := newTestItems()
	m.CreateTyped(cp.Vector{X: 10, Y: 10}, Coffee)
	m.CreateTyped(cp.Vector{X: 42, Y: 10}, Wheel)
	m.Events()

	m.Tick(0.1, level.Cell{X: 0, Y: 0})
	typ, ok := m.HeldItem()
	require.True(t, ok)
	assert.Equal(t, Coffee, typ)
	assert.Equal(t, []EventKind{PickedUp}, itemKinds(m.Events()))

	m.Tick(0.1, level.Cell{X: 1, Y: 0})
	evts := m.Events()
	require.Len(t, evts, 1)
	assert.Equal(t, ApplyRequested, evts[0].Kind)
	assert.True(t, evts[0].Auto)
	assert.Equal(t, Wheel, evts[0].Item.Type)

	typ, _ = m.HeldItem()
	assert.Equal(t, Coffee, typ, "held item unchanged")
	assert.Empty(t, m.Items())
}

func TestUseHeld(t *testing.T) {
	m := newTestItems()
	assert.False(t, m.UseHeld())

	m.CreateTyped(cp.Vector{X: 10, Y: 10}, Tombstone)
	m.Tick(0.1, level.Cell{})
	m.Events()

	assert.True(t, m.UseHeld())
	evts := m.Events()
	require.Len(t, evts, 1)
	assert.Equal(t, Tombstone, evts[0].Item.Type)
	assert.False(t, evts[0].Auto)
	_, ok := m.HeldItem()
	assert.False(t, ok)
	assert.False(t, m.UseHeld())
}

func TestClearKeepsHeldResetDropsIt(t *testing.T) {
	m := newTestItems()
	m.CreateTyped(cp.Vector{X: 10, Y: 10}, Badge)
	m.Tick(0.1, level.Cell{})
	m.CreateTyped(cp.Vector{X: 100, Y: 100}, Coin)

	m.Clear()
	assert.Empty(t, m.Items())
	_, ok := m.HeldItem()
	assert.True(t, ok)

	m.Reset()
	_, ok = m.HeldItem()
	assert.False(t, ok)
	assert.Nil(t, m.Events())
}
