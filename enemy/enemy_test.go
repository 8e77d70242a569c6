package enemy

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/collision"
	"github.com/milk9111/outlaw/level"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, tiles *level.TileMap, tune func(*Config)) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	if tune != nil {
		tune(&cfg)
	}
	log, _ := test.NewNullLogger()
	space := collision.New(tiles, collision.DefaultRadii())
	return NewManager(space, cfg, rand.New(rand.NewSource(12345)), log)
}

func kinds(evts []Event) []EventKind {
	out := make([]EventKind, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.Kind)
	}
	return out
}

func TestSpawnTickWaitsForInterval(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), nil)
	m.SpawnTick(2.9)
	assert.Equal(t, 0, m.Count())
	m.SpawnTick(0.2)
	n := m.Count()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 3)
	assert.InDelta(t, 2.85, m.SpawnInterval(), 1e-9)
}

func TestSpawnPositionsAreEdgeMidpoints(t *testing.T) {
	tiles := openMap(16, 16)
	m := newTestManager(t, tiles, nil)
	for i := 0; i < 20; i++ {
		m.SpawnTick(m.SpawnInterval())
	}
	require.NotZero(t, m.Count())
	for _, e := range m.Enemies() {
		c := tiles.CellAt(e.Position)
		onEdge := c.X == 0 || c.Y == 0 || c.X == 15 || c.Y == 15
		assert.True(t, onEdge, "cell %v", c)
		if c.Y == 0 || c.Y == 15 {
			assert.True(t, c.X >= 7 && c.X <= 9, "cell %v", c)
		} else {
			assert.True(t, c.Y >= 7 && c.Y <= 9, "cell %v", c)
		}
	}
}

func TestSpawnIntervalDecaysToFloor(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) { c.MaxEnemies = 1000 })
	prev := m.SpawnInterval()
	for i := 0; i < 40; i++ {
		m.SpawnTick(m.SpawnInterval())
		m.ClearAll()
		assert.LessOrEqual(t, m.SpawnInterval(), prev)
		prev = m.SpawnInterval()
	}
	assert.InDelta(t, 0.9, m.SpawnInterval(), 1e-9)

	m.ResetSpawner()
	assert.Equal(t, 3.0, m.SpawnInterval())
}

func TestSpawnRespectsCapacity(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) { c.MaxEnemies = 2 })
	for i := 0; i < 10; i++ {
		m.SpawnTick(5)
	}
	assert.Equal(t, 2, m.Count())
	assert.False(t, m.SpawnAt(cp.Vector{X: 100, Y: 100}))
}

func TestSpawnSkipsBlockedAndOccupiedCells(t *testing.T) {
	// only the left side midpoint cells exist as floor; the rest is wall
	rows := make([][]int, 16)
	for y := range rows {
		rows[y] = make([]int, 16)
	}
	rows[8][0] = 1
	tiles := level.New(rows, 32)
	m := newTestManager(t, tiles, func(c *Config) {
		c.BatchMin = 3
		c.BatchMax = 3
	})
	for i := 0; i < 30; i++ {
		m.SpawnTick(10)
	}
	require.Equal(t, 1, m.Count())
	assert.Equal(t, tiles.CellCenter(level.Cell{X: 0, Y: 8}), m.Enemies()[0].Position)
}

func TestSpawnAtEvents(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) { c.Health = 2 })
	require.True(t, m.SpawnAt(cp.Vector{X: 100, Y: 100}))
	evts := m.Events()
	assert.Equal(t, []EventKind{Spawned, CountChanged}, kinds(evts))
	assert.Equal(t, 1, evts[1].Count)

	e := m.Enemies()[0]
	assert.Equal(t, 2, e.Health)
	assert.True(t, e.Active)
	// wander target lies in the map shrunk by three cells
	assert.True(t, e.Target.X >= 96 && e.Target.X <= 416)
	assert.True(t, e.Target.Y >= 96 && e.Target.Y <= 416)
}

func TestSmartRatio(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) { c.MaxEnemies = 3000 })
	for i := 0; i < 3000; i++ {
		m.SpawnAt(cp.Vector{})
	}
	smart := 0
	for _, e := range m.Enemies() {
		if e.Smart {
			smart++
		}
	}
	assert.InDelta(t, 2.0/3.0, float64(smart)/3000, 0.05)
}

func TestUpdateAllChasesPlayer(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) {
		c.SmartChance = 1
		c.SpawnInterval = 1000
	})
	start := cp.Vector{X: 48, Y: 240}
	m.SpawnAt(start)
	player := cp.Vector{X: 400, Y: 240}

	// first retarget after one second
	for i := 0; i < 61; i++ {
		m.UpdateAll(1.0/60, player, false, false)
	}
	e := m.Enemies()[0]
	assert.Equal(t, player, e.Target)

	before := e.Position.Distance(player)
	m.UpdateAll(1.0/60, player, false, false)
	e = m.Enemies()[0]
	assert.Less(t, e.Position.Distance(player), before)
	assert.InDelta(t, 60, e.Velocity.Length(), 1e-9)
}

func TestNonSmartTargetOvershootsPlayer(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) {
		c.SmartChance = 0
		c.SpawnInterval = 1000
	})
	m.SpawnAt(cp.Vector{X: 48, Y: 400})
	player := cp.Vector{X: 200, Y: 200}
	m.UpdateAll(1.0, player, false, false)
	e := m.Enemies()[0]
	assert.Equal(t, cp.Vector{X: 296, Y: 104}, e.Target)
}

func TestStealthAndGameOverFreeze(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) { c.SpawnInterval = 0.5 })
	m.SpawnAt(cp.Vector{X: 100, Y: 100})
	m.UpdateAll(0.1, cp.Vector{X: 400, Y: 400}, false, false)
	require.NotZero(t, m.Enemies()[0].Velocity.Length())

	pos := m.Enemies()[0].Position
	m.UpdateAll(0.1, cp.Vector{X: 400, Y: 400}, true, false)
	assert.Equal(t, pos, m.Enemies()[0].Position)
	assert.Equal(t, cp.Vector{}, m.Enemies()[0].Velocity)

	m.ResetSpawner()
	count := m.Count()
	m.UpdateAll(1, cp.Vector{X: 400, Y: 400}, false, true)
	assert.Equal(t, count, m.Count(), "no spawning after game over")
	assert.Equal(t, pos, m.Enemies()[0].Position)
}

func TestEnemyOnWallStops(t *testing.T) {
	tiles := level.New([][]int{{0, 1}, {1, 1}}, 32)
	m := newTestManager(t, tiles, func(c *Config) { c.SpawnInterval = 1000 })
	m.SpawnAt(cp.Vector{X: 16, Y: 16})
	m.UpdateAll(0.1, cp.Vector{X: 48, Y: 48}, false, false)
	e := m.Enemies()[0]
	assert.Equal(t, cp.Vector{}, e.Velocity)
	assert.Equal(t, cp.Vector{X: 16, Y: 16}, e.Position)
}

func TestEnemiesDoNotWalkIntoEachOther(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) {
		c.SmartChance = 1
		c.SpawnInterval = 1000
		c.RetargetInterval = 0.01
	})
	m.SpawnAt(cp.Vector{X: 48, Y: 48})
	m.SpawnAt(cp.Vector{X: 48 + 25, Y: 48})
	player := cp.Vector{X: 400, Y: 48}
	for i := 0; i < 120; i++ {
		m.UpdateAll(1.0/60, player, false, false)
		es := m.Enemies()
		require.Len(t, es, 2)
		assert.False(t, collision.Overlaps(es[0].Position, 12, es[1].Position, 12), "tick %d", i)
	}
}

func TestOverlappingEnemiesSeparate(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) {
		c.SmartChance = 1
		c.SpawnInterval = 1000
		c.RetargetInterval = 0.01
	})
	m.SpawnAt(cp.Vector{X: 48, Y: 48})
	m.SpawnAt(cp.Vector{X: 58, Y: 48})
	player := cp.Vector{X: 400, Y: 48}

	gap := func() float64 {
		es := m.Enemies()
		require.Len(t, es, 2)
		return es[0].Position.Distance(es[1].Position)
	}
	require.Less(t, gap(), 24.0, "spawned overlapping")

	separated := false
	for i := 0; i < 60; i++ {
		before := gap()
		m.UpdateAll(1.0/60, player, false, false)
		after := gap()
		if before < 24 {
			assert.GreaterOrEqual(t, after, before-1e-9, "tick %d: overlapping enemies only move apart", i)
		} else {
			assert.GreaterOrEqual(t, after, 24.0-1e-9, "tick %d: separated enemies stay apart", i)
		}
		separated = separated || after >= 24
	}
	assert.True(t, separated)
}

func TestDamageDestroys(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), func(c *Config) { c.Health = 2 })
	m.SpawnAt(cp.Vector{X: 100, Y: 120})
	id := m.Enemies()[0].ID
	m.Events()

	assert.False(t, m.Damage(9, id, 1))
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.Damage(9, id, 1))
	assert.Equal(t, 0, m.Count())
	assert.False(t, m.Damage(10, id, 1), "second hit on a dead enemy is ignored")
	assert.False(t, m.Damage(10, 999, 1))

	evts := m.Events()
	require.Equal(t, []EventKind{Destroyed, CountChanged}, kinds(evts))
	assert.Equal(t, Event{Kind: Destroyed, ID: id, Position: cp.Vector{X: 100, Y: 120}, BulletID: 9}, evts[0])
}

func TestKillAllClearAllRemove(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), nil)
	m.SpawnAt(cp.Vector{X: 50, Y: 50})
	m.SpawnAt(cp.Vector{X: 150, Y: 50})
	m.SpawnAt(cp.Vector{X: 250, Y: 50})
	m.Events()

	ids := []int{m.Enemies()[0].ID, m.Enemies()[1].ID}
	assert.True(t, m.RemoveEnemy(ids[0]))
	assert.Equal(t, []EventKind{CountChanged}, kinds(m.Events()))

	assert.True(t, m.Kill(ids[1]))
	assert.False(t, m.Kill(ids[1]))
	assert.Equal(t, 1, m.KillAll())
	assert.Equal(t, []EventKind{Destroyed, CountChanged, Destroyed, CountChanged}, kinds(m.Events()))

	m.SpawnAt(cp.Vector{X: 50, Y: 50})
	m.Events()
	m.ClearAll()
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, []Event{{Kind: CountChanged}}, m.Events())
}

func TestBodies(t *testing.T) {
	m := newTestManager(t, openMap(16, 16), nil)
	m.SpawnAt(cp.Vector{X: 50, Y: 60})
	b := m.Bodies()
	require.Len(t, b, 1)
	assert.Equal(t, cp.Vector{X: 50, Y: 60}, b[0].Position)
}
