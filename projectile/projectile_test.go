package projectile

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/collision"
	"github.com/milk9111/outlaw/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSpace(w, h int) *collision.System {
	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			rows[y][x] = 1
		}
	}
	return collision.New(level.New(rows, 32), collision.DefaultRadii())
}

func TestCreateRejectsZeroDirection(t *testing.T) {
	m := NewManager(openSpace(4, 4), 4)
	_, ok := m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{}, 400, 1)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count())
}

func TestCreateNormalizesVelocity(t *testing.T) {
	m := NewManager(openSpace(4, 4), 4)
	id, ok := m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{X: 3, Y: 4}, 400, 2)
	require.True(t, ok)
	b, ok := m.Bullet(id)
	require.True(t, ok)
	assert.InDelta(t, 240, b.Velocity.X, 1e-9)
	assert.InDelta(t, 320, b.Velocity.Y, 1e-9)
	assert.Equal(t, 2, b.Damage)
}

func TestTickMovesAndRetiresOutOfBounds(t *testing.T) {
	m := NewManager(openSpace(4, 4), 4)
	id, _ := m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{X: 1}, 400, 1)
	m.Tick(0.1)
	b, ok := m.Bullet(id)
	require.True(t, ok)
	assert.InDelta(t, 104, b.Position.X, 1e-9)

	// 128px wide map: the next step lands at x=144
	m.Tick(0.1)
	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.Bullets())
}

func TestTickRetiresOnWall(t *testing.T) {
	space := collision.New(level.New([][]int{
		{1, 1, 0, 1},
		{1, 1, 0, 1},
	}, 32), collision.DefaultRadii())
	m := NewManager(space, 4)
	m.Create(cp.Vector{X: 16, Y: 16}, cp.Vector{X: 1}, 400, 1)
	m.Tick(0.15)
	assert.Equal(t, 0, m.Count())
}

func TestDamageAtAndDeactivate(t *testing.T) {
	m := NewManager(openSpace(8, 8), 4)
	a, _ := m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{X: 1}, 10, 3)
	b, _ := m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{Y: 1}, 10, 1)

	assert.True(t, m.DamageAt(a, 1))
	got, _ := m.Bullet(a)
	assert.Equal(t, 1, got.Damage)

	assert.True(t, m.DamageAt(a, 0))
	assert.Equal(t, 1, m.Count())
	assert.False(t, m.DamageAt(a, 5), "retired bullets are not addressable")

	assert.True(t, m.Deactivate(b))
	assert.False(t, m.Deactivate(b))
	assert.Equal(t, 0, m.Count())

	m.Tick(0.016)
	assert.Empty(t, m.Bullets())
}

func TestClearAndEvents(t *testing.T) {
	m := NewManager(openSpace(8, 8), 4)
	m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{X: 1}, 10, 1)
	m.Create(cp.Vector{X: 64, Y: 64}, cp.Vector{X: -1}, 10, 1)
	m.Tick(0.016)
	m.Clear()
	assert.Equal(t, 0, m.Count())

	evts := m.Events()
	require.Len(t, evts, 4)
	assert.Equal(t, Created, evts[0].Kind)
	assert.Equal(t, Event{Kind: Updated, Count: 2}, evts[2])
	assert.Equal(t, Event{Kind: Updated, Count: 0}, evts[3])
}

func TestIDsAreMonotonic(t *testing.T) {
	m := NewManager(nil, 4)
	a, _ := m.Create(cp.Vector{}, cp.Vector{X: 1}, 1, 1)
	m.Clear()
	b, _ := m.Create(cp.Vector{}, cp.Vector{X: 1}, 1, 1)
	assert.Greater(t, b, a)
}

type boundsOnly struct{ bb cp.BB }

func (s boundsOnly) Bounds() cp.BB                         { return s.bb }
func (s boundsOnly) CircleHitsMap(cp.Vector, float64) bool { return false }

func TestBoundsAreInclusive(t *testing.T) {
	cases := []struct {
		name  string
		dir   cp.Vector
		speed float64
		alive bool
	}{
		{"on right edge", cp.Vector{X: 1}, 640, true},
		{"past bottom edge", cp.Vector{Y: 1}, 700, false},
		{"past left edge", cp.Vector{X: -1}, 700, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewManager(boundsOnly{bb: cp.BB{L: 0, B: 0, R: 128, T: 128}}, 4)
			m.Create(cp.Vector{X: 64, Y: 64}, c.dir, c.speed, 1)
			m.Tick(0.1)
			assert.Equal(t, c.alive, m.Count() == 1)
		})
	}
}
