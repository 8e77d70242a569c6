package projectile

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/event"
)

// MapQuery is the part of the collision system bullets need.
type MapQuery interface {
	Bounds() cp.BB
	CircleHitsMap(center cp.Vector, r float64) bool
}

// Bullet is a straight-moving projectile fired by the player.
type Bullet struct {
	ID       int
	Position cp.Vector
	Velocity cp.Vector
	Damage   int
	Active   bool
}

type EventKind int

const (
	Created EventKind = iota
	Updated
)

type Event struct {
	Kind  EventKind
	ID    int
	Count int
}

// Manager owns the live bullets. Deactivated bullets stay in the list until
// the next Tick purges them.
type Manager struct {
	space  MapQuery
	radius float64

	bullets []*Bullet
	nextID  int
	queue   event.Queue[Event]
}

// NewManager creates a manager. space may be nil, in which case bullets only
// expire by DamageAt or Deactivate.
func NewManager(space MapQuery, radius float64) *Manager {
	return &Manager{space: space, radius: radius}
}

// Create fires a bullet from pos along dir. A zero direction is rejected.
func (m *Manager) Create(pos, dir cp.Vector, speed float64, damage int) (int, bool) {
	if m == nil {
		return 0, false
	}
	unit, ok := common.Normalize(dir)
	if !ok {
		return 0, false
	}
	m.nextID++
	b := &Bullet{
		ID:       m.nextID,
		Position: pos,
		Velocity: unit.Mult(speed),
		Damage:   damage,
		Active:   damage > 0,
	}
	m.bullets = append(m.bullets, b)
	m.queue.Push(Event{Kind: Created, ID: b.ID, Count: m.Count()})
	return b.ID, true
}

// Tick advances active bullets, retires the ones that left the bounds or hit
// a blocking tile, and drops every inactive bullet.
func (m *Manager) Tick(dt float64) {
	if m == nil {
		return
	}
	writeIdx := 0
	for _, b := range m.bullets {
		if b == nil {
			continue
		}
		if b.Active {
			b.Position = b.Position.Add(b.Velocity.Mult(dt))
			if m.space != nil {
				if !m.space.Bounds().ContainsVect(b.Position) || m.space.CircleHitsMap(b.Position, m.radius) {
					b.Active = false
				}
			}
		}
		if !b.Active {
			continue
		}
		m.bullets[writeIdx] = b
		writeIdx++
	}
	for i := writeIdx; i < len(m.bullets); i++ {
		m.bullets[i] = nil
	}
	m.bullets = m.bullets[:writeIdx]
	m.queue.Push(Event{Kind: Updated, Count: len(m.bullets)})
}

// DamageAt overwrites the damage of a bullet. Zero or less retires it.
func (m *Manager) DamageAt(id, damage int) bool {
	b := m.find(id)
	if b == nil {
		return false
	}
	b.Damage = damage
	if damage <= 0 {
		b.Active = false
	}
	return true
}

func (m *Manager) Deactivate(id int) bool {
	b := m.find(id)
	if b == nil {
		return false
	}
	b.Active = false
	return true
}

// Clear removes every bullet immediately.
func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.bullets = nil
	m.queue.Push(Event{Kind: Updated, Count: 0})
}

// Bullet returns a copy of an active bullet.
func (m *Manager) Bullet(id int) (Bullet, bool) {
	b := m.find(id)
	if b == nil {
		return Bullet{}, false
	}
	return *b, true
}

// Bullets returns copies of the active bullets in creation order.
func (m *Manager) Bullets() []Bullet {
	if m == nil {
		return nil
	}
	out := make([]Bullet, 0, len(m.bullets))
	for _, b := range m.bullets {
		if b != nil && b.Active {
			out = append(out, *b)
		}
	}
	return out
}

// Count reports the number of active bullets.
func (m *Manager) Count() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, b := range m.bullets {
		if b != nil && b.Active {
			n++
		}
	}
	return n
}

func (m *Manager) Events() []Event {
	if m == nil {
		return nil
	}
	return m.queue.Drain()
}

func (m *Manager) find(id int) *Bullet {
	if m == nil {
		return nil
	}
	for _, b := range m.bullets {
		if b != nil && b.ID == id && b.Active {
			return b
		}
	}
	return nil
}
