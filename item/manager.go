package item

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/level"
	"github.com/milk9111/outlaw/logger"
	"github.com/sirupsen/logrus"
)

// Item is a pickup lying on a map cell, or held by the player.
type Item struct {
	ID         int
	Type       Type
	Cell       level.Cell
	Possessed  bool
	Active     bool
	RemainTime float64
}

type EventKind int

const (
	Created EventKind = iota
	PickedUp
	// ApplyRequested asks the owner to run the item's effect. Auto is set
	// when a full held slot forced the item to apply on pickup.
	ApplyRequested
	Expired
)

type Event struct {
	Kind EventKind
	Item Item
	Auto bool
}

// Manager owns dropped items and the single held slot. Items are indexed by
// cell; a cell holds at most one item.
type Manager struct {
	tileSize int
	lifetime float64
	rng      *rand.Rand
	log      logrus.FieldLogger

	items  []*Item
	byCell map[level.Cell]*Item
	held   *Item
	nextID int
	queue  event.Queue[Event]
}

func NewManager(tileSize int, lifetime float64, rng *rand.Rand, log logrus.FieldLogger) *Manager {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	if lifetime <= 0 {
		lifetime = DefaultTuning().Lifetime
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Manager{
		tileSize: tileSize,
		lifetime: lifetime,
		rng:      rng,
		log:      logger.OrDiscard(log),
		byCell:   make(map[level.Cell]*Item),
	}
}

// SetLifetime changes how long future drops stay on the ground.
func (m *Manager) SetLifetime(lifetime float64) {
	if m == nil || lifetime <= 0 {
		return
	}
	m.lifetime = lifetime
}

// CellFor truncates a pixel position to a grid cell.
func (m *Manager) CellFor(pos cp.Vector) level.Cell {
	ts := float64(m.tileSize)
	return level.Cell{X: int(pos.X / ts), Y: int(pos.Y / ts)}
}

// CreateRandom drops an item drawn from table at pos.
func (m *Manager) CreateRandom(pos cp.Vector, table WeightTable) (int, bool) {
	if m == nil {
		return 0, false
	}
	return m.CreateTyped(pos, table.Pick(m.rng.Float64()))
}

// CreateTyped drops an item of type t at pos. It does nothing when the cell
// already holds an item.
func (m *Manager) CreateTyped(pos cp.Vector, t Type) (int, bool) {
	if m == nil {
		return 0, false
	}
	cell := m.CellFor(pos)
	if _, taken := m.byCell[cell]; taken {
		return 0, false
	}
	m.nextID++
	it := &Item{
		ID:         m.nextID,
		Type:       t,
		Cell:       cell,
		Active:     true,
		RemainTime: m.lifetime,
	}
	m.items = append(m.items, it)
	m.byCell[cell] = it
	m.log.WithFields(logrus.Fields{"item": t.String(), "cell": cell}).Debug("item: dropped")
	m.queue.Push(Event{Kind: Created, Item: *it})
	return it.ID, true
}

// Tick ages items and handles the player stepping on one.
func (m *Manager) Tick(dt float64, playerCell level.Cell) {
	if m == nil {
		return
	}
	for _, it := range m.items {
		if !it.Active {
			continue
		}
		it.RemainTime -= dt
		if it.RemainTime <= 0 {
			it.RemainTime = 0
			it.Active = false
			m.queue.Push(Event{Kind: Expired, Item: *it})
		}
	}

	if it, ok := m.byCell[playerCell]; ok && it.Active {
		m.collect(it)
	}
	m.purge()
}

func (m *Manager) collect(it *Item) {
	it.Active = false
	switch {
	case Describe(it.Type).Instant:
		m.queue.Push(Event{Kind: ApplyRequested, Item: *it})
	case m.held == nil:
		it.Possessed = true
		held := *it
		m.held = &held
		m.queue.Push(Event{Kind: PickedUp, Item: held})
	default:
		m.queue.Push(Event{Kind: ApplyRequested, Item: *it, Auto: true})
	}
}

// UseHeld applies the held item and empties the slot.
func (m *Manager) UseHeld() bool {
	if m == nil || m.held == nil {
		return false
	}
	it := *m.held
	m.held = nil
	m.queue.Push(Event{Kind: ApplyRequested, Item: it})
	return true
}

// HeldItem reports the type in the held slot.
func (m *Manager) HeldItem() (Type, bool) {
	if m == nil || m.held == nil {
		return 0, false
	}
	return m.held.Type, true
}

// Items returns copies of the items on the ground.
func (m *Manager) Items() []Item {
	if m == nil {
		return nil
	}
	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		if it.Active {
			out = append(out, *it)
		}
	}
	return out
}

// ItemAt returns the item lying on cell.
func (m *Manager) ItemAt(cell level.Cell) (Item, bool) {
	if m == nil {
		return Item{}, false
	}
	it, ok := m.byCell[cell]
	if !ok || !it.Active {
		return Item{}, false
	}
	return *it, true
}

// Clear removes every item on the ground. The held slot is kept.
func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.items = nil
	m.byCell = make(map[level.Cell]*Item)
}

// Reset clears the ground and the held slot.
func (m *Manager) Reset() {
	if m == nil {
		return
	}
	m.Clear()
	m.held = nil
	m.queue.Flush()
}

func (m *Manager) Events() []Event {
	if m == nil {
		return nil
	}
	return m.queue.Drain()
}

func (m *Manager) purge() {
	writeIdx := 0
	for _, it := range m.items {
		if !it.Active {
			if m.byCell[it.Cell] == it {
				delete(m.byCell, it.Cell)
			}
			continue
		}
		m.items[writeIdx] = it
		writeIdx++
	}
	for i := writeIdx; i < len(m.items); i++ {
		m.items[i] = nil
	}
	m.items = m.items[:writeIdx]
	common.Assert(len(m.items) == len(m.byCell), "item: index out of sync (%d items, %d cells)", len(m.items), len(m.byCell))
}
