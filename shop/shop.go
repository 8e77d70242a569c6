package shop

import (
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/logger"
	"github.com/sirupsen/logrus"
)

type EventKind int

const (
	Opened EventKind = iota
	Closed
	Purchased
	// Rejected reports a purchase that was not available or not affordable.
	Rejected
	CatalogChanged
)

type Event struct {
	Kind  EventKind
	Item  ItemType
	Price int
}

// Manager is the vendor: open/closed state and per-slot upgrade progress.
type Manager struct {
	catalog  []ItemConfig
	hardMode bool
	log      logrus.FieldLogger

	active   bool
	progress [SlotCount]int
	queue    event.Queue[Event]
}

// NewManager creates a vendor over catalog. A nil catalog uses the default.
func NewManager(catalog []ItemConfig, hardMode bool, log logrus.FieldLogger) *Manager {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Manager{
		catalog:  append([]ItemConfig(nil), catalog...),
		hardMode: hardMode,
		log:      logger.OrDiscard(log),
	}
}

// SetCatalog replaces the stock. Progress is kept.
func (m *Manager) SetCatalog(catalog []ItemConfig) {
	if m == nil || catalog == nil {
		return
	}
	m.catalog = append([]ItemConfig(nil), catalog...)
	m.queue.Push(Event{Kind: CatalogChanged})
}

func (m *Manager) SetHardMode(on bool) {
	if m == nil || m.hardMode == on {
		return
	}
	m.hardMode = on
	m.queue.Push(Event{Kind: CatalogChanged})
}

func (m *Manager) Open() {
	if m == nil || m.active {
		return
	}
	m.active = true
	m.log.Info("shop: vendor open")
	m.queue.Push(Event{Kind: Opened})
}

func (m *Manager) Close() {
	if m == nil || !m.active {
		return
	}
	m.active = false
	m.log.Info("shop: vendor closed")
	m.queue.Push(Event{Kind: Closed})
}

func (m *Manager) IsActive() bool {
	return m != nil && m.active
}

// Available lists what a slot offers now: the entry at the slot's progress,
// plus infinite entries already unlocked.
func (m *Manager) Available(slot int) []ItemConfig {
	if m == nil || slot < 0 || slot >= SlotCount {
		return nil
	}
	progress := m.progress[slot]
	var out []ItemConfig
	for _, c := range m.catalog {
		if c.Slot != slot {
			continue
		}
		if c.HardModeOnly && !m.hardMode {
			continue
		}
		if c.Index == progress || (c.Infinite && c.Index <= progress) {
			out = append(out, c)
		}
	}
	return out
}

// Offers lists the available entries of every slot in slot order.
func (m *Manager) Offers() []ItemConfig {
	var out []ItemConfig
	for slot := 0; slot < SlotCount; slot++ {
		out = append(out, m.Available(slot)...)
	}
	return out
}

// Purchase sells t to buyer. The item must be available and affordable.
// Non-infinite purchases advance their slot.
func (m *Manager) Purchase(t ItemType, buyer Buyer) bool {
	if m == nil || buyer == nil {
		return false
	}
	cfg, ok := m.available(t)
	if !ok {
		m.queue.Push(Event{Kind: Rejected, Item: t})
		return false
	}
	if buyer.Coins() < cfg.Price {
		m.queue.Push(Event{Kind: Rejected, Item: t, Price: cfg.Price})
		return false
	}

	buyer.AddCoins(-cfg.Price)
	cfg.Grant.apply(buyer)
	if !cfg.Infinite {
		m.progress[cfg.Slot]++
		m.queue.Push(Event{Kind: CatalogChanged})
	}
	m.log.WithFields(logrus.Fields{"item": string(t), "price": cfg.Price}).Info("shop: purchase")
	m.queue.Push(Event{Kind: Purchased, Item: t, Price: cfg.Price})
	return true
}

func (m *Manager) available(t ItemType) (ItemConfig, bool) {
	for _, c := range m.catalog {
		if c.Type != t {
			continue
		}
		for _, a := range m.Available(c.Slot) {
			if a.Type == t {
				return a, true
			}
		}
	}
	return ItemConfig{}, false
}

// Price looks up the catalog price of t.
func (m *Manager) Price(t ItemType) (int, bool) {
	if m == nil {
		return 0, false
	}
	for _, c := range m.catalog {
		if c.Type == t {
			return c.Price, true
		}
	}
	return 0, false
}

func (m *Manager) Progress(slot int) int {
	if m == nil || slot < 0 || slot >= SlotCount {
		return 0
	}
	return m.progress[slot]
}

// Reset closes the vendor and clears all progress.
func (m *Manager) Reset() {
	if m == nil {
		return
	}
	m.active = false
	m.progress = [SlotCount]int{}
	m.queue.Flush()
}

func (m *Manager) Events() []Event {
	if m == nil {
		return nil
	}
	return m.queue.Drain()
}
