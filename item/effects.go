package item

import (
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/logger"
	"github.com/milk9111/outlaw/player"
	"github.com/sirupsen/logrus"
)

// Target is what effects act on. *player.Player satisfies it.
type Target interface {
	Stat(s player.Stat) float64
	SetStat(s player.Stat, v float64)
	BaseStat(s player.Stat) float64
	AddCoins(n int)
	AddLife()
	VendorBadge() bool
}

// Effect is one active timed modifier. EndTime is on the manager's clock.
type Effect struct {
	Kind          EffectKind
	EndTime       float64
	OriginalValue float64
	EffectValue   float64
	Active        bool
}

type EffectEventKind int

const (
	EffectApplied EffectEventKind = iota
	EffectExpired
	// KillAllRequested asks the owner to destroy every enemy.
	KillAllRequested
)

type EffectEvent struct {
	Kind   EffectEventKind
	Effect Effect
	Item   Type
}

// EffectManager applies item effects to a target and restores the original
// values when they run out. There is at most one effect per kind; applying a
// kind again extends it.
type EffectManager struct {
	target Target
	specs  map[EffectKind]EffectSpec
	log    logrus.FieldLogger

	effects [effectKindCount]*Effect
	clock   float64
	queue   event.Queue[EffectEvent]
}

func NewEffectManager(target Target, tuning Tuning, log logrus.FieldLogger) *EffectManager {
	return &EffectManager{
		target: target,
		specs:  tuning.Specs(),
		log:    logger.OrDiscard(log),
	}
}

// SetTuning replaces the effect table. Active effects keep their end times.
func (m *EffectManager) SetTuning(tuning Tuning) {
	if m == nil {
		return
	}
	m.specs = tuning.Specs()
}

// Apply runs what an item does: instant grants, a timed effect, or a kill-all
// request.
func (m *EffectManager) Apply(t Type) {
	if m == nil || m.target == nil {
		return
	}
	d := Describe(t)
	if d.Coins != 0 {
		m.target.AddCoins(d.Coins)
	}
	for i := 0; i < d.Lives; i++ {
		m.target.AddLife()
	}
	if d.HasEffect {
		m.ApplyEffect(d.Effect)
	}
	if d.KillAll {
		m.queue.Push(EffectEvent{Kind: KillAllRequested, Item: t})
	}
}

// ApplyEffect starts or extends an effect. The original value is captured
// on the first application and kept while the effect is still running.
func (m *EffectManager) ApplyEffect(kind EffectKind) bool {
	if m == nil || m.target == nil {
		return false
	}
	spec, ok := m.specs[kind]
	if !ok {
		return false
	}

	cur := m.target.Stat(spec.Stat)
	e := m.effects[kind]
	if e == nil || !e.Active {
		e = &Effect{Kind: kind, OriginalValue: cur, Active: true}
		m.effects[kind] = e
	}

	e.EffectValue = m.effectValue(spec, cur)
	e.EndTime = m.clock + spec.Duration
	m.target.SetStat(spec.Stat, e.EffectValue)

	m.log.WithFields(logrus.Fields{"effect": kind.String(), "until": e.EndTime}).Debug("item: effect applied")
	m.queue.Push(EffectEvent{Kind: EffectApplied, Effect: *e})
	return true
}

// Update advances the clock and ends every effect whose time is up.
func (m *EffectManager) Update(dt float64) {
	if m == nil {
		return
	}
	m.clock += dt
	for _, e := range m.effects {
		if e == nil || !e.Active || m.clock < e.EndTime {
			continue
		}
		m.expire(e)
	}
}

func (m *EffectManager) expire(e *Effect) {
	e.Active = false
	if !(e.Kind == BadgeMode && m.target.VendorBadge()) {
		m.target.SetStat(m.specs[e.Kind].Stat, e.OriginalValue)
	}
	m.queue.Push(EffectEvent{Kind: EffectExpired, Effect: *e})
}

// Rebase runs change against the stats as they were before any running
// effect, then starts those effects again over the new values. Permanent
// upgrades made inside change therefore survive the effects' expiry. End
// times are kept.
func (m *EffectManager) Rebase(change func()) {
	if m == nil || m.target == nil {
		if change != nil {
			change()
		}
		return
	}
	for _, e := range m.effects {
		if e == nil || !e.Active {
			continue
		}
		if e.Kind == BadgeMode && m.target.VendorBadge() {
			continue
		}
		m.target.SetStat(m.specs[e.Kind].Stat, e.OriginalValue)
	}

	if change != nil {
		change()
	}

	for _, e := range m.effects {
		if e == nil || !e.Active {
			continue
		}
		spec := m.specs[e.Kind]
		cur := m.target.Stat(spec.Stat)
		e.OriginalValue = cur
		e.EffectValue = m.effectValue(spec, cur)
		m.target.SetStat(spec.Stat, e.EffectValue)
	}
}

func (m *EffectManager) effectValue(spec EffectSpec, cur float64) float64 {
	base := m.target.BaseStat(spec.Stat)
	switch spec.Rule {
	case RuleMax:
		return max(cur, base*spec.Multiplier)
	case RuleMin:
		return min(cur, base*spec.Multiplier)
	default:
		return 1
	}
}

// ClearAll ends every effect now, restoring original values. Badge mode is
// left running.
func (m *EffectManager) ClearAll() {
	if m == nil {
		return
	}
	for _, e := range m.effects {
		if e == nil || !e.Active || e.Kind == BadgeMode {
			continue
		}
		m.expire(e)
	}
}

// Reset drops all effects without restoring anything and rewinds the clock.
func (m *EffectManager) Reset() {
	if m == nil {
		return
	}
	m.effects = [effectKindCount]*Effect{}
	m.clock = 0
	m.queue.Flush()
}

// Active returns the running effects in kind order.
func (m *EffectManager) Active() []Effect {
	if m == nil {
		return nil
	}
	var out []Effect
	for _, e := range m.effects {
		if e != nil && e.Active {
			out = append(out, *e)
		}
	}
	return out
}

// Remaining reports the seconds left on an effect.
func (m *EffectManager) Remaining(kind EffectKind) (float64, bool) {
	if m == nil || kind < 0 || kind >= effectKindCount {
		return 0, false
	}
	e := m.effects[kind]
	if e == nil || !e.Active {
		return 0, false
	}
	return e.EndTime - m.clock, true
}

func (m *EffectManager) Clock() float64 {
	if m == nil {
		return 0
	}
	return m.clock
}

func (m *EffectManager) Events() []EffectEvent {
	if m == nil {
		return nil
	}
	return m.queue.Drain()
}
