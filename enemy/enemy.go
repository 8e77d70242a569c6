package enemy

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/collision"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/level"
	"github.com/milk9111/outlaw/logger"
	"github.com/sirupsen/logrus"
)

// Config tunes spawning and movement. Zero fields take the defaults, except
// SmartChance where zero means no enemy is smart.
type Config struct {
	Health           int     `yaml:"health"`
	MoveSpeed        float64 `yaml:"move_speed"`
	SpawnInterval    float64 `yaml:"spawn_interval"`
	SpawnDecay       float64 `yaml:"spawn_decay"`
	MinSpawnInterval float64 `yaml:"min_spawn_interval"`
	MaxEnemies       int     `yaml:"max_enemies"`
	BatchMin         int     `yaml:"batch_min"`
	BatchMax         int     `yaml:"batch_max"`
	RetargetInterval float64 `yaml:"retarget_interval"`
	SmartChance      float64 `yaml:"smart_chance"`
	// MirrorOffset is how far past the player a non-smart enemy aims.
	MirrorOffset float64 `yaml:"mirror_offset"`
	// WanderMargin shrinks the map by this many cells when picking the
	// first target of a fresh spawn.
	WanderMargin int `yaml:"wander_margin"`
}

func DefaultConfig() Config {
	return Config{
		Health:           1,
		MoveSpeed:        60,
		SpawnInterval:    3.0,
		SpawnDecay:       0.95,
		MinSpawnInterval: 0.9,
		MaxEnemies:       30,
		BatchMin:         1,
		BatchMax:         3,
		RetargetInterval: 1.0,
		SmartChance:      2.0 / 3.0,
		MirrorOffset:     96,
		WanderMargin:     3,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Health <= 0 {
		c.Health = d.Health
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = d.SpawnInterval
	}
	if c.SpawnDecay <= 0 || c.SpawnDecay > 1 {
		c.SpawnDecay = d.SpawnDecay
	}
	if c.MinSpawnInterval <= 0 {
		c.MinSpawnInterval = d.MinSpawnInterval
	}
	if c.MaxEnemies <= 0 {
		c.MaxEnemies = d.MaxEnemies
	}
	if c.BatchMin <= 0 {
		c.BatchMin = d.BatchMin
	}
	if c.BatchMax < c.BatchMin {
		c.BatchMax = c.BatchMin
	}
	if c.RetargetInterval <= 0 {
		c.RetargetInterval = d.RetargetInterval
	}
	if c.SmartChance < 0 || c.SmartChance > 1 {
		c.SmartChance = d.SmartChance
	}
	if c.MirrorOffset <= 0 {
		c.MirrorOffset = d.MirrorOffset
	}
	if c.WanderMargin < 0 {
		c.WanderMargin = d.WanderMargin
	}
	return c
}

// Enemy is a chaser. Smart enemies aim at the player, the rest overshoot.
type Enemy struct {
	ID        int
	Health    int
	Position  cp.Vector
	Velocity  cp.Vector
	MoveSpeed float64
	Target    cp.Vector
	Smart     bool
	Active    bool

	retarget float64
}

type EventKind int

const (
	Spawned EventKind = iota
	Destroyed
	CountChanged
	Updated
)

// Event reports enemy lifecycle changes. Position is set for Spawned and
// Destroyed; BulletID is set when a bullet made the kill.
type Event struct {
	Kind     EventKind
	ID       int
	Position cp.Vector
	BulletID int
	Count    int
}

// Manager owns the enemy list and the spawner.
type Manager struct {
	space *collision.System
	cfg   Config
	rng   *rand.Rand
	log   logrus.FieldLogger

	enemies  []*Enemy
	nextID   int
	timer    float64
	interval float64
	queue    event.Queue[Event]
}

// NewManager creates a manager over space. rng must not be shared with code
// that expects its own deterministic sequence.
func NewManager(space *collision.System, cfg Config, rng *rand.Rand, log logrus.FieldLogger) *Manager {
	if space == nil {
		space = collision.New(nil, collision.DefaultRadii())
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	cfg = cfg.WithDefaults()
	return &Manager{
		space:    space,
		cfg:      cfg,
		rng:      rng,
		log:      logger.OrDiscard(log),
		interval: cfg.SpawnInterval,
	}
}

// SetConfig swaps the tuning. The spawner restarts from the new interval.
func (m *Manager) SetConfig(cfg Config) {
	if m == nil {
		return
	}
	m.cfg = cfg.WithDefaults()
	m.ResetSpawner()
}

func (m *Manager) Config() Config {
	if m == nil {
		return DefaultConfig()
	}
	return m.cfg
}

// SpawnTick advances the spawn timer and spawns a batch when it elapses.
func (m *Manager) SpawnTick(dt float64) {
	if m == nil {
		return
	}
	m.timer += dt
	if m.timer < m.interval || m.Count() >= m.cfg.MaxEnemies {
		return
	}

	side := m.rng.Intn(4)
	candidates := m.spawnCandidates(side)
	m.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	batch := m.cfg.BatchMin
	if spread := m.cfg.BatchMax - m.cfg.BatchMin; spread > 0 {
		batch += m.rng.Intn(spread + 1)
	}
	spawned := 0
	for _, c := range candidates {
		if spawned >= batch || m.Count() >= m.cfg.MaxEnemies {
			break
		}
		pos := m.space.Map().CellCenter(c)
		if !m.space.Map().Walkable(c) || m.overlapsAny(pos, 0) {
			continue
		}
		if m.SpawnAt(pos) {
			spawned++
		}
	}

	m.timer = 0
	m.interval = max(m.cfg.MinSpawnInterval, m.interval*m.cfg.SpawnDecay)
	m.log.WithFields(logrus.Fields{"side": side, "spawned": spawned, "interval": m.interval}).Debug("enemy: spawn batch")
}

// spawnCandidates returns the three cells around the midpoint of a map side:
// 0 top, 1 right, 2 bottom, 3 left.
func (m *Manager) spawnCandidates(side int) []level.Cell {
	tiles := m.space.Map()
	if tiles.IsEmpty() {
		return nil
	}
	midX := tiles.Width / 2
	midY := tiles.Height / 2
	out := make([]level.Cell, 0, 3)
	for d := -1; d <= 1; d++ {
		switch side {
		case 0:
			out = append(out, level.Cell{X: midX + d, Y: 0})
		case 1:
			out = append(out, level.Cell{X: tiles.Width - 1, Y: midY + d})
		case 2:
			out = append(out, level.Cell{X: midX + d, Y: tiles.Height - 1})
		default:
			out = append(out, level.Cell{X: 0, Y: midY + d})
		}
	}
	return out
}

// SpawnAt adds an enemy at pos. It does nothing at capacity.
func (m *Manager) SpawnAt(pos cp.Vector) bool {
	if m == nil || m.Count() >= m.cfg.MaxEnemies {
		return false
	}
	m.nextID++
	e := &Enemy{
		ID:        m.nextID,
		Health:    m.cfg.Health,
		Position:  pos,
		MoveSpeed: m.cfg.MoveSpeed,
		Target:    m.wanderTarget(),
		Smart:     m.rng.Float64() < m.cfg.SmartChance,
		Active:    true,
		retarget:  m.cfg.RetargetInterval,
	}
	m.enemies = append(m.enemies, e)
	m.log.WithFields(logrus.Fields{"enemy": e.ID, "smart": e.Smart}).Debug("enemy: spawned")
	m.queue.Push(Event{Kind: Spawned, ID: e.ID, Position: pos})
	m.queue.Push(Event{Kind: CountChanged, Count: m.Count()})
	return true
}

func (m *Manager) wanderTarget() cp.Vector {
	bounds := m.space.Bounds()
	inset := float64(m.cfg.WanderMargin * m.space.Map().TileSize)
	lo := cp.Vector{X: bounds.L + inset, Y: bounds.B + inset}
	hi := cp.Vector{X: bounds.R - inset, Y: bounds.T - inset}
	if hi.X <= lo.X || hi.Y <= lo.Y {
		return cp.Vector{X: (bounds.L + bounds.R) / 2, Y: (bounds.B + bounds.T) / 2}
	}
	return cp.Vector{
		X: lo.X + m.rng.Float64()*(hi.X-lo.X),
		Y: lo.Y + m.rng.Float64()*(hi.Y-lo.Y),
	}
}

// UpdateAll steers and moves every enemy, then runs the spawner. Stealth and
// game over freeze enemies in place; game over also stops spawning.
func (m *Manager) UpdateAll(dt float64, playerPos cp.Vector, stealth, gameOver bool) {
	if m == nil {
		return
	}
	tiles := m.space.Map()
	for _, e := range m.enemies {
		if !e.Active {
			continue
		}
		if stealth || gameOver {
			e.Velocity = cp.Vector{}
			continue
		}

		e.retarget -= dt
		if e.retarget <= 0 {
			e.retarget = m.cfg.RetargetInterval
			e.Target = m.targetFor(e, playerPos)
		}

		from := tiles.CellAt(e.Position)
		step, ok := NextStep(tiles, from, tiles.CellAt(e.Target), func(c level.Cell) bool {
			return m.cellOccupied(c, e.ID)
		})
		if !ok {
			e.Velocity = cp.Vector{}
			continue
		}
		e.Velocity = cp.Vector{X: float64(step.X), Y: float64(step.Y)}.Mult(e.MoveSpeed)

		dest := e.Position.Add(e.Velocity.Mult(dt))
		if m.blocked(e, dest) {
			continue
		}
		e.Position = dest
	}

	if !gameOver {
		m.SpawnTick(dt)
	}
	m.purge()
	m.queue.Push(Event{Kind: Updated, Count: m.Count()})
}

func (m *Manager) targetFor(e *Enemy, playerPos cp.Vector) cp.Vector {
	if e.Smart {
		return playerPos
	}
	k := m.cfg.MirrorOffset
	return playerPos.Add(cp.Vector{
		X: common.Sign(playerPos.X-e.Position.X) * k,
		Y: common.Sign(playerPos.Y-e.Position.Y) * k,
	})
}

func (m *Manager) cellOccupied(c level.Cell, self int) bool {
	tiles := m.space.Map()
	for _, o := range m.enemies {
		if o.Active && o.ID != self && tiles.CellAt(o.Position) == c {
			return true
		}
	}
	return false
}

// blocked reports whether moving e to dest would overlap another enemy.
// A move that ends overlapping is still allowed when it increases the
// distance, so enemies spawned on top of each other can separate instead of
// freezing in place.
func (m *Manager) blocked(e *Enemy, dest cp.Vector) bool {
	for _, o := range m.enemies {
		if !o.Active || o.ID == e.ID {
			continue
		}
		if !m.space.EnemiesOverlap(dest, o.Position) {
			continue
		}
		if dest.Distance(o.Position) < e.Position.Distance(o.Position) {
			return true
		}
	}
	return false
}

func (m *Manager) overlapsAny(pos cp.Vector, self int) bool {
	for _, o := range m.enemies {
		if o.Active && o.ID != self && m.space.EnemiesOverlap(pos, o.Position) {
			return true
		}
	}
	return false
}

// Damage applies a bullet hit. It reports whether the enemy died. Unknown or
// inactive enemies are ignored.
func (m *Manager) Damage(bulletID, enemyID, amount int) bool {
	e := m.find(enemyID)
	if e == nil {
		return false
	}
	e.Health -= amount
	if e.Health > 0 {
		return false
	}
	m.destroy(e, bulletID)
	return true
}

// Kill destroys an enemy regardless of health.
func (m *Manager) Kill(id int) bool {
	e := m.find(id)
	if e == nil {
		return false
	}
	m.destroy(e, 0)
	return true
}

// KillAll destroys every active enemy and returns how many died.
func (m *Manager) KillAll() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, e := range m.enemies {
		if e.Active {
			m.destroy(e, 0)
			n++
		}
	}
	return n
}

func (m *Manager) destroy(e *Enemy, bulletID int) {
	pos := e.Position
	e.Active = false
	e.Velocity = cp.Vector{}
	m.log.WithFields(logrus.Fields{"enemy": e.ID, "bullet": bulletID}).Debug("enemy: destroyed")
	m.queue.Push(Event{Kind: Destroyed, ID: e.ID, Position: pos, BulletID: bulletID})
	m.queue.Push(Event{Kind: CountChanged, Count: m.Count()})
}

// RemoveEnemy drops an enemy without a Destroyed event.
func (m *Manager) RemoveEnemy(id int) bool {
	e := m.find(id)
	if e == nil {
		return false
	}
	e.Active = false
	m.purge()
	m.queue.Push(Event{Kind: CountChanged, Count: m.Count()})
	return true
}

// ClearAll removes every enemy immediately without Destroyed events.
func (m *Manager) ClearAll() {
	if m == nil {
		return
	}
	m.enemies = nil
	m.queue.Push(Event{Kind: CountChanged, Count: 0})
}

// ResetSpawner restores the initial spawn interval and timer.
func (m *Manager) ResetSpawner() {
	if m == nil {
		return
	}
	m.timer = 0
	m.interval = m.cfg.SpawnInterval
}

func (m *Manager) SpawnInterval() float64 {
	if m == nil {
		return 0
	}
	return m.interval
}

// Enemy returns a copy of an active enemy.
func (m *Manager) Enemy(id int) (Enemy, bool) {
	e := m.find(id)
	if e == nil {
		return Enemy{}, false
	}
	return *e, true
}

// Enemies returns copies of the active enemies in spawn order.
func (m *Manager) Enemies() []Enemy {
	if m == nil {
		return nil
	}
	out := make([]Enemy, 0, len(m.enemies))
	for _, e := range m.enemies {
		if e.Active {
			out = append(out, *e)
		}
	}
	return out
}

// Bodies returns the active enemies as collision bodies.
func (m *Manager) Bodies() []collision.Body {
	if m == nil {
		return nil
	}
	out := make([]collision.Body, 0, len(m.enemies))
	for _, e := range m.enemies {
		if e.Active {
			out = append(out, collision.Body{ID: e.ID, Position: e.Position})
		}
	}
	return out
}

func (m *Manager) Count() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, e := range m.enemies {
		if e.Active {
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

func (m *Manager) find(id int) *Enemy {
	if m == nil {
		return nil
	}
	for _, e := range m.enemies {
		if e.ID == id && e.Active {
			return e
		}
	}
	return nil
}

func (m *Manager) purge() {
	writeIdx := 0
	for _, e := range m.enemies {
		if !e.Active {
			continue
		}
		m.enemies[writeIdx] = e
		writeIdx++
	}
	for i := writeIdx; i < len(m.enemies); i++ {
		m.enemies[i] = nil
	}
	m.enemies = m.enemies[:writeIdx]
}
