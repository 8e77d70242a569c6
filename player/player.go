package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/projectile"
)

// Blocker rejects player positions whose footprint overlaps a wall.
type Blocker interface {
	Blocks(p cp.Vector) bool
}

type EventKind int

const (
	PositionChanged EventKind = iota
	LivesChanged
	CoinsChanged
	StatsChanged
	Shot
	Died
)

// Event carries the new value of whatever changed. Count is the number of
// bullets for Shot.
type Event struct {
	Kind     EventKind
	Position cp.Vector
	Lives    int
	Coins    int
	Count    int
}

// Player is the controllable character. It owns its bullets.
type Player struct {
	cfg     Config
	bounds  cp.BB
	blocker Blocker
	bullets *projectile.Manager

	lives        int
	coins        int
	position     cp.Vector
	moveDir      cp.Vector
	moving       bool
	shootDir     cp.Vector
	moveSpeed    float64
	cooldown     float64
	countdown    float64
	bulletDamage int

	wheel       bool
	shotgun     bool
	badge       bool
	stealth     bool
	zombie      bool
	vendorBadge bool

	queue event.Queue[Event]
}

// New creates a player inside bounds and resets it. blocker may be nil.
func New(cfg Config, bounds cp.BB, bullets *projectile.Manager, blocker Blocker) *Player {
	if bullets == nil {
		bullets = projectile.NewManager(nil, 0)
	}
	p := &Player{
		cfg:     cfg.WithDefaults(),
		bounds:  bounds,
		blocker: blocker,
		bullets: bullets,
	}
	p.Reset()
	p.queue.Flush()
	return p
}

// SetConfig swaps the tuning. It takes effect on the next Reset.
func (p *Player) SetConfig(cfg Config) {
	if p == nil {
		return
	}
	p.cfg = cfg.WithDefaults()
}

func (p *Player) Config() Config {
	if p == nil {
		return DefaultConfig()
	}
	return p.cfg
}

// Reset restores the starting state in place.
func (p *Player) Reset() {
	if p == nil {
		return
	}
	p.lives = p.cfg.Lives
	p.coins = 0
	p.position = p.center()
	p.moveDir = cp.Vector{}
	p.moving = false
	p.shootDir = cp.Vector{X: 1}
	p.moveSpeed = p.cfg.MoveSpeed
	p.cooldown = p.cfg.ShootCooldown
	p.countdown = 0
	p.bulletDamage = 1
	p.wheel, p.shotgun, p.badge = false, false, false
	p.stealth, p.zombie, p.vendorBadge = false, false, false
	p.bullets.Clear()

	p.queue.Push(Event{Kind: PositionChanged, Position: p.position})
	p.queue.Push(Event{Kind: LivesChanged, Lives: p.lives})
	p.queue.Push(Event{Kind: CoinsChanged, Coins: p.coins})
	p.queue.Push(Event{Kind: StatsChanged})
}

// Recenter moves the player to the middle of the map.
func (p *Player) Recenter() {
	if p == nil {
		return
	}
	p.setPosition(p.center())
}

func (p *Player) center() cp.Vector {
	return cp.Vector{X: (p.bounds.L + p.bounds.R) / 2, Y: (p.bounds.B + p.bounds.T) / 2}
}

// SetMoveDirection stores the requested heading. Move applies it.
func (p *Player) SetMoveDirection(dir cp.Vector, moving bool) {
	if p == nil {
		return
	}
	p.moveDir = dir
	p.moving = moving
}

// Move advances the player along its heading, clamped to the bounds minus the
// margin. With a blocker each axis is tried separately so the player slides
// along walls.
func (p *Player) Move(dt float64) {
	if p == nil || !p.moving {
		return
	}
	dir, ok := common.Normalize(p.moveDir)
	if !ok {
		return
	}
	step := dir.Mult(p.EffectiveMoveSpeed() * dt)

	next := p.position
	x := p.clampX(next.X + step.X)
	if p.blocker == nil || !p.blocker.Blocks(cp.Vector{X: x, Y: next.Y}) {
		next.X = x
	}
	y := p.clampY(next.Y + step.Y)
	if p.blocker == nil || !p.blocker.Blocks(cp.Vector{X: next.X, Y: y}) {
		next.Y = y
	}
	p.setPosition(next)
}

func (p *Player) clampX(x float64) float64 {
	return common.Clamp(x, p.bounds.L+p.cfg.Margin, p.bounds.R-p.cfg.Margin)
}

func (p *Player) clampY(y float64) float64 {
	return common.Clamp(y, p.bounds.B+p.cfg.Margin, p.bounds.T-p.cfg.Margin)
}

func (p *Player) setPosition(pos cp.Vector) {
	if pos == p.position {
		return
	}
	p.position = pos
	p.queue.Push(Event{Kind: PositionChanged, Position: pos})
}

// Tick counts the shot cooldown down.
func (p *Player) Tick(dt float64) {
	if p == nil {
		return
	}
	p.countdown = common.FloorTimer(p.countdown, dt)
	common.Assert(p.countdown >= 0, "player: negative countdown %v", p.countdown)
}

func (p *Player) CanShoot() bool {
	return p != nil && p.countdown <= 0
}

// wheelDirections are the eight fixed headings fired in wheel mode.
var wheelDirections = [8]float64{0, 45, 90, 135, 180, 225, 270, 315}

// Shoot fires along dir according to the active modes and restarts the
// cooldown. It returns the number of bullets fired.
func (p *Player) Shoot(dir cp.Vector) int {
	if p == nil || !p.CanShoot() {
		return 0
	}
	aim, ok := common.Normalize(dir)
	if !ok {
		return 0
	}
	p.shootDir = aim

	var headings []cp.Vector
	if p.wheel {
		for _, deg := range wheelDirections {
			headings = append(headings, common.RotateDegrees(cp.Vector{X: 1}, deg))
		}
	} else {
		headings = []cp.Vector{aim}
	}

	fan := p.shotgun || p.badge
	fired := 0
	for _, h := range headings {
		if !fan {
			fired += p.fire(h)
			continue
		}
		for _, deg := range []float64{-p.cfg.SpreadDegrees, 0, p.cfg.SpreadDegrees} {
			fired += p.fire(common.RotateDegrees(h, deg))
		}
	}

	p.countdown = p.EffectiveShootCooldown()
	p.queue.Push(Event{Kind: Shot, Count: fired, Position: p.position})
	return fired
}

func (p *Player) fire(dir cp.Vector) int {
	if _, ok := p.bullets.Create(p.position, dir, p.cfg.BulletSpeed, p.bulletDamage); ok {
		return 1
	}
	return 0
}

// TakeDamage removes a life. It reports whether the player is still alive;
// lives below zero emit Died.
func (p *Player) TakeDamage() bool {
	if p == nil {
		return false
	}
	p.lives--
	p.queue.Push(Event{Kind: LivesChanged, Lives: p.lives})
	if p.lives < 0 {
		p.queue.Push(Event{Kind: Died, Position: p.position})
		return false
	}
	return true
}

func (p *Player) AddLife() {
	if p == nil {
		return
	}
	p.lives++
	p.queue.Push(Event{Kind: LivesChanged, Lives: p.lives})
}

// AddCoins adds n coins (n may be negative). Coins never drop below zero.
func (p *Player) AddCoins(n int) {
	if p == nil || n == 0 {
		return
	}
	p.coins = max(0, p.coins+n)
	p.queue.Push(Event{Kind: CoinsChanged, Coins: p.coins})
}

// SetMoveSpeed stores a base speed clamped to the configured range.
func (p *Player) SetMoveSpeed(v float64) {
	if p == nil {
		return
	}
	p.moveSpeed = common.Clamp(v, p.cfg.MinMoveSpeed, p.cfg.MaxMoveSpeed)
	p.statsChanged()
}

// SetShootCooldown stores the cooldown, floored at the configured minimum.
func (p *Player) SetShootCooldown(v float64) {
	if p == nil {
		return
	}
	p.cooldown = max(v, p.cfg.MinShootCooldown)
	p.statsChanged()
}

func (p *Player) SetBulletDamage(v int) {
	if p == nil {
		return
	}
	p.bulletDamage = max(1, v)
	p.statsChanged()
}

func (p *Player) SetWheel(on bool)   { p.setFlag(&p.wheel, on) }
func (p *Player) SetShotgun(on bool) { p.setFlag(&p.shotgun, on) }
func (p *Player) SetBadge(on bool)   { p.setFlag(&p.badge, on) }
func (p *Player) SetStealth(on bool) { p.setFlag(&p.stealth, on) }
func (p *Player) SetZombie(on bool)  { p.setFlag(&p.zombie, on) }

// SetVendorBadge marks the badge as bought, which keeps badge mode on past
// any timed effect.
func (p *Player) SetVendorBadge(on bool) {
	if p == nil {
		return
	}
	p.vendorBadge = on
	if on {
		p.badge = true
	}
	p.statsChanged()
}

func (p *Player) setFlag(flag *bool, on bool) {
	if p == nil || *flag == on {
		return
	}
	*flag = on
	p.statsChanged()
}

func (p *Player) statsChanged() {
	p.queue.Push(Event{Kind: StatsChanged})
}

// EffectiveMoveSpeed is the speed Move uses: the stored speed, raised by
// badge mode.
func (p *Player) EffectiveMoveSpeed() float64 {
	if p == nil {
		return 0
	}
	if !p.badge {
		return p.moveSpeed
	}
	return min(max(p.moveSpeed, p.cfg.MoveSpeed*p.cfg.BadgeSpeedScale), p.cfg.MaxMoveSpeed)
}

// EffectiveShootCooldown is the cooldown Shoot applies.
func (p *Player) EffectiveShootCooldown() float64 {
	if p == nil {
		return 0
	}
	if p.badge {
		return p.cooldown * p.cfg.BadgeCooldownScale
	}
	return p.cooldown
}

func (p *Player) Lives() int                { return p.lives }
func (p *Player) Coins() int                { return p.coins }
func (p *Player) Position() cp.Vector       { return p.position }
func (p *Player) ShootDirection() cp.Vector { return p.shootDir }
func (p *Player) MoveSpeed() float64        { return p.moveSpeed }
func (p *Player) ShootCooldown() float64    { return p.cooldown }
func (p *Player) Countdown() float64        { return p.countdown }
func (p *Player) BulletDamage() int         { return p.bulletDamage }
func (p *Player) Wheel() bool               { return p.wheel }
func (p *Player) Shotgun() bool             { return p.shotgun }
func (p *Player) Badge() bool               { return p.badge }
func (p *Player) Stealth() bool             { return p.stealth }
func (p *Player) Zombie() bool              { return p.zombie }
func (p *Player) VendorBadge() bool         { return p.vendorBadge }
func (p *Player) Alive() bool               { return p.lives >= 0 }

// Projectiles exposes the bullet manager the player fires into.
func (p *Player) Projectiles() *projectile.Manager { return p.bullets }

func (p *Player) Events() []Event {
	if p == nil {
		return nil
	}
	return p.queue.Drain()
}

// View is a copy of the player state for renderers and tests.
type View struct {
	Lives          int
	Coins          int
	Position       cp.Vector
	ShootDirection cp.Vector
	MoveSpeed      float64
	ShootCooldown  float64
	Countdown      float64
	BulletDamage   int
	Wheel          bool
	Shotgun        bool
	Badge          bool
	Stealth        bool
	Zombie         bool
	VendorBadge    bool
}

func (p *Player) View() View {
	if p == nil {
		return View{}
	}
	return View{
		Lives:          p.lives,
		Coins:          p.coins,
		Position:       p.position,
		ShootDirection: p.shootDir,
		MoveSpeed:      p.EffectiveMoveSpeed(),
		ShootCooldown:  p.EffectiveShootCooldown(),
		Countdown:      p.countdown,
		BulletDamage:   p.bulletDamage,
		Wheel:          p.wheel,
		Shotgun:        p.shotgun,
		Badge:          p.badge,
		Stealth:        p.stealth,
		Zombie:         p.zombie,
		VendorBadge:    p.vendorBadge,
	}
}
