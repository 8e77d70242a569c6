package game

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/collision"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/config"
	"github.com/milk9111/outlaw/drops"
	"github.com/milk9111/outlaw/enemy"
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/item"
	"github.com/milk9111/outlaw/level"
	"github.com/milk9111/outlaw/logger"
	"github.com/milk9111/outlaw/player"
	"github.com/milk9111/outlaw/projectile"
	"github.com/milk9111/outlaw/shop"
	"github.com/sirupsen/logrus"
)

// Options wires a Game. Zero values fall back to defaults: an empty map, the
// default config, its static drop policy, a seeded rng and a silent logger.
type Options struct {
	Config *config.Game
	Map    *level.TileMap
	Drops  drops.Policy
	Rand   *rand.Rand
	Log    logrus.FieldLogger
}

// Game runs the simulation. Drive it with UpdateGame once per frame.
type Game struct {
	cfg     config.Game
	pending *config.Game
	log     logrus.FieldLogger
	rng     *rand.Rand

	space   *collision.System
	player  *player.Player
	enemies *enemy.Manager
	items   *item.Manager
	effects *item.EffectManager
	vendor  *shop.Manager
	drops   drops.Policy

	state       State
	outcome     Outcome
	gameTime    float64
	vendorTimer float64
	kills       int

	shootDir cp.Vector
	firing   bool

	notes event.Queue[Notification]
}

func New(opts Options) *Game {
	cfg := config.DefaultGame()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	tiles := opts.Map
	if tiles == nil {
		tiles = level.Empty()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	log := logger.OrDiscard(opts.Log)
	policy := opts.Drops
	if policy == nil {
		policy = drops.NewStatic(cfg.Drops.Chance, cfg.DropWeights())
	}

	space := collision.New(tiles, cfg.Radii)
	bullets := projectile.NewManager(space, cfg.Radii.Bullet)
	p := player.New(cfg.Player, space.Bounds(), bullets, space)

	return &Game{
		cfg:     cfg,
		log:     log,
		rng:     rng,
		space:   space,
		player:  p,
		enemies: enemy.NewManager(space, cfg.EnemyConfig(), childRand(rng), log),
		items:   item.NewManager(tiles.TileSize, cfg.Items.Lifetime, childRand(rng), log),
		effects: item.NewEffectManager(p, cfg.Items, log),
		vendor:  shop.NewManager(cfg.Catalog, cfg.HardMode, log),
		drops:   policy,
		state:   Menu,
	}
}

func childRand(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(rng.Int63()))
}

// Reconfigure stores new tuning and drop policy. They apply on the next
// Start; a nil policy keeps the current one.
func (g *Game) Reconfigure(cfg config.Game, policy drops.Policy) {
	if g == nil {
		return
	}
	g.pending = &cfg
	if policy != nil {
		g.drops = policy
	}
	g.log.Info("game: config reloaded, applies on next start")
}

func (g *Game) applyPending() {
	if g.pending == nil {
		return
	}
	g.cfg = *g.pending
	g.pending = nil
	g.player.SetConfig(g.cfg.Player)
	g.enemies.SetConfig(g.cfg.EnemyConfig())
	g.items.SetLifetime(g.cfg.Items.Lifetime)
	g.effects.SetTuning(g.cfg.Items)
	g.vendor.SetCatalog(g.cfg.Catalog)
	g.vendor.SetHardMode(g.cfg.HardMode)
}

// Start begins a fresh run from the menu or the game over screen.
func (g *Game) Start() bool {
	if g == nil || (g.state != Menu && g.state != GameOver) {
		return false
	}
	g.applyPending()
	g.reset()
	g.setState(Playing)
	return true
}

func (g *Game) Pause() bool {
	if g == nil || g.state != Playing {
		return false
	}
	g.setState(Paused)
	return true
}

func (g *Game) Resume() bool {
	if g == nil || g.state != Paused {
		return false
	}
	g.setState(Playing)
	return true
}

func (g *Game) TogglePause() bool {
	if g == nil {
		return false
	}
	switch g.state {
	case Playing:
		return g.Pause()
	case Paused:
		return g.Resume()
	default:
		return false
	}
}

// End abandons the run and returns to the menu.
func (g *Game) End() bool {
	if g == nil || g.state == Menu {
		return false
	}
	g.setState(Menu)
	return true
}

func (g *Game) setState(s State) {
	g.log.WithFields(logrus.Fields{"from": g.state.String(), "to": s.String()}).Info("game: state")
	g.state = s
	g.notes.Push(Notification{Kind: StateChanged, Name: s.String()})
}

func (g *Game) reset() {
	g.outcome = OutcomeNone
	g.gameTime = 0
	g.vendorTimer = 0
	g.kills = 0
	g.shootDir = cp.Vector{}
	g.firing = false

	g.player.Reset()
	g.enemies.ClearAll()
	g.enemies.ResetSpawner()
	g.items.Reset()
	g.effects.Reset()
	g.vendor.Reset()

	g.player.Events()
	g.player.Projectiles().Events()
	g.enemies.Events()
	g.space.Events()
	g.vendor.Events()
	g.notes.Flush()
}

// SetMoveDirection sets the player's heading; moving=false stops it.
func (g *Game) SetMoveDirection(dir cp.Vector, moving bool) {
	if g == nil {
		return
	}
	g.player.SetMoveDirection(dir, moving)
}

// SetShootDirection holds or releases the trigger. While firing the player
// shoots along dir whenever the cooldown allows.
func (g *Game) SetShootDirection(dir cp.Vector, firing bool) {
	if g == nil {
		return
	}
	g.shootDir = dir
	g.firing = firing
}

// UseItem applies the held item.
func (g *Game) UseItem() bool {
	if g == nil || g.state != Playing {
		return false
	}
	if !g.items.UseHeld() {
		return false
	}
	g.routeItemEvents()
	g.routeEffectEvents()
	g.routePlayerEvents()
	return true
}

// Purchase buys from the vendor while it is open.
func (g *Game) Purchase(t shop.ItemType) bool {
	if g == nil || g.state != Playing || !g.vendor.IsActive() {
		return false
	}
	// running effects must restore to the upgraded values
	var ok bool
	g.effects.Rebase(func() { ok = g.vendor.Purchase(t, g.player) })
	g.routeVendorEvents()
	g.routePlayerEvents()
	return ok
}

// LeaveVendor closes the vendor and resumes the run.
func (g *Game) LeaveVendor() bool {
	if g == nil || g.state != Playing || !g.vendor.IsActive() {
		return false
	}
	g.vendor.Close()
	g.routeVendorEvents()
	return true
}

// UpdateGame advances the simulation by dt seconds. It does nothing unless
// the game is playing.
func (g *Game) UpdateGame(dt float64) {
	if g == nil || g.state != Playing {
		return
	}
	dt = common.Clamp(dt, 0, g.cfg.MaxDelta())

	// game clock and vendor schedule
	if !g.vendor.IsActive() {
		g.gameTime += dt
		if g.cfg.VendorInterval > 0 {
			g.vendorTimer += dt
			if g.vendorTimer >= g.cfg.VendorInterval {
				g.vendorTimer = 0
				g.openVendor()
			}
		}
	}
	shopping := g.vendor.IsActive()

	// player
	if g.firing && !shopping {
		if n := g.player.Shoot(g.shootDir); n > 0 {
			g.notes.Push(Notification{Kind: PlayerShot, Value: n, Position: g.player.Position()})
		}
	}
	g.player.Tick(dt)
	g.player.Move(dt)
	g.player.Projectiles().Tick(dt)
	g.player.Projectiles().Events()

	// enemies
	if !shopping {
		g.enemies.UpdateAll(dt, g.player.Position(), g.player.Stealth(), false)
	}

	// collisions
	bodies := g.enemies.Bodies()
	g.space.ScanPlayer(g.player.Position(), g.player.Zombie(), bodies)
	g.space.ScanBullets(g.bulletBodies(), bodies)
	g.dispatchCollisions()
	g.routeEnemyEvents()

	// items and effects
	g.items.Tick(dt, g.items.CellFor(g.player.Position()))
	g.routeItemEvents()
	g.effects.Update(dt)
	g.routeEffectEvents()

	g.routePlayerEvents()
	if g.state != Playing {
		return
	}

	if g.gameTime > g.cfg.MaxGameTime {
		g.gameTime = 0
		g.finish(OutcomeWon)
	}
}

func (g *Game) bulletBodies() []collision.Body {
	bullets := g.player.Projectiles().Bullets()
	out := make([]collision.Body, 0, len(bullets))
	for _, b := range bullets {
		out = append(out, collision.Body{ID: b.ID, Position: b.Position})
	}
	return out
}

func (g *Game) dispatchCollisions() {
	bullets := g.player.Projectiles()
	for _, evt := range g.space.Events() {
		switch evt.Kind {
		case collision.PlayerHitByEnemy:
			g.playerHit()
		case collision.EnemyHitByZombie:
			g.enemies.Kill(evt.EnemyID)
		case collision.EnemyHitByBullet:
			b, ok := bullets.Bullet(evt.BulletID)
			if !ok {
				continue
			}
			target, ok := g.enemies.Enemy(evt.EnemyID)
			if !ok {
				// already killed this tick by another bullet
				bullets.Deactivate(b.ID)
				continue
			}
			g.enemies.Damage(b.ID, target.ID, b.Damage)
			// whatever damage the enemy did not absorb carries on
			bullets.DamageAt(b.ID, b.Damage-target.Health)
		}
	}
}

func (g *Game) playerHit() {
	g.notes.Push(Notification{Kind: PlayerHit, Position: g.player.Position()})
	if !g.player.TakeDamage() {
		return
	}
	g.enemies.ClearAll()
	g.effects.ClearAll()
	g.player.Projectiles().Clear()
	g.player.Recenter()
}

func (g *Game) openVendor() {
	g.vendor.Open()
	g.enemies.ClearAll()
	g.player.Projectiles().Clear()
	g.effects.ClearAll()
	g.routeVendorEvents()
}

func (g *Game) finish(o Outcome) {
	g.outcome = o
	g.firing = false
	g.log.WithFields(logrus.Fields{"outcome": o.String(), "kills": g.kills}).Info("game: over")
	g.setState(GameOver)
}

func (g *Game) routeEnemyEvents() {
	for _, evt := range g.enemies.Events() {
		switch evt.Kind {
		case enemy.Spawned:
			g.notes.Push(Notification{Kind: EnemySpawned, Value: evt.ID, Position: evt.Position})
		case enemy.Destroyed:
			g.kills++
			g.notes.Push(Notification{Kind: EnemyDestroyed, Value: evt.ID, Position: evt.Position})
			g.rollDrop(evt.Position)
		}
	}
}

func (g *Game) rollDrop(pos cp.Vector) {
	ctx := drops.Context{GameTime: g.gameTime, HardMode: g.cfg.HardMode, Kills: g.kills}
	table, ok := drops.Roll(g.drops, ctx, g.rng)
	if !ok {
		return
	}
	g.items.CreateRandom(pos, table)
}

func (g *Game) routeItemEvents() {
	for _, evt := range g.items.Events() {
		pos := g.space.Map().CellCenter(evt.Item.Cell)
		switch evt.Kind {
		case item.Created:
			g.notes.Push(Notification{Kind: ItemDropped, Name: evt.Item.Type.String(), Position: pos})
		case item.PickedUp:
			g.notes.Push(Notification{Kind: ItemPickedUp, Name: evt.Item.Type.String(), Position: pos})
		case item.Expired:
			g.notes.Push(Notification{Kind: ItemExpired, Name: evt.Item.Type.String(), Position: pos})
		case item.ApplyRequested:
			g.effects.Apply(evt.Item.Type)
			g.notes.Push(Notification{Kind: ItemUsed, Name: evt.Item.Type.String(), Position: pos})
		}
	}
}

func (g *Game) routeEffectEvents() {
	for _, evt := range g.effects.Events() {
		switch evt.Kind {
		case item.EffectApplied:
			g.notes.Push(Notification{Kind: EffectStarted, Name: evt.Effect.Kind.String()})
		case item.EffectExpired:
			g.notes.Push(Notification{Kind: EffectEnded, Name: evt.Effect.Kind.String()})
		case item.KillAllRequested:
			g.enemies.KillAll()
			g.routeEnemyEvents()
		}
	}
}

func (g *Game) routeVendorEvents() {
	for _, evt := range g.vendor.Events() {
		switch evt.Kind {
		case shop.Opened:
			g.notes.Push(Notification{Kind: VendorOpened})
		case shop.Closed:
			g.notes.Push(Notification{Kind: VendorClosed})
		case shop.Purchased:
			g.notes.Push(Notification{Kind: Purchased, Name: string(evt.Item), Value: evt.Price})
		case shop.Rejected:
			g.notes.Push(Notification{Kind: PurchaseRejected, Name: string(evt.Item), Value: evt.Price})
		}
	}
}

func (g *Game) routePlayerEvents() {
	died := false
	for _, evt := range g.player.Events() {
		switch evt.Kind {
		case player.LivesChanged:
			g.notes.Push(Notification{Kind: LivesChanged, Value: evt.Lives})
		case player.CoinsChanged:
			g.notes.Push(Notification{Kind: CoinsChanged, Value: evt.Coins})
		case player.Died:
			died = true
		}
	}
	if died && g.state == Playing {
		g.finish(OutcomeLost)
	}
}

func (g *Game) State() State {
	if g == nil {
		return Menu
	}
	return g.state
}

func (g *Game) Outcome() Outcome       { return g.outcome }
func (g *Game) GameTime() float64      { return g.gameTime }
func (g *Game) Kills() int             { return g.kills }
func (g *Game) Config() config.Game    { return g.cfg }
func (g *Game) Map() *level.TileMap    { return g.space.Map() }
func (g *Game) SpawnInterval() float64 { return g.enemies.SpawnInterval() }
func (g *Game) VendorActive() bool     { return g.vendor.IsActive() }

// Player returns a copy of the player state.
func (g *Game) Player() player.View { return g.player.View() }

func (g *Game) Bullets() []projectile.Bullet { return g.player.Projectiles().Bullets() }
func (g *Game) Enemies() []enemy.Enemy       { return g.enemies.Enemies() }
func (g *Game) Items() []item.Item           { return g.items.Items() }
func (g *Game) Effects() []item.Effect       { return g.effects.Active() }

// HeldItem reports the item in the player's slot.
func (g *Game) HeldItem() (item.Type, bool) { return g.items.HeldItem() }

// VendorOffers lists what the vendor sells right now. Empty while closed.
func (g *Game) VendorOffers() []shop.ItemConfig {
	if !g.vendor.IsActive() {
		return nil
	}
	return g.vendor.Offers()
}

// Notifications drains the outgoing event stream.
func (g *Game) Notifications() []Notification {
	if g == nil {
		return nil
	}
	return g.notes.Drain()
}
