package collision

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outlaw/common"
	"github.com/milk9111/outlaw/event"
	"github.com/milk9111/outlaw/level"
)

// Radii holds the collision radius of each body kind, in pixels.
type Radii struct {
	Player float64 `yaml:"player"`
	Enemy  float64 `yaml:"enemy"`
	Bullet float64 `yaml:"bullet"`
}

func DefaultRadii() Radii {
	return Radii{Player: 12, Enemy: 12, Bullet: 4}
}

// Body is the minimal view of an entity the scans need.
type Body struct {
	ID       int
	Position cp.Vector
}

type EventKind int

const (
	PlayerHitByEnemy EventKind = iota
	EnemyHitByBullet
	EnemyHitByZombie
)

func (k EventKind) String() string {
	switch k {
	case PlayerHitByEnemy:
		return "player_hit_by_enemy"
	case EnemyHitByBullet:
		return "enemy_hit_by_bullet"
	case EnemyHitByZombie:
		return "enemy_hit_by_zombie"
	default:
		return "unknown"
	}
}

// Event is a detected overlap. BulletID is only set for EnemyHitByBullet.
type Event struct {
	Kind     EventKind
	EnemyID  int
	BulletID int
}

// System answers overlap queries against the tile map and records hits found
// by the per-tick scans. It holds no entities of its own.
type System struct {
	tiles *level.TileMap
	radii Radii
	queue event.Queue[Event]
}

// New creates a collision system. A nil map is treated as empty.
func New(tiles *level.TileMap, radii Radii) *System {
	if tiles == nil {
		tiles = level.Empty()
	}
	return &System{tiles: tiles, radii: radii}
}

func (s *System) Map() *level.TileMap {
	if s == nil {
		return nil
	}
	return s.tiles
}

func (s *System) Radii() Radii {
	if s == nil {
		return DefaultRadii()
	}
	return s.radii
}

// Bounds returns the playable rectangle in pixels. An empty map falls back to
// the base screen size so the simulation can still run.
func (s *System) Bounds() cp.BB {
	if s == nil || s.tiles.IsEmpty() {
		return cp.BB{L: 0, B: 0, R: common.BaseWidth, T: common.BaseHeight}
	}
	return s.tiles.Bounds()
}

// Overlaps reports whether two circles touch or intersect.
func Overlaps(a cp.Vector, ra float64, b cp.Vector, rb float64) bool {
	return a.Distance(b) <= ra+rb
}

// RectHitsMap reports whether bb overlaps any non-walkable tile. Cells
// outside the map count as blocked. An empty map blocks nothing.
func (s *System) RectHitsMap(bb cp.BB) bool {
	if s == nil || s.tiles.IsEmpty() {
		return false
	}
	ts := float64(s.tiles.TileSize)
	left := int(math.Floor(bb.L / ts))
	top := int(math.Floor(bb.B / ts))
	right := int(math.Floor((bb.R - common.Epsilon) / ts))
	bottom := int(math.Floor((bb.T - common.Epsilon) / ts))
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if !s.tiles.Walkable(level.Cell{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}

// CircleHitsMap tests the bounding box of a circle against the map.
func (s *System) CircleHitsMap(center cp.Vector, r float64) bool {
	return s.RectHitsMap(cp.NewBBForExtents(center, r, r))
}

// PointWalkable reports whether p lies over a walkable tile.
func (s *System) PointWalkable(p cp.Vector) bool {
	if s == nil {
		return false
	}
	return s.tiles.WalkableAt(p)
}

// EnemiesOverlap reports whether two enemies at a and b would overlap.
func (s *System) EnemiesOverlap(a, b cp.Vector) bool {
	r := s.Radii().Enemy
	return Overlaps(a, r, b, r)
}

// Blocks implements the player's movement blocker: a player footprint at p
// that overlaps a wall is rejected.
func (s *System) Blocks(p cp.Vector) bool {
	return s.CircleHitsMap(p, s.Radii().Player)
}

// ScanPlayer checks the player against every enemy. A normal player stops at
// the first hit; a zombie player reports every enemy it touches.
func (s *System) ScanPlayer(playerPos cp.Vector, zombie bool, enemies []Body) {
	if s == nil {
		return
	}
	for _, e := range enemies {
		if !Overlaps(playerPos, s.radii.Player, e.Position, s.radii.Enemy) {
			continue
		}
		if zombie {
			s.queue.Push(Event{Kind: EnemyHitByZombie, EnemyID: e.ID})
			continue
		}
		s.queue.Push(Event{Kind: PlayerHitByEnemy, EnemyID: e.ID})
		return
	}
}

// ScanBullets reports, for each bullet, the first enemy it overlaps.
func (s *System) ScanBullets(bullets, enemies []Body) {
	if s == nil {
		return
	}
	for _, b := range bullets {
		for _, e := range enemies {
			if Overlaps(b.Position, s.radii.Bullet, e.Position, s.radii.Enemy) {
				s.queue.Push(Event{Kind: EnemyHitByBullet, EnemyID: e.ID, BulletID: b.ID})
				break
			}
		}
	}
}

// Events drains the hits recorded since the last call.
func (s *System) Events() []Event {
	if s == nil {
		return nil
	}
	return s.queue.Drain()
}
