package player

// Stat names a player value that timed effects and upgrades can change.
// Flags read and write as 0 or 1.
type Stat int

const (
	StatMoveSpeed Stat = iota
	StatShootCooldown
	StatWheel
	StatShotgun
	StatBadge
	StatZombie
	StatStealth
)

func (s Stat) String() string {
	switch s {
	case StatMoveSpeed:
		return "move_speed"
	case StatShootCooldown:
		return "shoot_cooldown"
	case StatWheel:
		return "wheel"
	case StatShotgun:
		return "shotgun"
	case StatBadge:
		return "badge"
	case StatZombie:
		return "zombie"
	case StatStealth:
		return "stealth"
	default:
		return "unknown"
	}
}

// Stat returns the stored value of s. Speed and cooldown are the stored
// values, not the badge-adjusted ones.
func (p *Player) Stat(s Stat) float64 {
	if p == nil {
		return 0
	}
	switch s {
	case StatMoveSpeed:
		return p.moveSpeed
	case StatShootCooldown:
		return p.cooldown
	case StatWheel:
		return flag(p.wheel)
	case StatShotgun:
		return flag(p.shotgun)
	case StatBadge:
		return flag(p.badge)
	case StatZombie:
		return flag(p.zombie)
	case StatStealth:
		return flag(p.stealth)
	default:
		return 0
	}
}

// SetStat writes s through the matching setter, so clamping rules apply.
func (p *Player) SetStat(s Stat, v float64) {
	if p == nil {
		return
	}
	switch s {
	case StatMoveSpeed:
		p.SetMoveSpeed(v)
	case StatShootCooldown:
		p.SetShootCooldown(v)
	case StatWheel:
		p.SetWheel(v != 0)
	case StatShotgun:
		p.SetShotgun(v != 0)
	case StatBadge:
		p.SetBadge(v != 0)
	case StatZombie:
		p.SetZombie(v != 0)
	case StatStealth:
		p.SetStealth(v != 0)
	}
}

// BaseStat returns the starting value of s from the config.
func (p *Player) BaseStat(s Stat) float64 {
	cfg := p.Config()
	switch s {
	case StatMoveSpeed:
		return cfg.MoveSpeed
	case StatShootCooldown:
		return cfg.ShootCooldown
	default:
		return 0
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
