package item

import "github.com/milk9111/outlaw/player"

// Type is a pickup kind.
type Type int

const (
	Coin Type = iota
	FiveCoins
	ExtraLife
	Coffee
	MachineGun
	Wheel
	Shotgun
	Badge
	Tombstone
	SmokeBomb
	Nuke
)

var typeNames = map[Type]string{
	Coin:       "coin",
	FiveCoins:  "five_coins",
	ExtraLife:  "extra_life",
	Coffee:     "coffee",
	MachineGun: "machine_gun",
	Wheel:      "wheel",
	Shotgun:    "shotgun",
	Badge:      "badge",
	Tombstone:  "tombstone",
	SmokeBomb:  "smoke_bomb",
	Nuke:       "nuke",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps a config name such as "machine_gun" to its Type.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Types lists every pickup kind in declaration order.
func Types() []Type {
	out := make([]Type, 0, len(typeNames))
	for t := Coin; t <= Nuke; t++ {
		out = append(out, t)
	}
	return out
}

// EffectKind is a timed modifier applied to the player.
type EffectKind int

const (
	MoveSpeedBoost EffectKind = iota
	ShootSpeedBoost
	WheelMode
	ShotgunMode
	BadgeMode
	ZombieMode
	StealthMode

	effectKindCount
)

func (k EffectKind) String() string {
	switch k {
	case MoveSpeedBoost:
		return "move_speed_boost"
	case ShootSpeedBoost:
		return "shoot_speed_boost"
	case WheelMode:
		return "wheel_mode"
	case ShotgunMode:
		return "shotgun_mode"
	case BadgeMode:
		return "badge_mode"
	case ZombieMode:
		return "zombie_mode"
	case StealthMode:
		return "stealth_mode"
	default:
		return "unknown"
	}
}

// Descriptor says what using a pickup does. Instant pickups are applied as
// soon as the player steps on them and never take the held slot.
type Descriptor struct {
	Type      Type
	Instant   bool
	Coins     int
	Lives     int
	Effect    EffectKind
	HasEffect bool
	KillAll   bool
}

var descriptors = map[Type]Descriptor{
	Coin:       {Type: Coin, Instant: true, Coins: 1},
	FiveCoins:  {Type: FiveCoins, Instant: true, Coins: 5},
	ExtraLife:  {Type: ExtraLife, Instant: true, Lives: 1},
	Coffee:     {Type: Coffee, Effect: MoveSpeedBoost, HasEffect: true},
	MachineGun: {Type: MachineGun, Effect: ShootSpeedBoost, HasEffect: true},
	Wheel:      {Type: Wheel, Effect: WheelMode, HasEffect: true},
	Shotgun:    {Type: Shotgun, Effect: ShotgunMode, HasEffect: true},
	Badge:      {Type: Badge, Effect: BadgeMode, HasEffect: true},
	Tombstone:  {Type: Tombstone, Effect: ZombieMode, HasEffect: true},
	SmokeBomb:  {Type: SmokeBomb, Effect: StealthMode, HasEffect: true},
	Nuke:       {Type: Nuke, KillAll: true},
}

// Describe returns the descriptor of t. Unknown types describe a coin.
func Describe(t Type) Descriptor {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return descriptors[Coin]
}

// Rule is how an effect combines with the player's current stat value.
type Rule int

const (
	// RuleMax keeps the larger of the current value and base*multiplier.
	RuleMax Rule = iota
	// RuleMin keeps the smaller one.
	RuleMin
	// RuleFlag sets a mode flag to 1.
	RuleFlag
)

// EffectSpec binds an effect kind to the player stat it changes.
type EffectSpec struct {
	Kind       EffectKind
	Stat       player.Stat
	Rule       Rule
	Multiplier float64
	Duration   float64
}

// Tuning holds the configurable effect numbers.
type Tuning struct {
	Duration             float64 `yaml:"duration"`
	CoffeeMultiplier     float64 `yaml:"coffee_multiplier"`
	MachineGunMultiplier float64 `yaml:"machine_gun_multiplier"`
	// Lifetime is how long a dropped item stays on the ground.
	Lifetime float64 `yaml:"lifetime"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Duration:             10,
		CoffeeMultiplier:     1.5,
		MachineGunMultiplier: 0.5,
		Lifetime:             10,
	}
}

func (t Tuning) WithDefaults() Tuning {
	d := DefaultTuning()
	if t.Duration <= 0 {
		t.Duration = d.Duration
	}
	if t.CoffeeMultiplier <= 0 {
		t.CoffeeMultiplier = d.CoffeeMultiplier
	}
	if t.MachineGunMultiplier <= 0 {
		t.MachineGunMultiplier = d.MachineGunMultiplier
	}
	if t.Lifetime <= 0 {
		t.Lifetime = d.Lifetime
	}
	return t
}

// Specs builds the effect table for the tuning.
func (t Tuning) Specs() map[EffectKind]EffectSpec {
	t = t.WithDefaults()
	return map[EffectKind]EffectSpec{
		MoveSpeedBoost:  {Kind: MoveSpeedBoost, Stat: player.StatMoveSpeed, Rule: RuleMax, Multiplier: t.CoffeeMultiplier, Duration: t.Duration},
		ShootSpeedBoost: {Kind: ShootSpeedBoost, Stat: player.StatShootCooldown, Rule: RuleMin, Multiplier: t.MachineGunMultiplier, Duration: t.Duration},
		WheelMode:       {Kind: WheelMode, Stat: player.StatWheel, Rule: RuleFlag, Duration: t.Duration},
		ShotgunMode:     {Kind: ShotgunMode, Stat: player.StatShotgun, Rule: RuleFlag, Duration: t.Duration},
		BadgeMode:       {Kind: BadgeMode, Stat: player.StatBadge, Rule: RuleFlag, Duration: t.Duration},
		ZombieMode:      {Kind: ZombieMode, Stat: player.StatZombie, Rule: RuleFlag, Duration: t.Duration},
		StealthMode:     {Kind: StealthMode, Stat: player.StatStealth, Rule: RuleFlag, Duration: t.Duration},
	}
}
