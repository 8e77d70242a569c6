package shop

import (
	"fmt"

	"github.com/milk9111/outlaw/player"
)

// SlotCount is the number of upgrade lines the vendor sells.
const SlotCount = 4

// ItemType names a vendor item.
type ItemType string

const (
	Boots1       ItemType = "boots_1"
	Boots2       ItemType = "boots_2"
	Gun1         ItemType = "gun_1"
	Gun2         ItemType = "gun_2"
	Gun3         ItemType = "gun_3"
	SuperGun     ItemType = "super_gun"
	Ammo1        ItemType = "ammo_1"
	Ammo2        ItemType = "ammo_2"
	Ammo3        ItemType = "ammo_3"
	ExtraLife    ItemType = "extra_life"
	SheriffBadge ItemType = "sheriff_badge"
)

// GrantKind is what an upgrade changes on the buyer.
type GrantKind string

const (
	GrantSpeed       GrantKind = "speed"
	GrantCooldown    GrantKind = "cooldown"
	GrantDamage      GrantKind = "damage"
	GrantLife        GrantKind = "life"
	GrantShotgun     GrantKind = "shotgun"
	GrantVendorBadge GrantKind = "vendor_badge"
)

// Grant describes the permanent effect of a purchase. Speed raises the
// current speed to at least base*Multiplier; cooldown lowers the current
// cooldown to at most base*Multiplier; damage and life add Amount.
type Grant struct {
	Kind       GrantKind `yaml:"kind"`
	Multiplier float64   `yaml:"multiplier,omitempty"`
	Amount     int       `yaml:"amount,omitempty"`
}

// ItemConfig is one catalog entry. Index is the position in the slot's
// upgrade line; an entry is offered once the slot progress reaches it.
type ItemConfig struct {
	Type         ItemType `yaml:"type"`
	Price        int      `yaml:"price"`
	Slot         int      `yaml:"slot"`
	Index        int      `yaml:"index"`
	HardModeOnly bool     `yaml:"hard_mode_only,omitempty"`
	Infinite     bool     `yaml:"infinite,omitempty"`
	Grant        Grant    `yaml:"grant"`
}

// DefaultCatalog is the built-in vendor stock.
func DefaultCatalog() []ItemConfig {
	return []ItemConfig{
		{Type: Boots1, Price: 8, Slot: 0, Index: 0, Grant: Grant{Kind: GrantSpeed, Multiplier: 1.2}},
		{Type: Boots2, Price: 20, Slot: 0, Index: 1, Grant: Grant{Kind: GrantSpeed, Multiplier: 1.4}},
		{Type: Gun1, Price: 10, Slot: 1, Index: 0, Grant: Grant{Kind: GrantCooldown, Multiplier: 0.85}},
		{Type: Gun2, Price: 20, Slot: 1, Index: 1, Grant: Grant{Kind: GrantCooldown, Multiplier: 0.7}},
		{Type: Gun3, Price: 30, Slot: 1, Index: 2, Grant: Grant{Kind: GrantCooldown, Multiplier: 0.55}},
		{Type: SuperGun, Price: 99, Slot: 1, Index: 3, HardModeOnly: true, Grant: Grant{Kind: GrantShotgun}},
		{Type: Ammo1, Price: 15, Slot: 2, Index: 0, Grant: Grant{Kind: GrantDamage, Amount: 1}},
		{Type: Ammo2, Price: 30, Slot: 2, Index: 1, Grant: Grant{Kind: GrantDamage, Amount: 1}},
		{Type: Ammo3, Price: 45, Slot: 2, Index: 2, Grant: Grant{Kind: GrantDamage, Amount: 1}},
		{Type: ExtraLife, Price: 10, Slot: 3, Index: 0, Infinite: true, Grant: Grant{Kind: GrantLife, Amount: 1}},
		{Type: SheriffBadge, Price: 10, Slot: 3, Index: 0, Infinite: true, Grant: Grant{Kind: GrantVendorBadge}},
	}
}

// ValidateCatalog checks slots, prices, duplicates and grant kinds.
func ValidateCatalog(catalog []ItemConfig) error {
	seen := make(map[ItemType]bool, len(catalog))
	for _, c := range catalog {
		if c.Type == "" {
			return fmt.Errorf("shop: catalog entry without type")
		}
		if seen[c.Type] {
			return fmt.Errorf("shop: duplicate catalog entry %s", c.Type)
		}
		seen[c.Type] = true
		if c.Slot < 0 || c.Slot >= SlotCount {
			return fmt.Errorf("shop: %s: slot %d out of range", c.Type, c.Slot)
		}
		if c.Index < 0 {
			return fmt.Errorf("shop: %s: negative index", c.Type)
		}
		if c.Price < 0 {
			return fmt.Errorf("shop: %s: negative price", c.Type)
		}
		switch c.Grant.Kind {
		case GrantSpeed, GrantCooldown:
			if c.Grant.Multiplier <= 0 {
				return fmt.Errorf("shop: %s: %s grant needs a multiplier", c.Type, c.Grant.Kind)
			}
		case GrantDamage, GrantLife, GrantShotgun, GrantVendorBadge:
		default:
			return fmt.Errorf("shop: %s: unknown grant %q", c.Type, c.Grant.Kind)
		}
	}
	return nil
}

// Buyer is what a purchase charges and upgrades. *player.Player satisfies it.
type Buyer interface {
	Coins() int
	AddCoins(n int)
	AddLife()
	MoveSpeed() float64
	SetMoveSpeed(v float64)
	ShootCooldown() float64
	SetShootCooldown(v float64)
	BaseStat(s player.Stat) float64
	BulletDamage() int
	SetBulletDamage(v int)
	SetShotgun(on bool)
	SetVendorBadge(on bool)
}

func (g Grant) apply(b Buyer) {
	switch g.Kind {
	case GrantSpeed:
		b.SetMoveSpeed(max(b.MoveSpeed(), b.BaseStat(player.StatMoveSpeed)*g.Multiplier))
	case GrantCooldown:
		b.SetShootCooldown(min(b.ShootCooldown(), b.BaseStat(player.StatShootCooldown)*g.Multiplier))
	case GrantDamage:
		b.SetBulletDamage(b.BulletDamage() + max(1, g.Amount))
	case GrantLife:
		for i := 0; i < max(1, g.Amount); i++ {
			b.AddLife()
		}
	case GrantShotgun:
		b.SetShotgun(true)
	case GrantVendorBadge:
		b.SetVendorBadge(true)
	}
}
