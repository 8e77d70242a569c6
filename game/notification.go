package game

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// NotificationKind tells UI and audio collaborators what happened.
type NotificationKind int

const (
	StateChanged NotificationKind = iota
	VendorOpened
	VendorClosed
	Purchased
	PurchaseRejected
	EnemySpawned
	EnemyDestroyed
	ItemDropped
	ItemPickedUp
	ItemUsed
	ItemExpired
	EffectStarted
	EffectEnded
	PlayerHit
	PlayerShot
	LivesChanged
	CoinsChanged
)

func (k NotificationKind) String() string {
	switch k {
	case StateChanged:
		return "state_changed"
	case VendorOpened:
		return "vendor_opened"
	case VendorClosed:
		return "vendor_closed"
	case Purchased:
		return "purchased"
	case PurchaseRejected:
		return "purchase_rejected"
	case EnemySpawned:
		return "enemy_spawned"
	case EnemyDestroyed:
		return "enemy_destroyed"
	case ItemDropped:
		return "item_dropped"
	case ItemPickedUp:
		return "item_picked_up"
	case ItemUsed:
		return "item_used"
	case ItemExpired:
		return "item_expired"
	case EffectStarted:
		return "effect_started"
	case EffectEnded:
		return "effect_ended"
	case PlayerHit:
		return "player_hit"
	case PlayerShot:
		return "player_shot"
	case LivesChanged:
		return "lives_changed"
	case CoinsChanged:
		return "coins_changed"
	default:
		return "unknown"
	}
}

// Notification is one entry of the game's outgoing event stream. Name carries
// the state, item or effect name; Value carries counts.
type Notification struct {
	Kind     NotificationKind
	Name     string
	Value    int
	Position cp.Vector
}

func (n Notification) String() string {
	switch {
	case n.Name != "" && n.Value != 0:
		return fmt.Sprintf("%s %s %d", n.Kind, n.Name, n.Value)
	case n.Name != "":
		return fmt.Sprintf("%s %s", n.Kind, n.Name)
	case n.Value != 0:
		return fmt.Sprintf("%s %d", n.Kind, n.Value)
	default:
		return n.Kind.String()
	}
}
