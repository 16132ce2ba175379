package ecs

import "github.com/younwookim/maskrun/internal/domain/entity"

// Position is an entity's world position
type Position = entity.Vec2

// Health represents entity health
type Health struct {
	Current int
	Max     int
}

// TakeDamage applies damage and returns true if dead
func (h *Health) TakeDamage(amount int) bool {
	h.Current -= amount
	return h.Current <= 0
}

// IsAlive returns true if health > 0
func (h *Health) IsAlive() bool {
	return h.Current > 0
}

// Heal restores health up to max
func (h *Health) Heal(amount int) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Facing represents which direction entity faces
type Facing struct {
	Right bool
}

// Velocity is a speed in pixels/sec
type Velocity struct {
	X, Y float64
}

// AIType selects how an enemy moves
type AIType int

const (
	AIIdle AIType = iota
	AIPatrol
	AIChase
)

// ParseAIType maps a config name to an AIType. An empty name is idle.
func ParseAIType(s string) (AIType, bool) {
	switch s {
	case "", "idle":
		return AIIdle, true
	case "patrol":
		return AIPatrol, true
	case "chase":
		return AIChase, true
	default:
		return 0, false
	}
}

// AI holds enemy movement parameters and state
type AI struct {
	Type           AIType
	MoveSpeed      float64 // pixels/sec
	PatrolDistance float64 // pixels either side of PatrolStartX
	DetectRange    float64 // pixels

	// State
	PatrolStartX float64
	PatrolDir    int
}

// Player represents player-specific data
type Player struct {
	AmmoCount     int
	FaceMaskCount int
	HasGun        bool
	SpawnPoint    Position
	Dead          bool
}

// AddAmmo adds ammunition
func (p *Player) AddAmmo(n int) { p.AmmoCount += n }

// AddFaceMasks adds face masks
func (p *Player) AddFaceMasks(n int) { p.FaceMaskCount += n }

// PickupShotgun lets the player shoot
func (p *Player) PickupShotgun() { p.HasGun = true }

// Enemy represents enemy-specific data
type Enemy struct {
	Kind          string
	ContactDamage int
	Width, Height float64
}

// ItemKind is the type of a world pickup
type ItemKind int

const (
	ItemAmmoBox ItemKind = iota
	ItemFaceMask
	ItemShotgun
	ItemVaccine
)

// String returns the config name of the item kind
func (k ItemKind) String() string {
	switch k {
	case ItemAmmoBox:
		return "ammoBox"
	case ItemFaceMask:
		return "facemask"
	case ItemShotgun:
		return "shotgun"
	case ItemVaccine:
		return "vaccine"
	default:
		return "unknown"
	}
}

// ParseItemKind maps a config name to an ItemKind
func ParseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "ammoBox":
		return ItemAmmoBox, true
	case "facemask":
		return ItemFaceMask, true
	case "shotgun":
		return ItemShotgun, true
	case "vaccine":
		return ItemVaccine, true
	default:
		return 0, false
	}
}

// Item represents pickup data
type Item struct {
	Kind  ItemKind
	Count int // ammo or masks granted
}
