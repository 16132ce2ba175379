package system

import (
	"github.com/younwookim/maskrun/internal/ecs"
)

// Pickup describes a collected item
type Pickup struct {
	Name  string
	Kind  ecs.ItemKind
	Count int
}

// PickupSystem collects items the player touches
type PickupSystem struct {
	radius float64
}

// NewPickupSystem creates a pickup system with the given reach in pixels
func NewPickupSystem(radius float64) *PickupSystem {
	return &PickupSystem{radius: radius}
}

// Update collects every item within reach of the player, applies its effect
// and destroys it. Collecting the vaccine has no effect on the player; the
// caller ends the game on it.
func (s *PickupSystem) Update(w *ecs.World) []Pickup {
	p, ok := w.Player()
	if !ok || p.Dead {
		return nil
	}
	pos := w.GetPlayerPosition()

	var picked []Pickup
	for _, id := range w.Items() {
		if w.Position[id].Dist(pos) > s.radius {
			continue
		}
		item := w.ItemData[id]
		switch item.Kind {
		case ecs.ItemAmmoBox:
			p.AddAmmo(item.Count)
		case ecs.ItemFaceMask:
			p.AddFaceMasks(item.Count)
		case ecs.ItemShotgun:
			p.PickupShotgun()
		}
		picked = append(picked, Pickup{Name: w.Name[id], Kind: item.Kind, Count: item.Count})
		w.DestroyEntity(id)
	}

	w.PlayerData[w.PlayerID] = p
	return picked
}
