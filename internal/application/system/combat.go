package system

import (
	"math"

	"github.com/younwookim/maskrun/internal/ecs"
	"github.com/younwookim/maskrun/internal/infrastructure/config"
)

// ShotResult is the outcome of a trigger pull
type ShotResult int

const (
	ShotNone    ShotResult = iota // no gun, dead or on cooldown
	ShotMisfire                   // out of ammo
	ShotMiss
	ShotHit
	ShotKill
)

// CombatSystem handles shooting and contact damage
type CombatSystem struct {
	cfg          config.CombatConfig
	playerWidth  float64
	playerHeight float64

	iframeTimer   float64
	cooldownTimer float64

	// Event callbacks
	OnEnemyKilled func(name string)
	OnPlayerDied  func()
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.EntitiesConfig) *CombatSystem {
	return &CombatSystem{
		cfg:          cfg.Combat,
		playerWidth:  cfg.Player.Size.Width,
		playerHeight: cfg.Player.Size.Height,
	}
}

// Update advances timers and applies enemy contact damage.
// Returns true if the player died this frame.
func (s *CombatSystem) Update(w *ecs.World, dt float64) bool {
	if s.iframeTimer > 0 {
		s.iframeTimer -= dt
	}
	if s.cooldownTimer > 0 {
		s.cooldownTimer -= dt
	}

	p, ok := w.Player()
	if !ok || p.Dead {
		return false
	}

	pos := w.GetPlayerPosition()
	for _, id := range w.Enemies() {
		e := w.EnemyData[id]
		ep := w.Position[id]
		if math.Abs(ep.X-pos.X) < (s.playerWidth+e.Width)/2 &&
			math.Abs(ep.Y-pos.Y) < (s.playerHeight+e.Height)/2 {
			return s.DamagePlayer(w, e.ContactDamage)
		}
	}
	return false
}

// DamagePlayer applies damage to the player. Face masks absorb hits before
// health does. Returns true if the player died.
func (s *CombatSystem) DamagePlayer(w *ecs.World, amount int) bool {
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead || s.iframeTimer > 0 {
		return false
	}
	s.iframeTimer = s.cfg.Iframes

	if p.FaceMaskCount > 0 {
		p.FaceMaskCount = max(p.FaceMaskCount-amount, 0)
		w.PlayerData[id] = p
		return false
	}

	h := w.Health[id]
	dead := h.TakeDamage(amount)
	w.Health[id] = h
	if !dead {
		return false
	}

	p.Dead = true
	w.PlayerData[id] = p
	if s.OnPlayerDied != nil {
		s.OnPlayerDied()
	}
	return true
}

// Shoot fires the shotgun in the facing direction. The nearest enemy in
// range on the player's line takes the shot. Returns the outcome and the
// in-game id of the enemy hit.
func (s *CombatSystem) Shoot(w *ecs.World) (ShotResult, string) {
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead || !p.HasGun || s.cooldownTimer > 0 {
		return ShotNone, ""
	}
	if p.AmmoCount <= 0 {
		return ShotMisfire, ""
	}

	p.AmmoCount--
	w.PlayerData[id] = p
	s.cooldownTimer = s.cfg.ShotCooldown

	target, ok := s.findTarget(w, w.Position[id], w.Facing[id].Right)
	if !ok {
		return ShotMiss, ""
	}

	name := w.Name[target]
	h := w.Health[target]
	dead := h.TakeDamage(s.cfg.ShotDamage)
	w.Health[target] = h
	if !dead {
		return ShotHit, name
	}

	w.DestroyEntity(target)
	if s.OnEnemyKilled != nil {
		s.OnEnemyKilled(name)
	}
	return ShotKill, name
}

func (s *CombatSystem) findTarget(w *ecs.World, from ecs.Position, right bool) (ecs.EntityID, bool) {
	var (
		best     ecs.EntityID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, id := range w.Enemies() {
		pos := w.Position[id]
		dx := pos.X - from.X
		if !right {
			dx = -dx
		}
		if dx < 0 || dx > s.cfg.ShotRange {
			continue
		}
		if math.Abs(pos.Y-from.Y) > (s.playerHeight+w.EnemyData[id].Height)/2 {
			continue
		}
		if dx < bestDist {
			best, bestDist, found = id, dx, true
		}
	}
	return best, found
}

// Invulnerable reports whether the player is inside its iframes
func (s *CombatSystem) Invulnerable() bool {
	return s.iframeTimer > 0
}

// Reset clears all timers (on respawn or level load)
func (s *CombatSystem) Reset() {
	s.iframeTimer = 0
	s.cooldownTimer = 0
}
