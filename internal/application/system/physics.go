package system

import (
	"github.com/younwookim/maskrun/internal/ecs"
	"github.com/younwookim/maskrun/internal/infrastructure/config"
)

// PhysicsSystem moves the player: walking inside the level bounds, jumping
// and falling. The floor is flat at the spawn height except over pits.
type PhysicsSystem struct {
	moveSpeed float64 // pixels/sec
	jumpSpeed float64 // pixels/sec
	gravity   float64 // pixels/sec^2
	width     float64
	height    float64
	floor     float64
	pits      []config.SpanConfig
}

// NewPhysicsSystem creates a physics system for the level def
func NewPhysicsSystem(stats config.PlayerStats, def *config.LevelConfig) *PhysicsSystem {
	return &PhysicsSystem{
		moveSpeed: stats.MoveSpeed,
		jumpSpeed: stats.JumpSpeed,
		gravity:   stats.Gravity,
		width:     float64(def.Size.Width),
		height:    float64(def.Size.Height),
		floor:     def.PlayerSpawn.Y,
		pits:      def.Pits,
	}
}

// Move applies a movement intent to the player. A player that dropped
// below the floor can no longer steer.
func (s *PhysicsSystem) Move(w *ecs.World, intent MoveIntent, dt float64) {
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead {
		return
	}

	pos := w.Position[id]
	if pos.Y > s.floor {
		return
	}
	pos.X += intent.Direction * s.moveSpeed * dt
	if pos.X < 0 {
		pos.X = 0
	}
	if s.width > 0 && pos.X > s.width {
		pos.X = s.width
	}
	w.Position[id] = pos

	if intent.Direction != 0 {
		w.Facing[id] = ecs.Facing{Right: intent.Direction > 0}
	}
}

// Jump starts a jump when the player stands on the floor
func (s *PhysicsSystem) Jump(w *ecs.World) bool {
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead || !s.OnGround(w) {
		return false
	}
	w.Velocity[id] = ecs.Velocity{Y: -s.jumpSpeed}
	return true
}

// OnGround reports whether the player stands on the floor
func (s *PhysicsSystem) OnGround(w *ecs.World) bool {
	id := w.PlayerID
	pos := w.Position[id]
	return pos.Y == s.floor && w.Velocity[id].Y == 0 && !s.overPit(pos.X)
}

// Step applies gravity to the player and lands it on the floor
func (s *PhysicsSystem) Step(w *ecs.World, dt float64) {
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead || s.OnGround(w) {
		return
	}

	pos := w.Position[id]
	vel := w.Velocity[id]
	vel.Y += s.gravity * dt
	prevY := pos.Y
	pos.Y += vel.Y * dt

	if prevY <= s.floor && pos.Y >= s.floor && !s.overPit(pos.X) {
		pos.Y = s.floor
		vel.Y = 0
	}
	w.Position[id] = pos
	w.Velocity[id] = vel
}

func (s *PhysicsSystem) overPit(x float64) bool {
	for _, pit := range s.pits {
		if pit.Contains(x) {
			return true
		}
	}
	return false
}

// CheckFall kills the player below the level floor and reports whether it
// died this call.
func (s *PhysicsSystem) CheckFall(w *ecs.World) bool {
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead || s.height <= 0 {
		return false
	}
	if w.Position[id].Y <= s.height {
		return false
	}
	p.Dead = true
	w.PlayerData[id] = p
	return true
}
