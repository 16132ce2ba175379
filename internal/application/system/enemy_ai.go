package system

import (
	"math"

	"github.com/younwookim/maskrun/internal/ecs"
)

// EnemyAISystem moves enemies that carry an AI component. Patrollers walk
// back and forth around their spawn; chasers walk toward the player once it
// is within detect range.
type EnemyAISystem struct {
	width float64
}

// NewEnemyAISystem creates an AI system for a level of the given width
func NewEnemyAISystem(width int) *EnemyAISystem {
	return &EnemyAISystem{width: float64(width)}
}

// Update moves every enemy with an AI by one step of dt seconds
func (s *EnemyAISystem) Update(w *ecs.World, dt float64) {
	player, hasPlayer := w.Player()
	target := w.GetPlayerPosition()

	for _, id := range w.Enemies() {
		ai, ok := w.AI[id]
		if !ok {
			continue
		}
		pos := w.Position[id]
		facing := w.Facing[id]

		switch ai.Type {
		case ecs.AIPatrol:
			updatePatrol(&pos, &ai, &facing, dt)
		case ecs.AIChase:
			if hasPlayer && !player.Dead {
				updateChase(&pos, &ai, &facing, target, dt)
			}
		}

		if pos.X < 0 {
			pos.X = 0
		}
		if s.width > 0 && pos.X > s.width {
			pos.X = s.width
		}

		w.Position[id] = pos
		w.AI[id] = ai
		w.Facing[id] = facing
	}
}

func updatePatrol(pos *ecs.Position, ai *ecs.AI, facing *ecs.Facing, dt float64) {
	if ai.PatrolDir == 0 {
		ai.PatrolDir = -1
	}
	pos.X += float64(ai.PatrolDir) * ai.MoveSpeed * dt

	// Turn at patrol bounds
	if ai.PatrolDir > 0 && pos.X >= ai.PatrolStartX+ai.PatrolDistance {
		pos.X = ai.PatrolStartX + ai.PatrolDistance
		ai.PatrolDir = -1
	} else if ai.PatrolDir < 0 && pos.X <= ai.PatrolStartX-ai.PatrolDistance {
		pos.X = ai.PatrolStartX - ai.PatrolDistance
		ai.PatrolDir = 1
	}
	facing.Right = ai.PatrolDir > 0
}

func updateChase(pos *ecs.Position, ai *ecs.AI, facing *ecs.Facing, target ecs.Position, dt float64) {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	if math.Abs(dx)+math.Abs(dy) > ai.DetectRange || dx == 0 {
		return
	}

	step := ai.MoveSpeed * dt
	if math.Abs(dx) < step {
		step = math.Abs(dx)
	}
	if dx > 0 {
		pos.X += step
	} else {
		pos.X -= step
	}
	facing.Right = dx > 0
}
