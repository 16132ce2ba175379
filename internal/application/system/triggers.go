package system

import (
	"github.com/younwookim/maskrun/internal/application/level"
	"github.com/younwookim/maskrun/internal/ecs"
)

// CheckpointSystem moves the player's spawn point to checkpoints it touches.
// Each checkpoint works once per level load.
type CheckpointSystem struct {
	radius float64
}

// NewCheckpointSystem creates a checkpoint system with the given reach
func NewCheckpointSystem(radius float64) *CheckpointSystem {
	return &CheckpointSystem{radius: radius}
}

// Update returns the index of the checkpoint activated this frame, or -1
func (s *CheckpointSystem) Update(lvl *level.Level) int {
	w := lvl.World
	id := w.PlayerID
	p, ok := w.PlayerData[id]
	if !ok || p.Dead {
		return -1
	}
	pos := w.Position[id]

	for i, cp := range lvl.Def().Checkpoints {
		at := ecs.Position{X: cp.X, Y: cp.Y}
		if at.Dist(pos) > s.radius || !lvl.UseCheckpoint(i) {
			continue
		}
		p.SpawnPoint = at
		w.PlayerData[id] = p
		return i
	}
	return -1
}

// LevelEndSystem detects the player reaching the level exit
type LevelEndSystem struct{}

// NewLevelEndSystem creates a level end system
func NewLevelEndSystem() *LevelEndSystem {
	return &LevelEndSystem{}
}

// Reached reports whether a living player stands inside the exit.
// Levels without an exit never end this way.
func (s *LevelEndSystem) Reached(lvl *level.Level) bool {
	exit := lvl.Def().Exit
	if exit == nil {
		return false
	}
	p, ok := lvl.World.Player()
	if !ok || p.Dead {
		return false
	}
	pos := lvl.World.GetPlayerPosition()
	return exit.Contains(pos.X, pos.Y)
}
