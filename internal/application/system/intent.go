package system

// Intent represents an action the player wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent represents a horizontal movement intention
type MoveIntent struct {
	Direction float64 // -1 left, 1 right
}

func (MoveIntent) isIntent() {}

// JumpIntent represents a jump intention
type JumpIntent struct{}

func (JumpIntent) isIntent() {}

// ShootIntent represents pulling the trigger
type ShootIntent struct{}

func (ShootIntent) isIntent() {}

// RespawnIntent represents a request to respawn after death
type RespawnIntent struct{}

func (RespawnIntent) isIntent() {}
