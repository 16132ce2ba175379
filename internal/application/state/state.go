// Package state lists the states a level scene moves through.
package state

// GameState is the state of a level scene
type GameState int

const (
	StateMenu GameState = iota
	StateLoading
	StatePlaying
	StatePaused
	StateDead
	StateLevelClear
	StateVictory
)

var names = [...]string{
	StateMenu:       "Menu",
	StateLoading:    "Loading",
	StatePlaying:    "Playing",
	StatePaused:     "Paused",
	StateDead:       "Dead",
	StateLevelClear: "LevelClear",
	StateVictory:    "Victory",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// Active reports whether gameplay systems run in this state
func (s GameState) Active() bool {
	return s == StatePlaying
}

// CanSave reports whether the level may be saved in this state.
// A dead player cannot be saved.
func (s GameState) CanSave() bool {
	return s == StatePlaying || s == StatePaused
}
