package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StateMenu, "Menu"},
		{StateLoading, "Loading"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateDead, "Dead"},
		{StateLevelClear, "LevelClear"},
		{StateVictory, "Victory"},
		{GameState(99), "Unknown"},
		{GameState(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(int(tt.state)), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameState_Flags(t *testing.T) {
	tests := []struct {
		state   GameState
		active  bool
		canSave bool
	}{
		{StateMenu, false, false},
		{StateLoading, false, false},
		{StatePlaying, true, true},
		{StatePaused, false, true},
		{StateDead, false, false},
		{StateLevelClear, false, false},
		{StateVictory, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.active, tt.state.Active())
			assert.Equal(t, tt.canSave, tt.state.CanSave())
		})
	}
}
