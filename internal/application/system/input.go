package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem reads the keyboard
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the current input state
type InputState struct {
	Left    bool
	Right   bool
	Jump    bool
	Shoot   bool
	Respawn bool

	// Save slots and menus
	QuickSave bool
	SaveNew   bool
	Menu      bool
	Up        bool
	Down      bool
	Confirm   bool
	Delete    bool
	NewGame   bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:      ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:     ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:      inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		Shoot:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Respawn:   inpututil.IsKeyJustPressed(ebiten.KeyR),
		QuickSave: inpututil.IsKeyJustPressed(ebiten.KeyF5),
		SaveNew:   inpututil.IsKeyJustPressed(ebiten.KeyF6),
		Menu:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Up:        inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		Down:      inpututil.IsKeyJustPressed(ebiten.KeyArrowDown),
		Confirm:   inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Delete:    inpututil.IsKeyJustPressed(ebiten.KeyDelete),
		NewGame:   inpututil.IsKeyJustPressed(ebiten.KeyN),
	}
}

// Intents converts gameplay input into player intents.
// A dead player can only ask to respawn.
func (s *InputSystem) Intents(input InputState, dead bool) []Intent {
	if dead {
		if input.Respawn {
			return []Intent{RespawnIntent{}}
		}
		return nil
	}

	var intents []Intent
	dir := 0.0
	if input.Left {
		dir--
	}
	if input.Right {
		dir++
	}
	if dir != 0 {
		intents = append(intents, MoveIntent{Direction: dir})
	}
	if input.Jump {
		intents = append(intents, JumpIntent{})
	}
	if input.Shoot {
		intents = append(intents, ShootIntent{})
	}
	return intents
}
