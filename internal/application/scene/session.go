package scene

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/younwookim/maskrun/internal/application/savegame"
	"github.com/younwookim/maskrun/internal/ecs"
	"github.com/younwookim/maskrun/internal/infrastructure/config"
)

// Session is the state shared by all scenes of a running game
type Session struct {
	Ctx      context.Context
	Loader   *config.Loader
	Settings *config.Settings
	Entities *config.EntitiesConfig
	Saves    *savegame.Manager
	Log      *log.Logger

	// Scene factories, wired by the composition root
	NewMenu  func() Scene
	NewLevel func(index int, carry *ecs.Player) (Scene, error)
}

// Context returns the session context, never nil
func (s *Session) Context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

// ScreenSize returns the logical screen size
func (s *Session) ScreenSize() (int, int) {
	return s.Settings.Display.ScreenWidth, s.Settings.Display.ScreenHeight
}
