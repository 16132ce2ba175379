// Package game hosts the current scene inside the ebiten loop.
package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/maskrun/internal/application/scene"
	"github.com/younwookim/maskrun/internal/infrastructure/logging"
)

const defaultFramerate = 60

// Game implements ebiten.Game on top of a scene.
type Game struct {
	current     scene.Scene
	screenW     int
	screenH     int
	dt          float64
	transitions int
	log         *log.Logger
}

// New enters initial and returns a game stepping it framerate times per
// second. A non-positive framerate means 60.
func New(initial scene.Scene, screenW, screenH, framerate int, logger *log.Logger) *Game {
	if logger == nil {
		logger = logging.Default()
	}
	if framerate <= 0 {
		framerate = defaultFramerate
	}
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
		log:     logger,
	}
	g.current.OnEnter()
	return g
}

// Update steps the current scene and switches to the scene it returns
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	if next != nil {
		g.switchTo(next)
	}
	return nil
}

func (g *Game) switchTo(next scene.Scene) {
	g.transitions++
	g.log.Debug("scene transition",
		"from", fmt.Sprintf("%T", g.current),
		"to", fmt.Sprintf("%T", next),
		"n", g.transitions)
	g.current.OnExit()
	g.current = next
	g.current.OnEnter()
}

// Draw draws the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size
func (g *Game) Layout(_, _ int) (int, int) {
	return g.screenW, g.screenH
}

// Current returns the running scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// Transitions returns how many scene switches happened
func (g *Game) Transitions() int {
	return g.transitions
}

// Close exits the running scene
func (g *Game) Close() {
	g.current.OnExit()
}
