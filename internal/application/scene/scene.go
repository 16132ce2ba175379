// Package scene defines the screens of the game and the session they share.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen: the save menu or a running level.
type Scene interface {
	// Update advances the scene by dt seconds. A non-nil next scene
	// replaces this one; an error stops the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs once when the scene becomes current. Level scenes
	// apply the pending save here.
	OnEnter()

	OnExit()
}
