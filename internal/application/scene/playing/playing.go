// Package playing provides the level scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/maskrun/internal/application/level"
	"github.com/younwookim/maskrun/internal/application/scene"
	"github.com/younwookim/maskrun/internal/application/state"
	"github.com/younwookim/maskrun/internal/application/system"
	"github.com/younwookim/maskrun/internal/ecs"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorGround     = color.RGBA{80, 80, 100, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorPlayerHurt = color.RGBA{200, 200, 100, 255}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorBoss       = color.RGBA{160, 40, 160, 255}
	colorAmmo       = color.RGBA{255, 215, 0, 255}
	colorMask       = color.RGBA{120, 200, 255, 255}
	colorGun        = color.RGBA{160, 160, 160, 255}
	colorVaccine    = color.RGBA{255, 255, 255, 255}
	colorCheckpoint = color.RGBA{100, 100, 200, 128}
	colorExit       = color.RGBA{100, 200, 100, 96}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
)

const messageDuration = 2.0 // seconds

// Playing is the scene of one level
type Playing struct {
	sess  *scene.Session
	level *level.Level
	state state.GameState
	log   *log.Logger

	inputSystem      *system.InputSystem
	physicsSystem    *system.PhysicsSystem
	enemyAISystem    *system.EnemyAISystem
	combatSystem     *system.CombatSystem
	pickupSystem     *system.PickupSystem
	checkpointSystem *system.CheckpointSystem
	levelEndSystem   *system.LevelEndSystem

	screenW int
	screenH int

	message      string
	messageTimer float64
}

// New loads level index and builds its scene. carry holds the player of
// the previous level when the level is entered through an exit.
func New(sess *scene.Session, index int, carry *ecs.Player) (*Playing, error) {
	def, err := sess.Loader.LoadLevel(index)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %d: %w", index, err)
	}
	lvl, err := level.New(def, sess.Entities, sess.Log)
	if err != nil {
		return nil, err
	}
	if carry != nil {
		lvl.CarryPlayer(*carry)
	}

	combat := sess.Entities.Combat
	w, h := sess.ScreenSize()
	return &Playing{
		sess:             sess,
		level:            lvl,
		state:            state.StateLoading,
		log:              sess.Log.With("scene", "playing", "level", index),
		inputSystem:      system.NewInputSystem(),
		physicsSystem:    system.NewPhysicsSystem(sess.Entities.Player.Stats, def),
		enemyAISystem:    system.NewEnemyAISystem(def.Size.Width),
		combatSystem:     system.NewCombatSystem(sess.Entities),
		pickupSystem:     system.NewPickupSystem(combat.PickupRadius),
		checkpointSystem: system.NewCheckpointSystem(combat.PickupRadius),
		levelEndSystem:   system.NewLevelEndSystem(),
		screenW:          w,
		screenH:          h,
	}, nil
}

// Level returns the live level
func (p *Playing) Level() *level.Level {
	return p.level
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Message returns the flash message currently shown
func (p *Playing) Message() string {
	return p.message
}

// OnEnter applies a pending save to the fresh level
func (p *Playing) OnEnter() {
	applied, err := p.sess.Saves.SceneLoaded(p.sess.Context(), p.level)
	switch {
	case err != nil:
		// the save was not applied, saving must not overwrite its rows
		p.log.Error("failed to apply save", "err", err)
		p.sess.Saves.NewGame()
		p.flash("Load failed")
	case applied:
		p.flash("Game Loaded")
	}
	p.state = state.StatePlaying
}

// OnExit is called when leaving the scene
func (p *Playing) OnExit() {}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	return p.step(p.inputSystem.GetInput(), dt)
}

func (p *Playing) step(input system.InputState, dt float64) (scene.Scene, error) {
	if p.messageTimer > 0 {
		p.messageTimer -= dt
		if p.messageTimer <= 0 {
			p.message = ""
		}
	}

	if p.state.CanSave() {
		switch {
		case input.QuickSave:
			p.quickSave()
		case input.SaveNew:
			p.saveNew()
		}
	}

	switch p.state {
	case state.StatePlaying:
		if input.Menu {
			p.state = state.StatePaused
			return nil, nil
		}
		return p.updatePlaying(input, dt)
	case state.StatePaused:
		if input.Menu {
			p.state = state.StatePlaying
		} else if input.Confirm {
			return p.exitToMenu(), nil
		}
	case state.StateDead:
		if input.Menu {
			return p.exitToMenu(), nil
		}
		for _, intent := range p.inputSystem.Intents(input, true) {
			if _, ok := intent.(system.RespawnIntent); ok {
				p.respawn()
			}
		}
	case state.StateVictory:
		if input.Confirm || input.Menu {
			return p.exitToMenu(), nil
		}
	}
	return nil, nil
}

func (p *Playing) updatePlaying(input system.InputState, dt float64) (scene.Scene, error) {
	w := p.level.World

	for _, intent := range p.inputSystem.Intents(input, false) {
		switch it := intent.(type) {
		case system.MoveIntent:
			p.physicsSystem.Move(w, it, dt)
		case system.JumpIntent:
			p.physicsSystem.Jump(w)
		case system.ShootIntent:
			p.shoot()
		}
	}

	p.physicsSystem.Step(w, dt)
	p.enemyAISystem.Update(w, dt)

	if p.combatSystem.Update(w, dt) || p.physicsSystem.CheckFall(w) {
		p.state = state.StateDead
		p.log.Info("player died")
		return nil, nil
	}

	for _, picked := range p.pickupSystem.Update(w) {
		p.log.Debug("item collected", "ingame_id", picked.Name, "kind", picked.Kind)
		if picked.Kind == ecs.ItemVaccine {
			p.state = state.StateVictory
			return nil, nil
		}
	}

	if cp := p.checkpointSystem.Update(p.level); cp >= 0 {
		p.flash("Checkpoint")
	}

	if p.levelEndSystem.Reached(p.level) {
		return p.nextLevel()
	}
	return nil, nil
}

func (p *Playing) shoot() {
	res, target := p.combatSystem.Shoot(p.level.World)
	switch res {
	case system.ShotMisfire:
		p.flash("Out of Ammo!")
	case system.ShotKill:
		p.log.Debug("enemy killed", "ingame_id", target)
	}
}

func (p *Playing) respawn() {
	p.level.RespawnPlayer()
	p.level.RespawnEnemies()
	p.combatSystem.Reset()
	p.state = state.StatePlaying
}

func (p *Playing) nextLevel() (scene.Scene, error) {
	next := p.level.Index + 1
	if next > p.sess.Settings.Game.LastLevel || !p.sess.Loader.HasLevel(next) {
		p.state = state.StateVictory
		return nil, nil
	}

	p.state = state.StateLevelClear
	carry, _ := p.level.World.Player()
	s, err := p.sess.NewLevel(next, &carry)
	if err != nil {
		return nil, fmt.Errorf("failed to enter level %d: %w", next, err)
	}
	return s, nil
}

func (p *Playing) exitToMenu() scene.Scene {
	p.sess.Saves.NewGame()
	return p.sess.NewMenu()
}

// quickSave overwrites the current save, or creates one for a new game
func (p *Playing) quickSave() {
	if p.sess.Saves.Current() == nil {
		p.saveNew()
		return
	}
	save, err := p.sess.Saves.Overwrite(p.sess.Context(), p.level)
	if err != nil {
		p.log.Error("failed to overwrite save", "err", err)
		p.flash("Save failed")
		return
	}
	p.flash("Saved " + save.Label())
}

func (p *Playing) saveNew() {
	save, err := p.sess.Saves.SaveNew(p.sess.Context(), p.level, p.level.Name)
	if err != nil {
		p.log.Error("failed to create save", "err", err)
		p.flash("Save failed")
		return
	}
	p.flash("Saved " + save.Label())
}

func (p *Playing) flash(msg string) {
	p.message = msg
	p.messageTimer = messageDuration
}

// Draw renders the level
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX := p.cameraX()
	def := p.level.Def()
	w := p.level.World

	groundY := float64(def.Size.Height) - 20
	ebitenutil.DrawRect(screen, 0, groundY, float64(p.screenW), 20, colorGround)

	for _, cp := range def.Checkpoints {
		ebitenutil.DrawRect(screen, cp.X-camX-2, cp.Y-16, 4, 16, colorCheckpoint)
	}
	if def.Exit != nil {
		ebitenutil.DrawRect(screen, def.Exit.X-camX, def.Exit.Y, def.Exit.W, def.Exit.H, colorExit)
	}

	for _, id := range w.Items() {
		pos := w.Position[id]
		ebitenutil.DrawRect(screen, pos.X-camX-4, pos.Y-8, 8, 8, itemColor(w.ItemData[id].Kind))
	}

	for _, id := range w.Enemies() {
		e := w.EnemyData[id]
		pos := w.Position[id]
		c := colorEnemy
		if e.Kind == "boss" {
			c = colorBoss
		}
		ebitenutil.DrawRect(screen, pos.X-camX-e.Width/2, pos.Y-e.Height, e.Width, e.Height, c)
	}

	p.drawPlayer(screen, camX)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nESC resume  ENTER main menu\nF5 save  F6 new save")
	case state.StateDead:
		p.drawOverlay(screen, "YOU DIED\n\nR respawn  ESC main menu")
	case state.StateVictory:
		p.drawOverlay(screen, "VACCINE FOUND\n\nThanks for playing!\nENTER main menu")
	}
}

func (p *Playing) cameraX() float64 {
	camX := p.level.World.GetPlayerPosition().X - float64(p.screenW)/2
	maxCamX := float64(p.level.Def().Size.Width - p.screenW)
	if camX > maxCamX {
		camX = maxCamX
	}
	if camX < 0 {
		camX = 0
	}
	return camX
}

func (p *Playing) drawPlayer(screen *ebiten.Image, camX float64) {
	size := p.sess.Entities.Player.Size
	pos := p.level.World.GetPlayerPosition()
	c := colorPlayer
	if p.combatSystem.Invulnerable() {
		c = colorPlayerHurt
	}
	ebitenutil.DrawRect(screen, pos.X-camX-size.Width/2, pos.Y-size.Height, size.Width, size.Height, c)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	pl, _ := p.level.World.Player()
	gun := "-"
	if pl.HasGun {
		gun = "shotgun"
	}
	hud := fmt.Sprintf("%s\nMASKS %d  AMMO %d  GUN %s", p.level.Name, pl.FaceMaskCount, pl.AmmoCount, gun)
	if cur := p.sess.Saves.Current(); cur != nil {
		hud += "\nSAVE " + cur.Label()
	}
	ebitenutil.DebugPrintAt(screen, hud, 6, 4)

	if p.message != "" {
		ebitenutil.DebugPrintAt(screen, p.message, p.screenW/2-len(p.message)*3, p.screenH/2-40)
	}
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-80, p.screenH/2-30)
}

func itemColor(kind ecs.ItemKind) color.Color {
	switch kind {
	case ecs.ItemAmmoBox:
		return colorAmmo
	case ecs.ItemFaceMask:
		return colorMask
	case ecs.ItemShotgun:
		return colorGun
	default:
		return colorVaccine
	}
}
