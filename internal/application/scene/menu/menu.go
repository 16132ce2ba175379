// Package menu provides the main menu scene: start a new game or pick a
// save to load.
package menu

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/maskrun/internal/application/scene"
	"github.com/younwookim/maskrun/internal/application/system"
	"github.com/younwookim/maskrun/internal/domain/entity"
)

var colorBG = color.RGBA{16, 16, 32, 255}

// visibleRows is how many saves fit on screen
const visibleRows = 10

// Menu lists the saves. Row 0 starts a new game, row i loads save i-1.
type Menu struct {
	sess  *scene.Session
	input *system.InputSystem
	log   *log.Logger

	saves   []*entity.Save
	cursor  int
	message string
}

// New creates the menu scene
func New(sess *scene.Session) *Menu {
	return &Menu{
		sess:  sess,
		input: system.NewInputSystem(),
		log:   sess.Log.With("scene", "menu"),
	}
}

// OnEnter reloads the save list
func (m *Menu) OnEnter() {
	m.reload()
}

// OnExit is called when leaving the scene
func (m *Menu) OnExit() {}

// Saves returns the listed saves
func (m *Menu) Saves() []*entity.Save {
	return m.saves
}

// Cursor returns the selected row
func (m *Menu) Cursor() int {
	return m.cursor
}

func (m *Menu) reload() {
	saves, err := m.sess.Saves.ReloadSaves(m.sess.Context())
	if err != nil {
		m.log.Error("failed to list saves", "err", err)
		m.message = "Could not read saves"
		return
	}
	m.saves = saves
	m.cursor = min(m.cursor, len(m.saves))
}

// Update handles menu navigation (implements scene.Scene)
func (m *Menu) Update(_ float64) (scene.Scene, error) {
	return m.step(m.input.GetInput())
}

func (m *Menu) step(input system.InputState) (scene.Scene, error) {
	switch {
	case input.Up:
		m.cursor = max(m.cursor-1, 0)
	case input.Down:
		m.cursor = min(m.cursor+1, len(m.saves))
	case input.NewGame:
		return m.newGame()
	case input.Delete:
		m.deleteSelected()
	case input.Confirm:
		if m.cursor == 0 {
			return m.newGame()
		}
		return m.load(m.saves[m.cursor-1])
	}
	return nil, nil
}

func (m *Menu) newGame() (scene.Scene, error) {
	m.sess.Saves.NewGame()
	first := m.sess.Settings.Game.FirstLevel
	s, err := m.sess.NewLevel(first, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start level %d: %w", first, err)
	}
	return s, nil
}

func (m *Menu) load(save *entity.Save) (scene.Scene, error) {
	index := m.sess.Saves.Load(save)
	s, err := m.sess.NewLevel(index, nil)
	if err != nil {
		m.sess.Saves.NewGame()
		m.log.Error("failed to load level of save", "save_id", save.ID, "level", index, "err", err)
		m.message = fmt.Sprintf("Level %d is missing", index)
		return nil, nil
	}
	return s, nil
}

func (m *Menu) deleteSelected() {
	if m.cursor == 0 {
		return
	}
	save := m.saves[m.cursor-1]
	if err := m.sess.Saves.Delete(m.sess.Context(), save.ID); err != nil {
		m.log.Error("failed to delete save", "save_id", save.ID, "err", err)
		m.message = "Delete failed"
		return
	}
	m.message = "Deleted " + save.Label()
	m.reload()
}

// Draw renders the menu
func (m *Menu) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	var b strings.Builder
	b.WriteString("MASKRUN\n\n")
	b.WriteString(row(m.cursor == 0, "New game"))

	first := max(m.cursor-visibleRows, 0)
	for i, s := range m.saves {
		if i < first || i >= first+visibleRows {
			continue
		}
		label := fmt.Sprintf("%s  L%d  %d/%d down  %d/%d taken",
			s.Label(), s.LevelIndex, s.DeadEnemies(), len(s.Enemies), s.CollectedItems(), len(s.Items))
		b.WriteString(row(m.cursor == i+1, label))
	}
	b.WriteString("\nUP/DOWN select  ENTER play  DEL delete  N new game")
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)

	if m.message != "" {
		_, h := m.sess.ScreenSize()
		ebitenutil.DebugPrintAt(screen, m.message, 8, h-20)
	}
}

func row(selected bool, text string) string {
	if selected {
		return "> " + text + "\n"
	}
	return "  " + text + "\n"
}
