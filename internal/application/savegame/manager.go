// Package savegame keeps track of the current save and moves level state
// between the live world and the save database.
package savegame

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/younwookim/maskrun/internal/application/level"
	"github.com/younwookim/maskrun/internal/domain/entity"
	"github.com/younwookim/maskrun/internal/infrastructure/logging"
	"github.com/younwookim/maskrun/internal/infrastructure/store"
)

var (
	// ErrNoCurrentSave is returned by Overwrite when no save is loaded
	ErrNoCurrentSave = errors.New("no current save")
	// ErrSavePending is returned by Overwrite while the current save has not
	// been applied to the live level
	ErrSavePending = errors.New("current save not applied")
)

// Manager owns the current save and the cached save list
type Manager struct {
	store *store.Store
	log   *log.Logger
	now   func() time.Time

	current *entity.Save
	saves   []*entity.Save
}

// NewManager creates a manager on top of an open store
func NewManager(s *store.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		store: s,
		log:   logger.With("component", "savegame"),
		now:   time.Now,
	}
}

// SetClock replaces the time source used to stamp saves
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Current returns the current save, nil when playing a new game
func (m *Manager) Current() *entity.Save {
	return m.current
}

// Saves returns the save list of the last ReloadSaves
func (m *Manager) Saves() []*entity.Save {
	return m.saves
}

// Pending reports whether the current save still has to be applied
func (m *Manager) Pending() bool {
	return m.current != nil && !m.current.Loaded
}

// NewGame forgets the current save
func (m *Manager) NewGame() {
	m.current = nil
}

// SaveNew writes the live level as a new save. On success it becomes the
// current save.
func (m *Manager) SaveNew(ctx context.Context, lvl *level.Level, name string) (*entity.Save, error) {
	var save *entity.Save
	err := m.store.InTx(ctx, func(tx *store.Tx) error {
		id, err := tx.NextID(ctx, store.TableSave)
		if err != nil {
			return err
		}
		save = lvl.Export(name, id, m.now())

		if err := tx.InsertSave(ctx, save); err != nil {
			return err
		}
		if save.Player != nil {
			if err := tx.InsertPlayer(ctx, save.Player); err != nil {
				return err
			}
		}
		return insertChildren(ctx, tx, save)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create save %q: %w", name, err)
	}

	m.current = save
	m.log.Info("save created", "save_id", save.ID, "level", save.LevelIndex,
		"enemies", len(save.Enemies), "items", len(save.Items))
	return save, nil
}

// Overwrite replaces the current save with the live level.
//
// On the same level every child row is updated in place, matched by in-game
// id. After a level change the child rows are replaced. A failed overwrite
// leaves both the database and the current save untouched.
func (m *Manager) Overwrite(ctx context.Context, lvl *level.Level) (*entity.Save, error) {
	prev := m.current
	if prev == nil {
		return nil, ErrNoCurrentSave
	}
	if !prev.Loaded {
		return nil, fmt.Errorf("failed to overwrite save %d: %w", prev.ID, ErrSavePending)
	}
	next := lvl.ExportFrom(prev, m.now())

	err := m.store.InTx(ctx, func(tx *store.Tx) error {
		if err := tx.UpdateSave(ctx, next); err != nil {
			return err
		}
		if err := writePlayer(ctx, tx, next.Player); err != nil {
			return err
		}
		if prev.LevelIndex != next.LevelIndex {
			return replaceChildren(ctx, tx, next)
		}
		return updateChildren(ctx, tx, prev, next)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to overwrite save %d: %w", prev.ID, err)
	}

	m.current = next
	m.log.Info("save overwritten", "save_id", next.ID, "level", next.LevelIndex,
		"level_changed", prev.LevelIndex != next.LevelIndex)
	return next, nil
}

// Import stores a copy of save, without its row ids, as a new save. A GUID
// that is already taken is replaced. Neither save nor the current save is
// changed.
func (m *Manager) Import(ctx context.Context, save *entity.Save) (*entity.Save, error) {
	if err := save.CheckInGameIDs(); err != nil {
		return nil, fmt.Errorf("failed to import save %q: %w", save.Name, err)
	}

	s := save.Detached()
	s.Loaded = false
	err := m.store.InTx(ctx, func(tx *store.Tx) error {
		if s.GUID != "" {
			_, err := tx.GetSaveByGUID(ctx, s.GUID)
			switch {
			case err == nil:
				s.GUID = ""
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}

		id, err := tx.NextID(ctx, store.TableSave)
		if err != nil {
			return err
		}
		s.SetSaveID(id)
		if err := tx.InsertSave(ctx, s); err != nil {
			return err
		}
		if s.Player != nil {
			if err := tx.InsertPlayer(ctx, s.Player); err != nil {
				return err
			}
		}
		return insertChildren(ctx, tx, s)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import save %q: %w", save.Name, err)
	}

	m.log.Info("save imported", "save_id", s.ID, "guid", s.GUID, "level", s.LevelIndex)
	return s, nil
}

// Load makes save current and pending. The caller loads the returned level;
// the save is applied once that scene reports SceneLoaded.
func (m *Manager) Load(save *entity.Save) int {
	save.Loaded = false
	m.current = save
	m.log.Info("save selected", "save_id", save.ID, "level", save.LevelIndex)
	return save.LevelIndex
}

// LoadByID reads the save with id and makes it current
func (m *Manager) LoadByID(ctx context.Context, id int64) (int, error) {
	save, err := m.store.Save(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to load save %d: %w", id, err)
	}
	return m.Load(save), nil
}

// SceneLoaded applies a pending save to a freshly loaded level and reports
// whether anything was applied. The save is re-read from the database first.
func (m *Manager) SceneLoaded(ctx context.Context, lvl *level.Level) (bool, error) {
	if !m.Pending() {
		return false, nil
	}

	save, err := m.store.Save(ctx, m.current.ID)
	if err != nil {
		return false, fmt.Errorf("failed to read save %d: %w", m.current.ID, err)
	}
	if err := lvl.Apply(save); err != nil {
		return false, fmt.Errorf("failed to apply save %d: %w", save.ID, err)
	}

	save.Loaded = true
	m.current = save
	m.log.Info("save applied", "save_id", save.ID, "level", save.LevelIndex,
		"dead", save.DeadEnemies(), "collected", save.CollectedItems())
	return true, nil
}

// ReloadSaves reads every save with its rows
func (m *Manager) ReloadSaves(ctx context.Context) ([]*entity.Save, error) {
	saves, err := m.store.Saves(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload saves: %w", err)
	}
	m.saves = saves
	return saves, nil
}

// Delete removes a save and its rows. Deleting the current save starts a
// new game.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.store.DeleteSave(ctx, id); err != nil {
		return fmt.Errorf("failed to delete save %d: %w", id, err)
	}
	if m.current != nil && m.current.ID == id {
		m.current = nil
	}

	kept := m.saves[:0]
	for _, s := range m.saves {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.saves = kept

	m.log.Info("save deleted", "save_id", id)
	return nil
}
