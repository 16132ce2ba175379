package savegame

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/maskrun/internal/application/level"
	"github.com/younwookim/maskrun/internal/domain/entity"
	"github.com/younwookim/maskrun/internal/infrastructure/config"
	"github.com/younwookim/maskrun/internal/infrastructure/logging"
	"github.com/younwookim/maskrun/internal/infrastructure/store"
)

const configDir = "../../../cmd/game/configs"

var start = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "saves.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// newManager returns a manager whose clock advances a minute per call
func newManager(st *store.Store) *Manager {
	m := NewManager(st, logging.Discard())
	tick := start
	m.SetClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	})
	return m
}

func loadLevel(t *testing.T, index int) *level.Level {
	t.Helper()
	loader := config.NewLoader(configDir)
	entities, err := loader.LoadEntities()
	require.NoError(t, err)
	def, err := loader.LoadLevel(index)
	require.NoError(t, err)
	lvl, err := level.New(def, entities, logging.Discard())
	require.NoError(t, err)
	return lvl
}

func destroyEnemy(t *testing.T, lvl *level.Level, name string) {
	t.Helper()
	id, ok := lvl.World.FindEnemy(name)
	require.True(t, ok, name)
	lvl.World.DestroyEntity(id)
}

func destroyItem(t *testing.T, lvl *level.Level, name string) {
	t.Helper()
	id, ok := lvl.World.FindItem(name)
	require.True(t, ok, name)
	lvl.World.DestroyEntity(id)
}

func rowIDs(save *entity.Save) []int64 {
	var ids []int64
	for _, e := range save.Enemies {
		ids = append(ids, e.ID)
	}
	for _, it := range save.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestSaveNew(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)
	lvl := loadLevel(t, 1)

	first, err := m.SaveNew(ctx, lvl, "first")
	require.NoError(t, err)
	second, err := m.SaveNew(ctx, lvl, "second")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.NotEmpty(t, first.GUID)
	assert.Same(t, second, m.Current())
	assert.False(t, m.Pending())

	got, err := st.Save(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, start.Add(time.Minute).Unix(), got.Timestamp)
	assert.Len(t, got.Enemies, 3)
	assert.Len(t, got.Items, 4)
	require.NotNil(t, got.Player)
	assert.Equal(t, first.Player.ID, got.Player.ID)
	for _, id := range rowIDs(first) {
		assert.Positive(t, id)
	}
}

func TestOverwrite_NoCurrentSave(t *testing.T) {
	m := newManager(openStore(t))

	_, err := m.Overwrite(context.Background(), loadLevel(t, 1))

	assert.ErrorIs(t, err, ErrNoCurrentSave)
}

func TestReexportAfterLoadKeepsRows(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	lvl := loadLevel(t, 1)
	destroyEnemy(t, lvl, "Static")
	destroyItem(t, lvl, "Shotgun")

	saved, err := newManager(st).SaveNew(ctx, lvl, "slot")
	require.NoError(t, err)
	before, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)

	// a new session picks the save from the list
	m := newManager(st)
	saves, err := m.ReloadSaves(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 1)

	index := m.Load(saves[0])
	assert.Equal(t, 1, index)
	assert.True(t, m.Pending())

	fresh := loadLevel(t, index)
	applied, err := m.SceneLoaded(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = m.Overwrite(ctx, fresh)
	require.NoError(t, err)

	after, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Enemies, after.Enemies)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Player, after.Player)
}

func TestDestroyedEntitiesStayDestroyed(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)
	lvl := loadLevel(t, 1)
	destroyEnemy(t, lvl, "Patroller (1)")
	destroyItem(t, lvl, "Facemask")

	saved, err := m.SaveNew(ctx, lvl, "slot")
	require.NoError(t, err)

	dead, _ := saved.EnemyByInGameID("Patroller (1)")
	assert.True(t, dead.IsDead)
	taken, _ := saved.ItemByInGameID("Facemask")
	assert.True(t, taken.Collected)

	m.NewGame()
	index, err := m.LoadByID(ctx, saved.ID)
	require.NoError(t, err)
	fresh := loadLevel(t, index)
	_, err = m.SceneLoaded(ctx, fresh)
	require.NoError(t, err)

	_, ok := fresh.World.FindEnemy("Patroller (1)")
	assert.False(t, ok)
	_, ok = fresh.World.FindItem("Facemask")
	assert.False(t, ok)
	assert.Equal(t, 2, fresh.World.CountEnemies())
	assert.Equal(t, 3, fresh.World.CountItems())
}

func TestOverwrite_LevelChangeReplacesRows(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)

	saved, err := m.SaveNew(ctx, loadLevel(t, 1), "slot")
	require.NoError(t, err)
	oldIDs := rowIDs(saved)
	playerID := saved.Player.ID

	next, err := m.Overwrite(ctx, loadLevel(t, 2))
	require.NoError(t, err)
	assert.Equal(t, saved.ID, next.ID)
	assert.Equal(t, saved.GUID, next.GUID)

	got, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LevelIndex)
	assert.Equal(t, playerID, got.Player.ID)
	require.Len(t, got.Enemies, 3)
	require.Len(t, got.Items, 4)
	for _, e := range got.Enemies {
		assert.NotContains(t, oldIDs, e.ID)
		assert.Equal(t, 2, e.LevelIndex)
	}
	for _, it := range got.Items {
		assert.NotContains(t, oldIDs, it.ID)
		assert.Equal(t, 2, it.LevelIndex)
	}
}

func TestOverwrite_SameLevelUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)
	lvl := loadLevel(t, 1)

	saved, err := m.SaveNew(ctx, lvl, "slot")
	require.NoError(t, err)

	destroyEnemy(t, lvl, "Patroller")
	next, err := m.Overwrite(ctx, lvl)
	require.NoError(t, err)
	assert.Equal(t, rowIDs(saved), rowIDs(next))

	got, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)
	e, _ := got.EnemyByInGameID("Patroller")
	assert.True(t, e.IsDead)
	assert.Equal(t, next.Timestamp, got.Timestamp)
	assert.Greater(t, got.Timestamp, saved.Timestamp)
}

func TestOverwrite_SameLevelReconcilesUniverse(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)

	saved, err := m.SaveNew(ctx, loadLevel(t, 1), "slot")
	require.NoError(t, err)

	// the stored save misses one enemy of the level and has one it no longer knows
	missing, _ := saved.EnemyByInGameID("Static")
	require.NoError(t, st.DeleteEnemy(ctx, missing.ID))
	ghost := entity.EnemyState{InGameID: "Ghost", SaveID: saved.ID, LevelIndex: 1, Health: 1}
	require.NoError(t, st.InsertEnemy(ctx, &ghost))

	index, err := m.LoadByID(ctx, saved.ID)
	require.NoError(t, err)
	lvl := loadLevel(t, index)
	_, err = m.SceneLoaded(ctx, lvl)
	require.NoError(t, err)

	_, err = m.Overwrite(ctx, lvl)
	require.NoError(t, err)

	got, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, got.Enemies, 3)
	_, ok := got.EnemyByInGameID("Ghost")
	assert.False(t, ok)
	restored, ok := got.EnemyByInGameID("Static")
	require.True(t, ok)
	assert.Greater(t, restored.ID, ghost.ID)
}

func TestOverwrite_FailureChangesNothing(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)
	lvl := loadLevel(t, 1)

	saved, err := m.SaveNew(ctx, lvl, "slot")
	require.NoError(t, err)

	// the player row disappears behind the manager's back
	_, err = st.DeletePlayers(ctx, saved.ID)
	require.NoError(t, err)
	before, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)

	destroyEnemy(t, lvl, "Patroller")
	_, err = m.Overwrite(ctx, lvl)
	assert.ErrorIs(t, err, store.ErrNotFound)

	after, err := st.Save(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Same(t, saved, m.Current())
}

func TestSceneLoaded(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	t.Run("nothing pending", func(t *testing.T) {
		m := newManager(st)
		applied, err := m.SceneLoaded(ctx, loadLevel(t, 1))
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("applied once", func(t *testing.T) {
		m := newManager(st)
		saved, err := m.SaveNew(ctx, loadLevel(t, 1), "once")
		require.NoError(t, err)

		m.Load(saved)
		lvl := loadLevel(t, 1)
		applied, err := m.SceneLoaded(ctx, lvl)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = m.SceneLoaded(ctx, lvl)
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("wrong level stays pending", func(t *testing.T) {
		m := newManager(st)
		saved, err := m.SaveNew(ctx, loadLevel(t, 1), "wrong")
		require.NoError(t, err)

		m.Load(saved)
		_, err = m.SceneLoaded(ctx, loadLevel(t, 2))
		assert.ErrorIs(t, err, level.ErrWrongLevel)
		assert.True(t, m.Pending())
	})

	t.Run("pending save is not overwritten", func(t *testing.T) {
		m := newManager(st)
		lvl := loadLevel(t, 1)
		destroyEnemy(t, lvl, "Patroller")
		saved, err := m.SaveNew(ctx, lvl, "pending")
		require.NoError(t, err)
		before, err := st.Save(ctx, saved.ID)
		require.NoError(t, err)

		m.Load(saved)
		fresh := loadLevel(t, 2)
		_, err = m.SceneLoaded(ctx, fresh)
		require.ErrorIs(t, err, level.ErrWrongLevel)

		_, err = m.Overwrite(ctx, fresh)
		assert.ErrorIs(t, err, ErrSavePending)
		_, err = m.Overwrite(ctx, loadLevel(t, 1))
		assert.ErrorIs(t, err, ErrSavePending)

		after, err := st.Save(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		dead, _ := after.EnemyByInGameID("Patroller")
		assert.True(t, dead.IsDead)
		assert.True(t, m.Pending())
	})
}

func TestLoadByID_NotFound(t *testing.T) {
	m := newManager(openStore(t))

	_, err := m.LoadByID(context.Background(), 42)

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, m.Current())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)
	lvl := loadLevel(t, 1)

	first, err := m.SaveNew(ctx, lvl, "first")
	require.NoError(t, err)
	second, err := m.SaveNew(ctx, lvl, "second")
	require.NoError(t, err)
	_, err = m.ReloadSaves(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, first.ID))
	assert.Same(t, second, m.Current(), "other save stays current")
	require.Len(t, m.Saves(), 1)
	assert.Equal(t, second.ID, m.Saves()[0].ID)

	require.NoError(t, m.Delete(ctx, second.ID))
	assert.Nil(t, m.Current())
	assert.Empty(t, m.Saves())

	assert.ErrorIs(t, m.Delete(ctx, second.ID), store.ErrNotFound)
}

func TestNewGame(t *testing.T) {
	ctx := context.Background()
	m := newManager(openStore(t))
	_, err := m.SaveNew(ctx, loadLevel(t, 1), "slot")
	require.NoError(t, err)

	m.NewGame()

	assert.Nil(t, m.Current())
	assert.False(t, m.Pending())
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)
	lvl := loadLevel(t, 1)
	destroyEnemy(t, lvl, "Static")

	orig, err := m.SaveNew(ctx, lvl, "orig")
	require.NoError(t, err)

	t.Run("taken guid is replaced", func(t *testing.T) {
		imported, err := m.Import(ctx, orig)
		require.NoError(t, err)

		assert.NotEqual(t, orig.ID, imported.ID)
		assert.NotEqual(t, orig.GUID, imported.GUID)
		assert.Same(t, orig, m.Current(), "import does not change the current save")

		got, err := st.Save(ctx, imported.ID)
		require.NoError(t, err)
		assert.Len(t, got.Enemies, 3)
		dead, _ := got.EnemyByInGameID("Static")
		assert.True(t, dead.IsDead)
	})

	t.Run("free guid is kept", func(t *testing.T) {
		s := orig.Detached()
		s.GUID = "0b7a3c1e-6f5d-4e0a-9c55-1d2f3a4b5c6d"

		imported, err := m.Import(ctx, s)
		require.NoError(t, err)

		got, err := st.SaveByGUID(ctx, "0b7a3c1e-6f5d-4e0a-9c55-1d2f3a4b5c6d")
		require.NoError(t, err)
		assert.Equal(t, imported.ID, got.ID)
	})
}

func TestImport_LeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)

	orig, err := m.SaveNew(ctx, loadLevel(t, 1), "orig")
	require.NoError(t, err)
	in := orig.Detached()
	want := orig.Detached()

	imported, err := m.Import(ctx, in)
	require.NoError(t, err)
	assert.NotSame(t, in, imported)
	assert.Equal(t, want, in)
	for _, id := range rowIDs(imported) {
		assert.Positive(t, id)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Import(cancelled, in)
	require.Error(t, err)
	assert.Equal(t, want, in)
}

func TestImport_DuplicateInGameID(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m := newManager(st)

	orig, err := m.SaveNew(ctx, loadLevel(t, 1), "orig")
	require.NoError(t, err)
	dup := orig.Detached()
	dup.Enemies = append(dup.Enemies, dup.Enemies[0])
	want := dup.Detached()

	_, err = m.Import(ctx, dup)
	assert.ErrorIs(t, err, entity.ErrDuplicateInGameID)
	assert.Equal(t, want, dup)

	saves, err := m.ReloadSaves(ctx)
	require.NoError(t, err)
	assert.Len(t, saves, 1)
}
