package level

import (
	"fmt"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

// Apply pushes a loaded save into the freshly instantiated world.
// Records are checked against the level before anything is changed.
func (l *Level) Apply(save *entity.Save) error {
	if save.LevelIndex != l.Index {
		return fmt.Errorf("save %d is for level %d, not %d: %w", save.ID, save.LevelIndex, l.Index, ErrWrongLevel)
	}
	if err := l.checkLevel(save.Enemies, save.Items); err != nil {
		return err
	}

	l.ApplyEnemies(save.Enemies)
	l.ApplyItems(save.Items)
	l.ApplyPlayer(save.Player)
	return nil
}

func (l *Level) checkLevel(enemies []entity.EnemyState, items []entity.ItemState) error {
	for _, e := range enemies {
		if e.LevelIndex != l.Index {
			return fmt.Errorf("enemy %q has level %d: %w", e.InGameID, e.LevelIndex, ErrWrongLevel)
		}
	}
	for _, it := range items {
		if it.LevelIndex != l.Index {
			return fmt.Errorf("item %q has level %d: %w", it.InGameID, it.LevelIndex, ErrWrongLevel)
		}
	}
	return nil
}

// ApplyEnemies destroys enemies recorded dead and restores the position
// and health of the others. Records without a live enemy are skipped.
func (l *Level) ApplyEnemies(records []entity.EnemyState) {
	for _, rec := range records {
		id, ok := l.World.FindEnemy(rec.InGameID)
		if !ok {
			l.log.Warn("enemy not in level", "ingame_id", rec.InGameID)
			continue
		}
		if rec.IsDead {
			l.World.DestroyEntity(id)
			continue
		}
		l.World.Position[id] = rec.Position
		h := l.World.Health[id]
		h.Current = rec.Health
		l.World.Health[id] = h
	}
}

// ApplyItems destroys items recorded collected and restores the position
// of the others. Records without a live item are skipped.
func (l *Level) ApplyItems(records []entity.ItemState) {
	for _, rec := range records {
		id, ok := l.World.FindItem(rec.InGameID)
		if !ok {
			l.log.Warn("item not in level", "ingame_id", rec.InGameID)
			continue
		}
		if rec.Collected {
			l.World.DestroyEntity(id)
			continue
		}
		l.World.Position[id] = rec.Position
	}
}

// ApplyPlayer restores the player's resources, position and spawn point
func (l *Level) ApplyPlayer(rec *entity.PlayerState) {
	if rec == nil {
		return
	}
	id := l.World.PlayerID
	p, ok := l.World.PlayerData[id]
	if !ok {
		return
	}

	p.AmmoCount = rec.AmmoCount
	p.FaceMaskCount = rec.FaceMaskCount
	p.SpawnPoint = rec.SpawnPoint
	if rec.HasGun {
		p.PickupShotgun()
	}
	l.World.PlayerData[id] = p
	l.World.Position[id] = rec.Position
}
