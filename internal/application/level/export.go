package level

import (
	"time"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

// Export snapshots the live world into a save.
//
// Every id of the default universe yields exactly one record: ids no longer
// found in the world are recorded dead/collected, the rest with live state.
func (l *Level) Export(name string, saveID int64, now time.Time) *entity.Save {
	save := &entity.Save{
		ID:         saveID,
		LevelIndex: l.Index,
		Name:       name,
		Timestamp:  now.Unix(),
		Loaded:     true,
		Player:     l.exportPlayer(saveID),
		Enemies:    make([]entity.EnemyState, 0, len(l.defEnemyIDs)),
		Items:      make([]entity.ItemState, 0, len(l.defItemIDs)),
	}

	for _, id := range l.defItemIDs {
		rec := entity.ItemState{InGameID: id, SaveID: saveID, LevelIndex: l.Index}
		if eid, ok := l.World.FindItem(id); ok {
			rec.Position = l.World.Position[eid]
		} else {
			rec.Collected = true
		}
		save.Items = append(save.Items, rec)
	}

	for _, id := range l.defEnemyIDs {
		rec := entity.EnemyState{InGameID: id, SaveID: saveID, LevelIndex: l.Index}
		if eid, ok := l.World.FindEnemy(id); ok {
			rec.Position = l.World.Position[eid]
			rec.Health = l.World.Health[eid].Current
		} else {
			rec.IsDead = true
		}
		save.Enemies = append(save.Enemies, rec)
	}

	return save
}

func (l *Level) exportPlayer(saveID int64) *entity.PlayerState {
	p, ok := l.World.Player()
	if !ok {
		return nil
	}
	return &entity.PlayerState{
		SaveID:        saveID,
		FaceMaskCount: p.FaceMaskCount,
		AmmoCount:     p.AmmoCount,
		HasGun:        p.HasGun,
		Position:      l.World.GetPlayerPosition(),
		SpawnPoint:    p.SpawnPoint,
	}
}

// ExportFrom snapshots the live world as a replacement of prev.
//
// The save and player row ids of prev are reused. When prev belongs to this
// level, enemy and item records are correlated to prev's rows by in-game id;
// records without a prior row keep id 0. After a level change nothing is
// correlated: all child rows of prev are stale.
func (l *Level) ExportFrom(prev *entity.Save, now time.Time) *entity.Save {
	save := l.Export(prev.Name, prev.ID, now)
	save.GUID = prev.GUID
	if save.Player != nil && prev.Player != nil {
		save.Player.ID = prev.Player.ID
	}

	if prev.LevelIndex != l.Index {
		return save
	}

	for i := range save.Items {
		if p, ok := prev.ItemByInGameID(save.Items[i].InGameID); ok {
			save.Items[i].ID = p.ID
		}
	}
	for i := range save.Enemies {
		if p, ok := prev.EnemyByInGameID(save.Enemies[i].InGameID); ok {
			save.Enemies[i].ID = p.ID
		}
	}
	return save
}
