package savegame

import (
	"context"

	"github.com/younwookim/maskrun/internal/domain/entity"
	"github.com/younwookim/maskrun/internal/infrastructure/store"
)

func writePlayer(ctx context.Context, tx *store.Tx, p *entity.PlayerState) error {
	if p == nil {
		return nil
	}
	if p.ID > 0 {
		return tx.UpdatePlayer(ctx, p)
	}
	return tx.InsertPlayer(ctx, p)
}

func insertChildren(ctx context.Context, tx *store.Tx, save *entity.Save) error {
	for i := range save.Items {
		if err := tx.InsertItem(ctx, &save.Items[i]); err != nil {
			return err
		}
	}
	for i := range save.Enemies {
		if err := tx.InsertEnemy(ctx, &save.Enemies[i]); err != nil {
			return err
		}
	}
	return nil
}

// replaceChildren drops every child row of the save and inserts the new ones
func replaceChildren(ctx context.Context, tx *store.Tx, save *entity.Save) error {
	if _, err := tx.DeleteItems(ctx, save.ID); err != nil {
		return err
	}
	if _, err := tx.DeleteEnemies(ctx, save.ID); err != nil {
		return err
	}
	return insertChildren(ctx, tx, save)
}

// updateChildren writes next over prev on the same level: correlated rows are
// updated, new ids inserted and rows whose id left the level deleted.
func updateChildren(ctx context.Context, tx *store.Tx, prev, next *entity.Save) error {
	for i := range next.Items {
		it := &next.Items[i]
		var err error
		if it.Persisted() {
			err = tx.UpdateItem(ctx, it)
		} else {
			err = tx.InsertItem(ctx, it)
		}
		if err != nil {
			return err
		}
	}
	for _, old := range prev.Items {
		if _, ok := next.ItemByInGameID(old.InGameID); !ok && old.Persisted() {
			if err := tx.DeleteItem(ctx, old.ID); err != nil {
				return err
			}
		}
	}

	for i := range next.Enemies {
		e := &next.Enemies[i]
		var err error
		if e.Persisted() {
			err = tx.UpdateEnemy(ctx, e)
		} else {
			err = tx.InsertEnemy(ctx, e)
		}
		if err != nil {
			return err
		}
	}
	for _, old := range prev.Enemies {
		if _, ok := next.EnemyByInGameID(old.InGameID); !ok && old.Persisted() {
			if err := tx.DeleteEnemy(ctx, old.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
