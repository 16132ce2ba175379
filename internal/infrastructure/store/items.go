package store

import (
	"context"
	"fmt"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

// Items returns the item rows of a save
func (d dao) Items(ctx context.Context, saveID int64) ([]entity.ItemState, error) {
	rows, err := d.q.QueryContext(ctx, sqlSelectItems, saveID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of save %d: %w", saveID, err)
	}
	defer func() { _ = rows.Close() }()

	items := []entity.ItemState{}
	for rows.Next() {
		var it entity.ItemState
		if err := rows.Scan(&it.ID, &it.InGameID, &it.SaveID, &it.LevelIndex, &it.Collected, &it.Position.X, &it.Position.Y); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items of save %d: %w", saveID, err)
	}
	return items, nil
}

// InsertItem inserts the item row and writes the new id back to it
func (d dao) InsertItem(ctx context.Context, it *entity.ItemState) error {
	res, err := d.q.ExecContext(ctx, sqlInsertItem,
		it.InGameID, it.SaveID, it.LevelIndex, it.Collected, it.Position.X, it.Position.Y,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item %q: %w", it.InGameID, err)
	}
	if it.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read id of item %q: %w", it.InGameID, err)
	}
	return nil
}

// UpdateItem updates the mutable columns of the item row with it.ID
func (d dao) UpdateItem(ctx context.Context, it *entity.ItemState) error {
	res, err := d.q.ExecContext(ctx, sqlUpdateItem, it.Collected, it.Position.X, it.Position.Y, it.ID)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", it.ID, err)
	}
	return expectOne(res, "item", it.ID)
}

// DeleteItem deletes the item row with id
func (d dao) DeleteItem(ctx context.Context, id int64) error {
	res, err := d.q.ExecContext(ctx, sqlDeleteItem, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return expectOne(res, "item", id)
}

// DeleteItems deletes every item row of a save
func (d dao) DeleteItems(ctx context.Context, saveID int64) (int64, error) {
	return d.bulkDelete(ctx, sqlDeleteItems, "items", saveID)
}
