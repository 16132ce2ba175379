package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanSave(row scanner) (*entity.Save, error) {
	var s entity.Save
	if err := row.Scan(&s.ID, &s.LevelIndex, &s.Name, &s.Timestamp, &s.GUID); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSaves returns all save rows without related data
func (d dao) ListSaves(ctx context.Context) ([]*entity.Save, error) {
	rows, err := d.q.QueryContext(ctx, sqlSelectSaves)
	if err != nil {
		return nil, fmt.Errorf("failed to query saves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var saves []*entity.Save
	for rows.Next() {
		s, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		saves = append(saves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saves: %w", err)
	}
	return saves, nil
}

// GetSave returns the save row with id
func (d dao) GetSave(ctx context.Context, id int64) (*entity.Save, error) {
	s, err := scanSave(d.q.QueryRowContext(ctx, sqlSelectSave, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("save %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %d: %w", id, err)
	}
	return s, nil
}

// GetSaveByGUID returns the save row with guid
func (d dao) GetSaveByGUID(ctx context.Context, guid string) (*entity.Save, error) {
	s, err := scanSave(d.q.QueryRowContext(ctx, sqlSelectGUID, guid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("save %s: %w", guid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %s: %w", guid, err)
	}
	return s, nil
}

// GatherRelated loads the player, enemy and item rows of s
func (d dao) GatherRelated(ctx context.Context, s *entity.Save) error {
	if s.ID <= 0 {
		return ErrUninitialized
	}

	enemies, err := d.Enemies(ctx, s.ID)
	if err != nil {
		return err
	}
	items, err := d.Items(ctx, s.ID)
	if err != nil {
		return err
	}
	player, err := d.Player(ctx, s.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	s.Enemies = enemies
	s.Items = items
	s.Player = player
	return nil
}

// InsertSave inserts the save row. A positive s.ID is used as the row id,
// otherwise the assigned id is written back to s. An empty GUID is generated.
func (d dao) InsertSave(ctx context.Context, s *entity.Save) error {
	if s.GUID == "" {
		s.GUID = uuid.NewString()
	}

	var id any
	if s.ID > 0 {
		id = s.ID
	}
	res, err := d.q.ExecContext(ctx, sqlInsertSave, id, s.LevelIndex, s.Name, s.Timestamp, s.GUID)
	if err != nil {
		return fmt.Errorf("failed to insert save %q: %w", s.Name, err)
	}
	if s.ID <= 0 {
		if s.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read id of save %q: %w", s.Name, err)
		}
	}
	return nil
}

// UpdateSave updates level, name and timestamp of the save row
func (d dao) UpdateSave(ctx context.Context, s *entity.Save) error {
	if s.ID <= 0 {
		return ErrUninitialized
	}
	res, err := d.q.ExecContext(ctx, sqlUpdateSave, s.LevelIndex, s.Name, s.Timestamp, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update save %d: %w", s.ID, err)
	}
	return expectOne(res, "save", s.ID)
}

// DeleteSaveRow deletes only the save row
func (d dao) DeleteSaveRow(ctx context.Context, id int64) error {
	res, err := d.q.ExecContext(ctx, sqlDeleteSave, id)
	if err != nil {
		return fmt.Errorf("failed to delete save %d: %w", id, err)
	}
	return expectOne(res, "save", id)
}
