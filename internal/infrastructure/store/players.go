package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

// Player returns the player row of a save
func (d dao) Player(ctx context.Context, saveID int64) (*entity.PlayerState, error) {
	var p entity.PlayerState
	err := d.q.QueryRowContext(ctx, sqlSelectPlayer, saveID).Scan(
		&p.ID, &p.SaveID, &p.FaceMaskCount, &p.AmmoCount, &p.HasGun,
		&p.Position.X, &p.Position.Y, &p.SpawnPoint.X, &p.SpawnPoint.Y,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player of save %d: %w", saveID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read player of save %d: %w", saveID, err)
	}
	return &p, nil
}

// InsertPlayer inserts the player row and writes the new id back to p
func (d dao) InsertPlayer(ctx context.Context, p *entity.PlayerState) error {
	res, err := d.q.ExecContext(ctx, sqlInsertPlayer,
		p.SaveID, p.FaceMaskCount, p.AmmoCount, p.HasGun,
		p.Position.X, p.Position.Y, p.SpawnPoint.X, p.SpawnPoint.Y,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player of save %d: %w", p.SaveID, err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read player id: %w", err)
	}
	return nil
}

// UpdatePlayer updates the player row with p.ID
func (d dao) UpdatePlayer(ctx context.Context, p *entity.PlayerState) error {
	res, err := d.q.ExecContext(ctx, sqlUpdatePlayer,
		p.FaceMaskCount, p.AmmoCount, p.HasGun,
		p.Position.X, p.Position.Y, p.SpawnPoint.X, p.SpawnPoint.Y,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", p.ID, err)
	}
	return expectOne(res, "player", p.ID)
}

// DeletePlayers deletes the player rows of a save
func (d dao) DeletePlayers(ctx context.Context, saveID int64) (int64, error) {
	return d.bulkDelete(ctx, sqlDeletePlayers, "players", saveID)
}

func (d dao) bulkDelete(ctx context.Context, query, what string, saveID int64) (int64, error) {
	res, err := d.q.ExecContext(ctx, query, saveID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s of save %d: %w", what, saveID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read deleted %s of save %d: %w", what, saveID, err)
	}
	return n, nil
}
