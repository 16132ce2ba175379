package store

import (
	"context"
	"fmt"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

// Enemies returns the enemy rows of a save
func (d dao) Enemies(ctx context.Context, saveID int64) ([]entity.EnemyState, error) {
	rows, err := d.q.QueryContext(ctx, sqlSelectEnemies, saveID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enemies of save %d: %w", saveID, err)
	}
	defer func() { _ = rows.Close() }()

	enemies := []entity.EnemyState{}
	for rows.Next() {
		var e entity.EnemyState
		if err := rows.Scan(&e.ID, &e.InGameID, &e.SaveID, &e.LevelIndex, &e.Health, &e.IsDead, &e.Position.X, &e.Position.Y); err != nil {
			return nil, fmt.Errorf("failed to scan enemy: %w", err)
		}
		enemies = append(enemies, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read enemies of save %d: %w", saveID, err)
	}
	return enemies, nil
}

// InsertEnemy inserts the enemy row and writes the new id back to e
func (d dao) InsertEnemy(ctx context.Context, e *entity.EnemyState) error {
	res, err := d.q.ExecContext(ctx, sqlInsertEnemy,
		e.InGameID, e.SaveID, e.LevelIndex, e.Health, e.IsDead, e.Position.X, e.Position.Y,
	)
	if err != nil {
		return fmt.Errorf("failed to insert enemy %q: %w", e.InGameID, err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read id of enemy %q: %w", e.InGameID, err)
	}
	return nil
}

// UpdateEnemy updates the mutable columns of the enemy row with e.ID
func (d dao) UpdateEnemy(ctx context.Context, e *entity.EnemyState) error {
	res, err := d.q.ExecContext(ctx, sqlUpdateEnemy, e.Health, e.IsDead, e.Position.X, e.Position.Y, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update enemy %d: %w", e.ID, err)
	}
	return expectOne(res, "enemy", e.ID)
}

// DeleteEnemy deletes the enemy row with id
func (d dao) DeleteEnemy(ctx context.Context, id int64) error {
	res, err := d.q.ExecContext(ctx, sqlDeleteEnemy, id)
	if err != nil {
		return fmt.Errorf("failed to delete enemy %d: %w", id, err)
	}
	return expectOne(res, "enemy", id)
}

// DeleteEnemies deletes every enemy row of a save
func (d dao) DeleteEnemies(ctx context.Context, saveID int64) (int64, error) {
	return d.bulkDelete(ctx, sqlDeleteEnemies, "enemies", saveID)
}
