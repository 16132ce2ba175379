// Package store persists saves in SQLite.
//
// Every table has an AUTOINCREMENT primary key so that sqlite_sequence
// tracks the next id of each table, which NextID exposes.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

//go:embed schema/*.sql
var schemaFS embed.FS

var (
	// ErrNotFound is returned when a row targeted by id does not exist
	ErrNotFound = errors.New("row not found")
	// ErrUninitialized is returned when a save without id is used as a key
	ErrUninitialized = errors.New("save is uninitialized")
)

// Table names a table with an autoincrement sequence
type Table string

const (
	TableSave   Table = "save"
	TablePlayer Table = "player"
	TableEnemy  Table = "enemy"
	TableItem   Table = "item"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dao holds the row-level operations shared by Store and Tx
type dao struct {
	q querier
}

// Store is a SQLite backed save database
type Store struct {
	dao
	db  *sql.DB
	log *log.Logger
}

// Tx is a running transaction
type Tx struct {
	dao
}

// Open opens (creating if needed) the SQLite database at path and applies
// pending schema migrations.
func Open(ctx context.Context, path string, logger *log.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection also keeps pragmas consistent
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	s := &Store{dao: dao{q: db}, db: db, log: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i, name := range files {
		if i < version {
			continue
		}
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		err = s.InTx(ctx, func(tx *Tx) error {
			for _, stmt := range strings.Split(string(data), ";") {
				if strings.TrimSpace(stmt) == "" {
					continue
				}
				if _, err := tx.q.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			// PRAGMA does not accept bound parameters
			_, err := tx.q.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1))
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		s.logger().Debug("applied migration", "file", name, "version", i+1)
	}
	return nil
}

// InTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back on error or panic.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				s.logger().Error("rollback failed", "err", rbErr)
			}
		}
	}()

	if err = fn(&Tx{dao: dao{q: sqlTx}}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) logger() *log.Logger {
	if s.log == nil {
		return log.Default()
	}
	return s.log
}

// NextID returns the next autoincrement id of table.
// A table that never had a row returns 1.
func (d dao) NextID(ctx context.Context, table Table) (int64, error) {
	var seq int64
	err := d.q.QueryRowContext(ctx, sqlNextID, string(table)).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence of %s: %w", table, err)
	}
	return seq + 1, nil
}

// Saves returns all saves with their related rows
func (s *Store) Saves(ctx context.Context) ([]*entity.Save, error) {
	saves, err := s.ListSaves(ctx)
	if err != nil {
		return nil, err
	}
	for _, save := range saves {
		if err := s.GatherRelated(ctx, save); err != nil {
			return nil, err
		}
	}
	return saves, nil
}

// Save returns the save with id and its related rows
func (s *Store) Save(ctx context.Context, id int64) (*entity.Save, error) {
	save, err := s.GetSave(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.GatherRelated(ctx, save); err != nil {
		return nil, err
	}
	return save, nil
}

// SaveByGUID returns the save with guid and its related rows
func (s *Store) SaveByGUID(ctx context.Context, guid string) (*entity.Save, error) {
	save, err := s.GetSaveByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	if err := s.GatherRelated(ctx, save); err != nil {
		return nil, err
	}
	return save, nil
}

// DeleteSave removes a save and all of its child rows
func (s *Store) DeleteSave(ctx context.Context, id int64) error {
	return s.InTx(ctx, func(tx *Tx) error {
		if _, err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		if _, err := tx.DeleteEnemies(ctx, id); err != nil {
			return err
		}
		if _, err := tx.DeletePlayers(ctx, id); err != nil {
			return err
		}
		return tx.DeleteSaveRow(ctx, id)
	})
}

func expectOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows of %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
