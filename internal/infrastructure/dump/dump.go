// Package dump reads and writes saves as versioned JSON files.
package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

// Version of the dump file format
const Version = "1.0"

// ErrVersion is returned when reading a dump of another format version
var ErrVersion = errors.New("unsupported dump version")

// Vec2 is a position in a dump file
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is the player record of a dump
type Player struct {
	FaceMaskCount int  `json:"facemaskCount"`
	AmmoCount     int  `json:"ammoCount"`
	HasGun        bool `json:"hasGun"`
	Position      Vec2 `json:"position"`
	SpawnPoint    Vec2 `json:"spawnPoint"`
}

// Enemy is an enemy record of a dump
type Enemy struct {
	InGameID string `json:"ingameId"`
	Health   int    `json:"health"`
	IsDead   bool   `json:"isDead,omitempty"`
	Position Vec2   `json:"position"`
}

// Item is an item record of a dump
type Item struct {
	InGameID  string `json:"ingameId"`
	Collected bool   `json:"collected,omitempty"`
	Position  Vec2   `json:"position"`
}

// File contains a save detached from its database rows
type File struct {
	Version    string  `json:"version"`
	ExportedAt string  `json:"exportedAt"`
	GUID       string  `json:"guid"`
	Name       string  `json:"name"`
	LevelIndex int     `json:"levelIndex"`
	Timestamp  int64   `json:"timestamp"`
	Player     *Player `json:"player,omitempty"`
	Enemies    []Enemy `json:"enemies"`
	Items      []Item  `json:"items"`
}

// FromSave converts a save into a dump file
func FromSave(s *entity.Save, now time.Time) *File {
	f := &File{
		Version:    Version,
		ExportedAt: now.UTC().Format(time.RFC3339),
		GUID:       s.GUID,
		Name:       s.Name,
		LevelIndex: s.LevelIndex,
		Timestamp:  s.Timestamp,
		Enemies:    make([]Enemy, 0, len(s.Enemies)),
		Items:      make([]Item, 0, len(s.Items)),
	}
	if p := s.Player; p != nil {
		f.Player = &Player{
			FaceMaskCount: p.FaceMaskCount,
			AmmoCount:     p.AmmoCount,
			HasGun:        p.HasGun,
			Position:      Vec2(p.Position),
			SpawnPoint:    Vec2(p.SpawnPoint),
		}
	}
	for _, e := range s.Enemies {
		f.Enemies = append(f.Enemies, Enemy{
			InGameID: e.InGameID,
			Health:   e.Health,
			IsDead:   e.IsDead,
			Position: Vec2(e.Position),
		})
	}
	for _, it := range s.Items {
		f.Items = append(f.Items, Item{
			InGameID:  it.InGameID,
			Collected: it.Collected,
			Position:  Vec2(it.Position),
		})
	}
	return f
}

// Save converts the dump back into an unsaved save: no row ids are set and
// every child record carries the dump's level index.
func (f *File) Save() *entity.Save {
	s := &entity.Save{
		GUID:       f.GUID,
		LevelIndex: f.LevelIndex,
		Name:       f.Name,
		Timestamp:  f.Timestamp,
		Enemies:    make([]entity.EnemyState, 0, len(f.Enemies)),
		Items:      make([]entity.ItemState, 0, len(f.Items)),
	}
	if p := f.Player; p != nil {
		s.Player = &entity.PlayerState{
			FaceMaskCount: p.FaceMaskCount,
			AmmoCount:     p.AmmoCount,
			HasGun:        p.HasGun,
			Position:      entity.Vec2(p.Position),
			SpawnPoint:    entity.Vec2(p.SpawnPoint),
		}
	}
	for _, e := range f.Enemies {
		s.Enemies = append(s.Enemies, entity.EnemyState{
			InGameID:   e.InGameID,
			LevelIndex: f.LevelIndex,
			Health:     e.Health,
			IsDead:     e.IsDead,
			Position:   entity.Vec2(e.Position),
		})
	}
	for _, it := range f.Items {
		s.Items = append(s.Items, entity.ItemState{
			InGameID:   it.InGameID,
			LevelIndex: f.LevelIndex,
			Collected:  it.Collected,
			Position:   entity.Vec2(it.Position),
		})
	}
	return s
}

// Write encodes the dump as indented JSON
func (f *File) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	return nil
}

// WriteFile writes the dump to filename
func (f *File) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := f.Write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Read decodes a dump and checks its version
func Read(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode dump: %w", err)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("dump version %q: %w", f.Version, ErrVersion)
	}
	return &f, nil
}

// ReadFile loads a dump from filename
func ReadFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}
