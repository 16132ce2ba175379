package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Settings *Settings
	Entities *EntitiesConfig
}

// Loader loads game configuration from files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSettings loads settings.toml on top of DefaultSettings.
// A missing file is not an error.
func (l *Loader) LoadSettings() (*Settings, error) {
	cfg := DefaultSettings()

	data, err := fs.ReadFile(l.fsys, "settings.toml")
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings.toml: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings.toml: %w", err)
	}

	return cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}

	return &cfg, nil
}

// LoadLevel loads levels/<index>.json
func (l *Loader) LoadLevel(index int) (*LevelConfig, error) {
	path := fmt.Sprintf("levels/%d.json", index)
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %d: %w", index, err)
	}

	var cfg LevelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %d: %w", index, err)
	}
	if cfg.Index != index {
		return nil, fmt.Errorf("level file %s declares index %d", path, cfg.Index)
	}

	return &cfg, nil
}

// HasLevel reports whether levels/<index>.json exists
func (l *Loader) HasLevel(index int) bool {
	_, err := fs.Stat(l.fsys, fmt.Sprintf("levels/%d.json", index))
	return err == nil
}

// LoadAll loads all base configurations (settings, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings: settings,
		Entities: entities,
	}, nil
}
