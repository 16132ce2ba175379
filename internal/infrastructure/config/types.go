package config

// Settings is the root config for settings.toml
type Settings struct {
	Display  DisplayConfig  `toml:"display"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Game     GameSettings   `toml:"game"`
}

type DisplayConfig struct {
	ScreenWidth  int    `toml:"screen_width"`
	ScreenHeight int    `toml:"screen_height"`
	Scale        int    `toml:"scale"`
	Framerate    int    `toml:"framerate"`
	Title        string `toml:"title"`
}

type DatabaseConfig struct {
	// Path is the SQLite file, relative paths resolve against the working directory
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

type GameSettings struct {
	FirstLevel int `toml:"first_level"`
	LastLevel  int `toml:"last_level"`
}

// DefaultSettings returns the settings used when settings.toml is absent
func DefaultSettings() *Settings {
	return &Settings{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Framerate:    60,
			Title:        "maskrun",
		},
		Database: DatabaseConfig{Path: "saves.db"},
		Log:      LogConfig{Level: "info"},
		Game:     GameSettings{FirstLevel: 1, LastLevel: 2},
	}
}
