package config

// LevelConfig is the root config for level JSON files.
//
// Enemy and item IDs are the in-game identifiers persisted in saves;
// renaming one orphans its records in existing saves.
type LevelConfig struct {
	Index       int                `json:"index"`
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Size        LevelSizeConfig    `json:"size"`
	PlayerSpawn PositionConfig     `json:"playerSpawn"`
	Enemies     []EnemySpawnConfig `json:"enemies"`
	Items       []ItemSpawnConfig  `json:"items"`
	Checkpoints []PositionConfig   `json:"checkpoints"`
	Pits        []SpanConfig       `json:"pits"`
	Exit        *RectConfig        `json:"exit"`
}

type LevelSizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type EnemySpawnConfig struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	FacingRight bool    `json:"facingRight"`
}

type ItemSpawnConfig struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Count int     `json:"count,omitempty"` // overrides the item type count
}

// SpanConfig is a horizontal range [X, X+W) without floor
type SpanConfig struct {
	X float64 `json:"x"`
	W float64 `json:"w"`
}

// Contains reports whether x lies inside the span
func (s SpanConfig) Contains(x float64) bool {
	return x >= s.X && x < s.X+s.W
}

type RectConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether the point lies inside the rect
func (r RectConfig) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
