package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player  PlayerConfig           `json:"player"`
	Enemies map[string]EnemyConfig `json:"enemies"`
	Items   map[string]ItemConfig  `json:"items"`
	Combat  CombatConfig           `json:"combat"`
}

type PlayerConfig struct {
	ID    string      `json:"id"`
	Size  SizeConfig  `json:"size"`
	Stats PlayerStats `json:"stats"`
}

type SizeConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PlayerStats struct {
	MaxHealth int     `json:"maxHealth"`
	MoveSpeed float64 `json:"moveSpeed"` // pixels/sec
	JumpSpeed float64 `json:"jumpSpeed"` // pixels/sec
	Gravity   float64 `json:"gravity"`   // pixels/sec^2
}

type EnemyConfig struct {
	ID    string     `json:"id"`
	Size  SizeConfig `json:"size"`
	Stats EnemyStats `json:"stats"`
	AI    AIConfig   `json:"ai"`
}

// AIConfig describes how an enemy type moves. An empty type stands still.
type AIConfig struct {
	Type           string  `json:"type"` // "", "idle", "patrol", "chase"
	MoveSpeed      float64 `json:"moveSpeed"`
	PatrolDistance float64 `json:"patrolDistance"`
	DetectRange    float64 `json:"detectRange"`
}

type EnemyStats struct {
	MaxHealth     int `json:"maxHealth"`
	ContactDamage int `json:"contactDamage"`
}

type ItemConfig struct {
	ID    string `json:"id"`
	Count int    `json:"count,omitempty"` // ammo or masks granted
}

type CombatConfig struct {
	ShotRange    float64 `json:"shotRange"` // pixels
	ShotDamage   int     `json:"shotDamage"`
	PickupRadius float64 `json:"pickupRadius"`
	Iframes      float64 `json:"iframes"`      // seconds
	ShotCooldown float64 `json:"shotCooldown"` // seconds
}
