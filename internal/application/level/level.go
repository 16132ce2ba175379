// Package level instantiates level prefabs into a live world and converts
// between the live world and persisted save records.
package level

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/maskrun/internal/ecs"
	"github.com/younwookim/maskrun/internal/infrastructure/config"
	"github.com/younwookim/maskrun/internal/infrastructure/logging"
)

var (
	// ErrDuplicateID is returned when a prefab reuses an in-game id
	ErrDuplicateID = errors.New("duplicate in-game id")
	// ErrUnknownType is returned when a prefab references an undefined enemy or item type
	ErrUnknownType = errors.New("unknown entity type")
	// ErrWrongLevel is returned when applying records that belong to another level
	ErrWrongLevel = errors.New("wrong level index")
)

// Level is a loaded level: the live world plus the id universe captured
// when the prefab was instantiated.
type Level struct {
	Index int
	Name  string
	World *ecs.World

	def      *config.LevelConfig
	entities *config.EntitiesConfig
	log      *log.Logger

	// Default ids, captured once from the fresh prefab
	defEnemyIDs []string
	defItemIDs  []string

	usedCheckpoints map[int]bool
}

// New instantiates the level prefab into a fresh world
func New(def *config.LevelConfig, entities *config.EntitiesConfig, logger *log.Logger) (*Level, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if err := validate(def, entities); err != nil {
		return nil, fmt.Errorf("invalid level %d: %w", def.Index, err)
	}

	l := &Level{
		Index:           def.Index,
		Name:            def.Name,
		World:           ecs.NewWorld(),
		def:             def,
		entities:        entities,
		log:             logger.With("level", def.Index),
		usedCheckpoints: make(map[int]bool),
	}

	spawn := ecs.Position{X: def.PlayerSpawn.X, Y: def.PlayerSpawn.Y}
	l.World.CreatePlayer(spawn, entities.Player.Stats.MaxHealth)
	l.spawnEnemies()
	l.spawnItems()

	for _, e := range def.Enemies {
		l.defEnemyIDs = append(l.defEnemyIDs, e.ID)
	}
	for _, it := range def.Items {
		l.defItemIDs = append(l.defItemIDs, it.ID)
	}

	l.log.Debug("level instantiated", "enemies", len(l.defEnemyIDs), "items", len(l.defItemIDs))
	return l, nil
}

func validate(def *config.LevelConfig, entities *config.EntitiesConfig) error {
	seen := make(map[string]bool)
	for _, e := range def.Enemies {
		if e.ID == "" || seen[e.ID] {
			return fmt.Errorf("enemy %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = true
		cfg, ok := entities.Enemies[e.Type]
		if !ok {
			return fmt.Errorf("enemy %q type %q: %w", e.ID, e.Type, ErrUnknownType)
		}
		if _, ok := ecs.ParseAIType(cfg.AI.Type); !ok {
			return fmt.Errorf("enemy type %q ai %q: %w", e.Type, cfg.AI.Type, ErrUnknownType)
		}
	}

	seen = make(map[string]bool)
	for _, it := range def.Items {
		if it.ID == "" || seen[it.ID] {
			return fmt.Errorf("item %q: %w", it.ID, ErrDuplicateID)
		}
		seen[it.ID] = true
		if _, ok := ecs.ParseItemKind(it.Type); !ok {
			return fmt.Errorf("item %q type %q: %w", it.ID, it.Type, ErrUnknownType)
		}
	}
	return nil
}

func (l *Level) spawnEnemies() {
	for _, spawn := range l.def.Enemies {
		cfg := l.entities.Enemies[spawn.Type]
		aiType, _ := ecs.ParseAIType(cfg.AI.Type)
		l.World.CreateEnemy(spawn.ID, ecs.Position{X: spawn.X, Y: spawn.Y}, ecs.EnemyConfig{
			Kind:          spawn.Type,
			MaxHealth:     cfg.Stats.MaxHealth,
			ContactDamage: cfg.Stats.ContactDamage,
			Width:         cfg.Size.Width,
			Height:        cfg.Size.Height,
			AI: ecs.AI{
				Type:           aiType,
				MoveSpeed:      cfg.AI.MoveSpeed,
				PatrolDistance: cfg.AI.PatrolDistance,
				DetectRange:    cfg.AI.DetectRange,
			},
		}, spawn.FacingRight)
	}
}

func (l *Level) spawnItems() {
	for _, spawn := range l.def.Items {
		kind, _ := ecs.ParseItemKind(spawn.Type)
		count := spawn.Count
		if count == 0 {
			count = l.entities.Items[spawn.Type].Count
		}
		l.World.CreateItem(spawn.ID, ecs.Position{X: spawn.X, Y: spawn.Y}, kind, count)
	}
}

// DefaultEnemyIDs returns the enemy id universe of the level
func (l *Level) DefaultEnemyIDs() []string {
	return append([]string(nil), l.defEnemyIDs...)
}

// DefaultItemIDs returns the item id universe of the level
func (l *Level) DefaultItemIDs() []string {
	return append([]string(nil), l.defItemIDs...)
}

// InitialSpawnPoint returns the level's player spawn
func (l *Level) InitialSpawnPoint() ecs.Position {
	return ecs.Position{X: l.def.PlayerSpawn.X, Y: l.def.PlayerSpawn.Y}
}

// Def returns the level prefab
func (l *Level) Def() *config.LevelConfig {
	return l.def
}

// Entities returns the entity type table the level was built with
func (l *Level) Entities() *config.EntitiesConfig {
	return l.entities
}

// UseCheckpoint marks checkpoint i as used and reports whether it was unused
func (l *Level) UseCheckpoint(i int) bool {
	if l.usedCheckpoints[i] {
		return false
	}
	l.usedCheckpoints[i] = true
	return true
}

// RespawnEnemies replaces the enemy tree with a fresh copy of the prefab.
// Items are left as they are.
func (l *Level) RespawnEnemies() {
	l.World.DestroyEnemies()
	l.spawnEnemies()
}

// RespawnPlayer moves the player back to its spawn point alive
func (l *Level) RespawnPlayer() {
	id := l.World.PlayerID
	p, ok := l.World.PlayerData[id]
	if !ok {
		return
	}
	p.Dead = false
	l.World.PlayerData[id] = p
	l.World.Position[id] = p.SpawnPoint
	l.World.Velocity[id] = ecs.Velocity{}

	h := l.World.Health[id]
	h.Current = h.Max
	l.World.Health[id] = h
}

// CarryPlayer hands the resources of the player of the previous level to
// this level's player. Position and spawn point stay at the level spawn.
func (l *Level) CarryPlayer(prev ecs.Player) {
	id := l.World.PlayerID
	p, ok := l.World.PlayerData[id]
	if !ok {
		return
	}
	p.AmmoCount = prev.AmmoCount
	p.FaceMaskCount = prev.FaceMaskCount
	p.HasGun = prev.HasGun
	l.World.PlayerData[id] = p
}
