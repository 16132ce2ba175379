package ecs

import "sort"

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID.
//
// Enemies and items carry an in-game name which is unique per tree;
// the save system matches persisted records to live entities by it.
type World struct {
	nextID EntityID

	// Components
	Name       map[EntityID]string
	Position   map[EntityID]Position
	Health     map[EntityID]Health
	Facing     map[EntityID]Facing
	Velocity   map[EntityID]Velocity
	AI         map[EntityID]AI
	PlayerData map[EntityID]Player
	EnemyData  map[EntityID]Enemy
	ItemData   map[EntityID]Item

	// Tags
	IsPlayer map[EntityID]struct{}
	IsEnemy  map[EntityID]struct{}
	IsItem   map[EntityID]struct{}

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Name:       make(map[EntityID]string),
		Position:   make(map[EntityID]Position),
		Health:     make(map[EntityID]Health),
		Facing:     make(map[EntityID]Facing),
		Velocity:   make(map[EntityID]Velocity),
		AI:         make(map[EntityID]AI),
		PlayerData: make(map[EntityID]Player),
		EnemyData:  make(map[EntityID]Enemy),
		ItemData:   make(map[EntityID]Item),
		IsPlayer:   make(map[EntityID]struct{}),
		IsEnemy:    make(map[EntityID]struct{}),
		IsItem:     make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Name, id)
	delete(w.Position, id)
	delete(w.Health, id)
	delete(w.Facing, id)
	delete(w.Velocity, id)
	delete(w.AI, id)
	delete(w.PlayerData, id)
	delete(w.EnemyData, id)
	delete(w.ItemData, id)
	delete(w.IsPlayer, id)
	delete(w.IsEnemy, id)
	delete(w.IsItem, id)
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// CreatePlayer creates the player entity
func (w *World) CreatePlayer(pos Position, maxHealth int) EntityID {
	id := w.NewEntity()

	w.Position[id] = pos
	w.Health[id] = Health{Current: maxHealth, Max: maxHealth}
	w.Facing[id] = Facing{Right: true}
	w.Velocity[id] = Velocity{}
	w.PlayerData[id] = Player{SpawnPoint: pos}
	w.IsPlayer[id] = struct{}{}

	w.PlayerID = id
	return id
}

// EnemyConfig holds configuration for creating an enemy
type EnemyConfig struct {
	Kind          string
	MaxHealth     int
	ContactDamage int
	Width         float64
	Height        float64
	AI            AI
}

// CreateEnemy creates a named enemy entity
func (w *World) CreateEnemy(name string, pos Position, cfg EnemyConfig, facingRight bool) EntityID {
	id := w.NewEntity()

	w.Name[id] = name
	w.Position[id] = pos
	w.Health[id] = Health{Current: cfg.MaxHealth, Max: cfg.MaxHealth}
	w.Facing[id] = Facing{Right: facingRight}
	if cfg.AI.Type != AIIdle {
		ai := cfg.AI
		ai.PatrolStartX = pos.X
		ai.PatrolDir = -1
		if facingRight {
			ai.PatrolDir = 1
		}
		w.AI[id] = ai
	}
	w.EnemyData[id] = Enemy{
		Kind:          cfg.Kind,
		ContactDamage: cfg.ContactDamage,
		Width:         cfg.Width,
		Height:        cfg.Height,
	}
	w.IsEnemy[id] = struct{}{}

	return id
}

// CreateItem creates a named pickup entity
func (w *World) CreateItem(name string, pos Position, kind ItemKind, count int) EntityID {
	id := w.NewEntity()

	w.Name[id] = name
	w.Position[id] = pos
	w.ItemData[id] = Item{Kind: kind, Count: count}
	w.IsItem[id] = struct{}{}

	return id
}

// FindEnemy returns the live enemy with the given in-game name
func (w *World) FindEnemy(name string) (EntityID, bool) {
	return w.find(w.IsEnemy, name)
}

// FindItem returns the live item with the given in-game name
func (w *World) FindItem(name string) (EntityID, bool) {
	return w.find(w.IsItem, name)
}

func (w *World) find(tree map[EntityID]struct{}, name string) (EntityID, bool) {
	for id := range tree {
		if w.Name[id] == name {
			return id, true
		}
	}
	return 0, false
}

// EnemyNames returns the in-game names of all live enemies, sorted
func (w *World) EnemyNames() []string {
	return w.names(w.IsEnemy)
}

// ItemNames returns the in-game names of all live items, sorted
func (w *World) ItemNames() []string {
	return w.names(w.IsItem)
}

func (w *World) names(tree map[EntityID]struct{}) []string {
	names := make([]string, 0, len(tree))
	for id := range tree {
		names = append(names, w.Name[id])
	}
	sort.Strings(names)
	return names
}

// Enemies returns the ids of all live enemies in ascending order
func (w *World) Enemies() []EntityID {
	return sortedIDs(w.IsEnemy)
}

// Items returns the ids of all live items in ascending order
func (w *World) Items() []EntityID {
	return sortedIDs(w.IsItem)
}

func sortedIDs(tree map[EntityID]struct{}) []EntityID {
	ids := make([]EntityID, 0, len(tree))
	for id := range tree {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DestroyEnemies removes the whole enemy tree
func (w *World) DestroyEnemies() {
	for id := range w.IsEnemy {
		w.DestroyEntity(id)
	}
}

// Player returns the player component
func (w *World) Player() (Player, bool) {
	p, ok := w.PlayerData[w.PlayerID]
	return p, ok
}

// GetPlayerPosition returns the player's position
func (w *World) GetPlayerPosition() Position {
	return w.Position[w.PlayerID]
}

// CountEnemies returns the number of active enemies
func (w *World) CountEnemies() int {
	return len(w.IsEnemy)
}

// CountItems returns the number of items still in the world
func (w *World) CountItems() int {
	return len(w.IsItem)
}
