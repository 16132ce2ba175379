package entity

// EnemyState is the persisted state of one enemy of a level.
// InGameID is the enemy's stable name inside the level prefab.
type EnemyState struct {
	ID         int64
	InGameID   string
	SaveID     int64
	LevelIndex int
	Health     int
	IsDead     bool
	Position   Vec2
}

// Persisted returns true if the record already has a database row
func (e EnemyState) Persisted() bool {
	return e.ID > 0
}
