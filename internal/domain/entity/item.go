package entity

// ItemState is the persisted state of one world pickup of a level
type ItemState struct {
	ID         int64
	InGameID   string
	SaveID     int64
	LevelIndex int
	Collected  bool
	Position   Vec2
}

// Persisted returns true if the record already has a database row
func (i ItemState) Persisted() bool {
	return i.ID > 0
}
