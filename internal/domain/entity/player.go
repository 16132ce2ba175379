package entity

// PlayerState is the persisted state of the player of a save
type PlayerState struct {
	ID            int64
	SaveID        int64
	FaceMaskCount int
	AmmoCount     int
	HasGun        bool
	Position      Vec2
	SpawnPoint    Vec2
}
