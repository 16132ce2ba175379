package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateInGameID is returned when a save holds an empty in-game id or
// two records with the same one
var ErrDuplicateInGameID = errors.New("duplicate in-game id")

// Save is a save slot with all of its child records.
//
// Loaded is runtime only: false means the save was picked for loading
// but has not yet been applied to a freshly loaded level.
type Save struct {
	ID         int64
	GUID       string
	LevelIndex int
	Name       string
	Timestamp  int64 // unix seconds
	Loaded     bool

	Player  *PlayerState
	Enemies []EnemyState
	Items   []ItemState
}

// SetSaveID stamps id on the save and all of its child records
func (s *Save) SetSaveID(id int64) {
	s.ID = id
	if s.Player != nil {
		s.Player.SaveID = id
	}
	for i := range s.Enemies {
		s.Enemies[i].SaveID = id
	}
	for i := range s.Items {
		s.Items[i].SaveID = id
	}
}

// EnemyByInGameID returns the enemy record with the given in-game id
func (s *Save) EnemyByInGameID(id string) (EnemyState, bool) {
	for _, e := range s.Enemies {
		if e.InGameID == id {
			return e, true
		}
	}
	return EnemyState{}, false
}

// ItemByInGameID returns the item record with the given in-game id
func (s *Save) ItemByInGameID(id string) (ItemState, bool) {
	for _, it := range s.Items {
		if it.InGameID == id {
			return it, true
		}
	}
	return ItemState{}, false
}

// Time returns the save timestamp as UTC time
func (s *Save) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// Label returns the text shown in save lists: "<name> <date>"
func (s *Save) Label() string {
	return fmt.Sprintf("%s %s", s.Name, s.Time().Format("2006-01-02"))
}

// DeadEnemies returns the number of enemies recorded as dead
func (s *Save) DeadEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if e.IsDead {
			n++
		}
	}
	return n
}

// CollectedItems returns the number of items recorded as collected
func (s *Save) CollectedItems() int {
	n := 0
	for _, it := range s.Items {
		if it.Collected {
			n++
		}
	}
	return n
}

// Detached returns a deep copy of s without save, player or record row ids
func (s *Save) Detached() *Save {
	out := &Save{
		GUID:       s.GUID,
		LevelIndex: s.LevelIndex,
		Name:       s.Name,
		Timestamp:  s.Timestamp,
		Loaded:     s.Loaded,
		Enemies:    make([]EnemyState, len(s.Enemies)),
		Items:      make([]ItemState, len(s.Items)),
	}
	if s.Player != nil {
		p := *s.Player
		p.ID, p.SaveID = 0, 0
		out.Player = &p
	}
	for i, e := range s.Enemies {
		e.ID, e.SaveID = 0, 0
		out.Enemies[i] = e
	}
	for i, it := range s.Items {
		it.ID, it.SaveID = 0, 0
		out.Items[i] = it
	}
	return out
}

// CheckInGameIDs reports the first empty or repeated in-game id among the
// enemy records and among the item records
func (s *Save) CheckInGameIDs() error {
	seen := make(map[string]bool, len(s.Enemies))
	for _, e := range s.Enemies {
		if e.InGameID == "" || seen[e.InGameID] {
			return fmt.Errorf("enemy %q: %w", e.InGameID, ErrDuplicateInGameID)
		}
		seen[e.InGameID] = true
	}

	seen = make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		if it.InGameID == "" || seen[it.InGameID] {
			return fmt.Errorf("item %q: %w", it.InGameID, ErrDuplicateInGameID)
		}
		seen[it.InGameID] = true
	}
	return nil
}
