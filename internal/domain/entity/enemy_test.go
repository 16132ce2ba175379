package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnemyState_Persisted(t *testing.T) {
	assert.False(t, EnemyState{InGameID: "Virus (1)"}.Persisted())
	assert.True(t, EnemyState{ID: 3, InGameID: "Virus (1)"}.Persisted())
}

func TestItemState_Persisted(t *testing.T) {
	assert.False(t, ItemState{InGameID: "Facemask"}.Persisted())
	assert.True(t, ItemState{ID: 1, InGameID: "Facemask"}.Persisted())
}
