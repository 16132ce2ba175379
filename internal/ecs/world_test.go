package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slime = EnemyConfig{Kind: "patroller", MaxHealth: 3, ContactDamage: 1, Width: 1, Height: 1}

func TestNewWorld(t *testing.T) {
	w := NewWorld()

	assert.NotNil(t, w)
	assert.Equal(t, EntityID(1), w.nextID)
	assert.NotNil(t, w.Position)
	assert.NotNil(t, w.Name)
	assert.NotNil(t, w.IsPlayer)
}

func TestNewEntity(t *testing.T) {
	w := NewWorld()

	id1 := w.NewEntity()
	id2 := w.NewEntity()
	id3 := w.NewEntity()

	assert.Equal(t, EntityID(1), id1)
	assert.Equal(t, EntityID(2), id2)
	assert.Equal(t, EntityID(3), id3)
	assert.Equal(t, EntityID(4), w.nextID)
}

func TestEntityIDNeverRecycled(t *testing.T) {
	w := NewWorld()

	id1 := w.NewEntity()
	w.Position[id1] = Position{X: 100, Y: 200}

	w.DestroyEntity(id1)

	id2 := w.NewEntity()
	assert.NotEqual(t, id1, id2, "Entity IDs should never be recycled")
	assert.Equal(t, EntityID(2), id2)
}

func TestDestroyEntity(t *testing.T) {
	w := NewWorld()
	id := w.CreateEnemy("Virus", Position{X: 1, Y: 2}, slime, false)

	require.True(t, w.Exists(id))

	w.DestroyEntity(id)

	assert.False(t, w.Exists(id))
	_, hasName := w.Name[id]
	assert.False(t, hasName)
	_, hasHealth := w.Health[id]
	assert.False(t, hasHealth)
	_, isEnemy := w.IsEnemy[id]
	assert.False(t, isEnemy)
}

func TestDestroyPlayerClearsSingleton(t *testing.T) {
	w := NewWorld()
	id := w.CreatePlayer(Position{X: 5, Y: 5}, 1)

	w.DestroyEntity(id)

	assert.Equal(t, EntityID(0), w.PlayerID)
	_, ok := w.Player()
	assert.False(t, ok)
}

func TestCreatePlayer(t *testing.T) {
	w := NewWorld()
	id := w.CreatePlayer(Position{X: 3, Y: 4}, 1)

	assert.Equal(t, id, w.PlayerID)
	p, ok := w.Player()
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 4}, p.SpawnPoint)
	assert.Equal(t, Position{X: 3, Y: 4}, w.GetPlayerPosition())
	assert.True(t, w.Facing[id].Right)
}

func TestFindByName(t *testing.T) {
	w := NewWorld()
	e := w.CreateEnemy("Virus (1)", Position{}, slime, true)
	i := w.CreateItem("Facemask", Position{}, ItemFaceMask, 1)

	got, ok := w.FindEnemy("Virus (1)")
	require.True(t, ok)
	assert.Equal(t, e, got)

	got, ok = w.FindItem("Facemask")
	require.True(t, ok)
	assert.Equal(t, i, got)

	_, ok = w.FindEnemy("Facemask")
	assert.False(t, ok, "enemy lookup must not see the item tree")

	_, ok = w.FindItem("Virus (1)")
	assert.False(t, ok, "item lookup must not see the enemy tree")
}

func TestNamesSorted(t *testing.T) {
	w := NewWorld()
	w.CreateEnemy("b", Position{}, slime, true)
	w.CreateEnemy("a", Position{}, slime, true)
	w.CreateItem("z", Position{}, ItemAmmoBox, 4)
	w.CreateItem("y", Position{}, ItemAmmoBox, 4)

	assert.Equal(t, []string{"a", "b"}, w.EnemyNames())
	assert.Equal(t, []string{"y", "z"}, w.ItemNames())
}

func TestSortedIDs(t *testing.T) {
	w := NewWorld()
	a := w.CreateEnemy("a", Position{}, slime, true)
	b := w.CreateEnemy("b", Position{}, slime, true)
	c := w.CreateItem("c", Position{}, ItemShotgun, 0)

	assert.Equal(t, []EntityID{a, b}, w.Enemies())
	assert.Equal(t, []EntityID{c}, w.Items())
}

func TestDestroyEnemies(t *testing.T) {
	w := NewWorld()
	w.CreatePlayer(Position{}, 1)
	w.CreateEnemy("a", Position{}, slime, true)
	w.CreateEnemy("b", Position{}, slime, true)
	w.CreateItem("c", Position{}, ItemVaccine, 0)

	w.DestroyEnemies()

	assert.Equal(t, 0, w.CountEnemies())
	assert.Equal(t, 1, w.CountItems())
	assert.NotZero(t, w.PlayerID)
}

func TestHealth(t *testing.T) {
	t.Run("TakeDamage", func(t *testing.T) {
		h := Health{Current: 3, Max: 3}

		dead := h.TakeDamage(1)
		assert.False(t, dead)
		assert.Equal(t, 2, h.Current)

		dead = h.TakeDamage(5)
		assert.True(t, dead)
		assert.Equal(t, -3, h.Current)
	})

	t.Run("Heal", func(t *testing.T) {
		h := Health{Current: 1, Max: 3}

		h.Heal(1)
		assert.Equal(t, 2, h.Current)

		h.Heal(5)
		assert.Equal(t, 3, h.Current, "Should not exceed max")
	})

	t.Run("IsAlive", func(t *testing.T) {
		h := Health{Current: 1, Max: 3}
		assert.True(t, h.IsAlive())

		h.Current = 0
		assert.False(t, h.IsAlive())
	})
}

func TestItemKind(t *testing.T) {
	for _, k := range []ItemKind{ItemAmmoBox, ItemFaceMask, ItemShotgun, ItemVaccine} {
		t.Run(k.String(), func(t *testing.T) {
			got, ok := ParseItemKind(k.String())
			require.True(t, ok)
			assert.Equal(t, k, got)
		})
	}

	_, ok := ParseItemKind("gold")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ItemKind(99).String())
}

func TestPlayerResources(t *testing.T) {
	var p Player
	p.AddAmmo(4)
	p.AddFaceMasks(2)
	p.PickupShotgun()

	assert.Equal(t, 4, p.AmmoCount)
	assert.Equal(t, 2, p.FaceMaskCount)
	assert.True(t, p.HasGun)
}

func TestCreateEnemy_AI(t *testing.T) {
	w := NewWorld()
	patrol := slime
	patrol.AI = AI{Type: AIPatrol, MoveSpeed: 30, PatrolDistance: 40}

	left := w.CreateEnemy("left", Position{X: 100, Y: 200}, patrol, false)
	right := w.CreateEnemy("right", Position{X: 300, Y: 200}, patrol, true)
	idle := w.CreateEnemy("idle", Position{X: 500, Y: 200}, slime, false)

	assert.Equal(t, 100.0, w.AI[left].PatrolStartX)
	assert.Equal(t, -1, w.AI[left].PatrolDir)
	assert.Equal(t, 1, w.AI[right].PatrolDir)
	_, ok := w.AI[idle]
	assert.False(t, ok, "idle enemies carry no AI")

	w.DestroyEntity(left)
	_, ok = w.AI[left]
	assert.False(t, ok)
}

func TestParseAIType(t *testing.T) {
	tests := []struct {
		in   string
		want AIType
		ok   bool
	}{
		{"", AIIdle, true},
		{"idle", AIIdle, true},
		{"patrol", AIPatrol, true},
		{"chase", AIChase, true},
		{"ranged", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAIType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
