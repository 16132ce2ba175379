package dump

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/maskrun/internal/domain/entity"
)

func sampleSave() *entity.Save {
	return &entity.Save{
		ID:         7,
		GUID:       "5f0c7c2e-8a43-4a53-9a44-2f7f8f0e7a11",
		LevelIndex: 2,
		Name:       "hospital",
		Timestamp:  1700000000,
		Loaded:     true,
		Player: &entity.PlayerState{
			ID: 3, SaveID: 7, FaceMaskCount: 1, AmmoCount: 6, HasGun: true,
			Position: entity.Vec2{X: 640, Y: 200}, SpawnPoint: entity.Vec2{X: 700, Y: 200},
		},
		Enemies: []entity.EnemyState{
			{ID: 11, InGameID: "Melee", SaveID: 7, LevelIndex: 2, IsDead: true},
			{ID: 12, InGameID: "Boss", SaveID: 7, LevelIndex: 2, Health: 14, Position: entity.Vec2{X: 1100, Y: 190}},
		},
		Items: []entity.ItemState{
			{ID: 21, InGameID: "AmmoBox", SaveID: 7, LevelIndex: 2, Collected: true},
			{ID: 22, InGameID: "Vaccine", SaveID: 7, LevelIndex: 2, Position: entity.Vec2{X: 1220, Y: 200}},
		},
	}
}

func TestFromSave_DropsRowIDs(t *testing.T) {
	f := FromSave(sampleSave(), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	assert.Equal(t, Version, f.Version)
	assert.Equal(t, "2026-01-02T03:04:05Z", f.ExportedAt)

	s := f.Save()
	assert.Zero(t, s.ID)
	assert.Zero(t, s.Player.ID)
	assert.Zero(t, s.Player.SaveID)
	for _, e := range s.Enemies {
		assert.Zero(t, e.ID)
		assert.Equal(t, 2, e.LevelIndex)
	}
	assert.True(t, s.Enemies[0].IsDead)
	assert.Equal(t, 14, s.Enemies[1].Health)
	assert.True(t, s.Items[0].Collected)
	assert.Equal(t, entity.Vec2{X: 1220, Y: 200}, s.Items[1].Position)
	assert.Equal(t, "5f0c7c2e-8a43-4a53-9a44-2f7f8f0e7a11", s.GUID)
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	f := FromSave(sampleSave(), time.Now())

	require.NoError(t, f.Write(&buf))
	assert.Contains(t, buf.String(), `"ingameId": "Boss"`)

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	f := FromSave(sampleSave(), time.Now())

	require.NoError(t, f.WriteFile(path))
	got, err := ReadFile(path)

	require.NoError(t, err)
	assert.Equal(t, f.Save(), got.Save())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"wrong version", `{"version":"0.1"}`, ErrVersion},
		{"missing version", `{}`, ErrVersion},
		{"not json", `save`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}
