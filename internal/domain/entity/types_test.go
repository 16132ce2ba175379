package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Add(t *testing.T) {
	v := Vec2{X: 1.5, Y: -2}.Add(Vec2{X: 0.5, Y: 4})

	assert.Equal(t, Vec2{X: 2, Y: 2}, v)
}

func TestVec2_Dist(t *testing.T) {
	assert.InDelta(t, 5.0, Vec2{}.Dist(Vec2{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 0.0, Vec2{X: 7, Y: 7}.Dist(Vec2{X: 7, Y: 7}), 1e-9)
}
