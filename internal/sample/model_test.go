package sample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelIsSeeded(t *testing.T) {
	a := NewModel(32, 2, 7)
	b := NewModel(32, 2, 7)
	c := NewModel(32, 2, 8)

	assert.Equal(t, a.Positions(), b.Positions())
	assert.NotEqual(t, a.Positions(), c.Positions())
	assert.InDelta(t, math.Sqrt(32), a.Width, 1e-12)
}

func TestStepIsDeterministic(t *testing.T) {
	a := NewModel(40, 3, 1)
	b := NewModel(40, 3, 1)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Step(), b.Step(), "step %d", i)
	}
	assert.Equal(t, a.Positions(), b.Positions())
}

func TestStepKeepsAgentsInside(t *testing.T) {
	m := NewModel(64, 4, 3)
	for i := 0; i < 50; i++ {
		d := m.Step()
		require.GreaterOrEqual(t, d, 0.0)
	}
	for _, p := range m.Positions() {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, m.Width)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, m.Width)
	}
}

func TestStepWithoutNeighbours(t *testing.T) {
	m := NewModel(16, 1e-9, 5)
	before := m.Positions()

	assert.Zero(t, m.Step())
	assert.Equal(t, before, m.Positions())
}

func TestPairForces(t *testing.T) {
	tests := []struct {
		name   string
		gap    float64
		closer bool
	}{
		{"repel below half radius", 0.5, false},
		{"attract above half radius", 1.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{
				Radius: 2,
				Width:  10,
				pos:    []Vec{{X: 5, Y: 5}, {X: 5 + tt.gap, Y: 5}},
				force:  make([]Vec, 2),
			}
			d := m.Step()
			assert.Positive(t, d)

			after := m.pos[1].X - m.pos[0].X
			if tt.closer {
				assert.Less(t, after, tt.gap)
			} else {
				assert.Greater(t, after, tt.gap)
			}
		})
	}
}

func TestForcesCrossTheEdge(t *testing.T) {
	m := &Model{
		Radius: 2,
		Width:  10,
		pos:    []Vec{{X: 0.2, Y: 5}, {X: 9.8, Y: 5}},
		force:  make([]Vec, 2),
	}
	assert.Positive(t, m.Step())
}

func TestWrapAndMod(t *testing.T) {
	m := &Model{Width: 10}

	assert.InDelta(t, -4.0, m.wrap(6), 1e-12)
	assert.InDelta(t, 4.0, m.wrap(-6), 1e-12)
	assert.InDelta(t, 3.0, m.wrap(3), 1e-12)

	assert.InDelta(t, 9.5, m.mod(-0.5), 1e-12)
	assert.InDelta(t, 0.5, m.mod(10.5), 1e-12)
	assert.Zero(t, m.mod(10))
}
