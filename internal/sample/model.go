// Package sample generates a small drift dataset with the circles agent
// model: per-step drift CSV, hex density snapshots and an optional preview
// video, laid out the way the figure command expects to find them.
package sample

import (
	"math"
	"math/rand"
)

// Model constants.
const (
	Density = 1.0  // agents per unit area
	Repulse = 0.05 // force scale
)

// Vec is a position in the periodic square.
type Vec struct {
	X, Y float64
}

// Model is one circles simulation. Every agent is pushed by each neighbour
// within Radius with a force that repels at short range and attracts
// further out; the square wraps at both edges.
type Model struct {
	Radius float64
	Width  float64

	pos   []Vec
	force []Vec
}

// NewModel places agents uniformly at random in a square sized for Density.
func NewModel(agents int, radius float64, seed int64) *Model {
	rng := rand.New(rand.NewSource(seed))
	width := math.Sqrt(float64(agents) / Density)

	m := &Model{
		Radius: radius,
		Width:  width,
		pos:    make([]Vec, agents),
		force:  make([]Vec, agents),
	}
	for i := range m.pos {
		m.pos[i] = Vec{X: rng.Float64() * width, Y: rng.Float64() * width}
	}
	return m
}

// Positions returns a copy of the agent positions.
func (m *Model) Positions() []Vec {
	return append([]Vec(nil), m.pos...)
}

// Step moves every agent once and returns the drift: the mean distance an
// agent moved.
func (m *Model) Step() float64 {
	for i := range m.force {
		m.force[i] = Vec{}
	}

	for i := range m.pos {
		for j := i + 1; j < len(m.pos); j++ {
			dx := m.wrap(m.pos[j].X - m.pos[i].X)
			dy := m.wrap(m.pos[j].Y - m.pos[i].Y)
			d := math.Hypot(dx, dy)
			if d <= 0 || d >= m.Radius {
				continue
			}
			// sin(-2*pi*d/r): negative (away) below r/2, positive (towards) above.
			k := math.Sin(-2*math.Pi*d/m.Radius) * Repulse
			fx, fy := k*dx/d, k*dy/d
			m.force[i].X += fx
			m.force[i].Y += fy
			m.force[j].X -= fx
			m.force[j].Y -= fy
		}
	}

	var total float64
	for i, f := range m.force {
		m.pos[i].X = m.mod(m.pos[i].X + f.X)
		m.pos[i].Y = m.mod(m.pos[i].Y + f.Y)
		total += math.Hypot(f.X, f.Y)
	}

	if len(m.pos) == 0 {
		return 0
	}
	return total / float64(len(m.pos))
}

// wrap maps a separation to its nearest periodic image.
func (m *Model) wrap(d float64) float64 {
	half := m.Width / 2
	switch {
	case d > half:
		return d - m.Width
	case d < -half:
		return d + m.Width
	}
	return d
}

func (m *Model) mod(x float64) float64 {
	x = math.Mod(x, m.Width)
	if x < 0 {
		x += m.Width
	}
	if x >= m.Width {
		return 0
	}
	return x
}
