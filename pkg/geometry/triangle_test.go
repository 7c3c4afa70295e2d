package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestNormal_UnitLength(t *testing.T) {
	tests := []Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 1, Y: 2, Z: 3}, {X: 4, Y: -5, Z: 6}, {X: -7, Y: 8, Z: 9.5}},
		{{X: 1e5, Y: 2e5, Z: 312.25}, {X: 1e5 + 50, Y: 2e5, Z: 315}, {X: 1e5, Y: 2e5 - 50, Z: 309.5}},
		{{X: 0.001, Y: 0, Z: 0}, {X: 0, Y: 0.001, Z: 0}, {X: 0, Y: 0, Z: 0.001}},
	}

	for i, tri := range tests {
		n, err := tri.Normal()
		require.NoError(t, err, "triangle %d", i)
		assert.InDelta(t, 1.0, r3.Norm(n), tol, "triangle %d", i)
	}
}

func TestNormal_KnownValues(t *testing.T) {
	n, err := Normal(Vertex{X: 0, Y: 0, Z: 0}, Vertex{X: 1, Y: 0, Z: 0}, Vertex{X: 0, Y: 1, Z: 0})
	require.NoError(t, err)
	assert.Equal(t, Vertex{X: 0, Y: 0, Z: 1}, n)

	// Plane tilted 45 degrees about the y axis.
	n, err = Normal(Vertex{X: 0, Y: 0, Z: 0}, Vertex{X: 1, Y: 0, Z: 1}, Vertex{X: 0, Y: 1, Z: 0})
	require.NoError(t, err)
	assert.InDelta(t, -0.7071067811865475, n.X, tol)
	assert.InDelta(t, 0.0, n.Y, tol)
	assert.InDelta(t, 0.7071067811865475, n.Z, tol)
}

// The y and z components must use full cross-product terms.
func TestNormal_AllComponents(t *testing.T) {
	v0 := Vertex{X: 0, Y: 0, Z: 0}
	v1 := Vertex{X: 2, Y: 0, Z: 1}
	v2 := Vertex{X: 0, Y: 3, Z: 1}

	// u = (2,0,1), v = (0,3,1): u x v = (-3, -2, 6), |n| = 7
	n, err := Normal(v0, v1, v2)
	require.NoError(t, err)
	assert.InDelta(t, -3.0/7, n.X, tol)
	assert.InDelta(t, -2.0/7, n.Y, tol)
	assert.InDelta(t, 6.0/7, n.Z, tol)
}

// Edges of 1e-160 give a subnormal cross product magnitude.
func TestNormal_SubnormalMagnitude(t *testing.T) {
	n, err := Normal(Vertex{X: 0, Y: 0, Z: 0}, Vertex{X: 1e-160, Y: 0, Z: 0}, Vertex{X: 0, Y: 1e-160, Z: 0})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z), "normal %v", n)
	assert.Equal(t, Vertex{X: 0, Y: 0, Z: 1}, n)
	assert.InDelta(t, 1.0, r3.Norm(n), tol)
}

func TestNormal_WindingFlips(t *testing.T) {
	tris := []Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 3, Y: 1, Z: -2}, {X: 0.5, Y: 7, Z: 4}, {X: -1, Y: -1, Z: 1}},
		{{X: 10, Y: 10, Z: 100}, {X: 11, Y: 10, Z: 102}, {X: 10, Y: 9, Z: 99}},
	}

	for i, tri := range tris {
		a, err := tri.Normal()
		require.NoError(t, err)
		b, err := tri.Reversed().Normal()
		require.NoError(t, err)

		assert.InDelta(t, -a.X, b.X, tol, "triangle %d x", i)
		assert.InDelta(t, -a.Y, b.Y, tol, "triangle %d y", i)
		assert.InDelta(t, -a.Z, b.Z, tol, "triangle %d z", i)
	}
}

func TestNormal_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
	}{
		{"coincident", Triangle{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}},
		{"two equal", Triangle{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}},
		{"collinear", Triangle{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}}},
		{"underflow", Triangle{{X: 0, Y: 0, Z: 0}, {X: 1e-200, Y: 0, Z: 0}, {X: 0, Y: 1e-200, Z: 0}}},
		{"overflow", Triangle{{X: 0, Y: 0, Z: 0}, {X: 1e300, Y: 0, Z: 0}, {X: 0, Y: 1e300, Z: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tri.Normal()
			assert.True(t, errors.Is(err, ErrDegenerateGeometry), "got %v", err)
		})
	}
}

func TestTriangle_Area(t *testing.T) {
	tri := Triangle{{X: 0, Y: 0, Z: 5}, {X: 2, Y: 0, Z: 5}, {X: 0, Y: 3, Z: 5}}
	assert.InDelta(t, 3.0, tri.Area(), tol)
	assert.InDelta(t, 3.0, tri.Reversed().Area(), tol)
}
