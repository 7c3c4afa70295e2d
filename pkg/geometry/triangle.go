// Package geometry provides triangle math for terrain surface meshes.
package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateGeometry is returned when a triangle has no defined normal
// because its vertices are collinear or coincident.
var ErrDegenerateGeometry = errors.New("degenerate triangle: zero-length normal")

// Vertex is a point in 3D space.
type Vertex = r3.Vec

// Triangle is an ordered triple of vertices.
// The order determines the normal direction (right-hand rule).
type Triangle [3]Vertex

// Normal returns the unit normal of the triangle (v0, v1, v2), computed as
// the normalized cross product (v1-v0) x (v2-v0).
func Normal(v0, v1, v2 Vertex) (Vertex, error) {
	u := r3.Sub(v1, v0)
	v := r3.Sub(v2, v0)
	n := r3.Cross(u, v)

	c := r3.Norm(n)
	if c == 0 || !finite(c) {
		return Vertex{}, ErrDegenerateGeometry
	}

	// Divide per component: 1/c overflows when c is subnormal.
	unit := Vertex{X: n.X / c, Y: n.Y / c, Z: n.Z / c}
	if !finite(unit.X) || !finite(unit.Y) || !finite(unit.Z) {
		return Vertex{}, ErrDegenerateGeometry
	}
	return unit, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Normal returns the unit normal of t.
func (t Triangle) Normal() (Vertex, error) {
	return Normal(t[0], t[1], t[2])
}

// Area returns the surface area of t.
func (t Triangle) Area() float64 {
	return r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))) / 2
}

// Reversed returns t with the opposite winding, keeping v0 first.
func (t Triangle) Reversed() Triangle {
	return Triangle{t[0], t[2], t[1]}
}
