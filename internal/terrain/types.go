// Package terrain builds triangulated surface meshes from elevation grids.
package terrain

import (
	"fmt"

	"github.com/Faultbox/dtm2stl/pkg/geometry"
)

// Origin is the world position of the grid's lower-left sample.
type Origin struct {
	X, Y float64
}

// Grid is a regular grid of height samples with its world placement.
// Heights is row-major; the first row is the northernmost (highest y).
type Grid struct {
	Heights  [][]float64
	CellSize float64
	Origin   Origin
}

// Orientation selects the vertex order of emitted triangles.
type Orientation string

const (
	// OrientUp orders vertices counter-clockwise seen from above, so
	// facet normals point towards +z.
	OrientUp Orientation = "up"
	// OrientSource keeps the corner order of the triangulation as listed
	// (clockwise seen from above, normals towards -z).
	OrientSource Orientation = "source"
)

// ParseOrientation parses an orientation name. Empty means OrientUp.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", OrientUp:
		return OrientUp, nil
	case OrientSource:
		return OrientSource, nil
	default:
		return "", fmt.Errorf("unknown orientation %q (want %q or %q)", s, OrientUp, OrientSource)
	}
}

// DegeneratePolicy selects what happens to triangles without a normal.
type DegeneratePolicy string

const (
	// DegenerateSkip drops the triangle and continues.
	DegenerateSkip DegeneratePolicy = "skip"
	// DegenerateAbort stops generation with a MeshError.
	DegenerateAbort DegeneratePolicy = "abort"
)

// ParseDegeneratePolicy parses a policy name. Empty means DegenerateSkip.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch DegeneratePolicy(s) {
	case "", DegenerateSkip:
		return DegenerateSkip, nil
	case DegenerateAbort:
		return DegenerateAbort, nil
	default:
		return "", fmt.Errorf("unknown degenerate policy %q (want %q or %q)", s, DegenerateSkip, DegenerateAbort)
	}
}

// Options controls mesh generation.
type Options struct {
	Orientation Orientation
	Degenerate  DegeneratePolicy
	// Precision is the STL mantissa precision used by ExportFile.
	// Zero or negative selects the writer default.
	Precision int
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Orientation: OrientUp,
		Degenerate:  DegenerateSkip,
	}
}

// Result summarizes a generation run.
type Result struct {
	Facets      int     // Triangles written
	Skipped     int     // Degenerate triangles dropped
	SurfaceArea float64 // Sum of written triangle areas
}

// Bounds holds the axis-aligned bounding box of the surface.
type Bounds struct {
	Min geometry.Vertex
	Max geometry.Vertex
}
