package terrain

import (
	"fmt"
	"math"

	"github.com/Faultbox/dtm2stl/pkg/formats"
	"github.com/Faultbox/dtm2stl/pkg/geometry"
)

// FromFile builds a Grid from a parsed grid file. The file must declare
// cellsize, xllcorner and yllcorner.
func FromFile(f *formats.Grid) (*Grid, error) {
	var missing []string
	get := func(key string) float64 {
		v, ok := f.Meta(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	}

	g := &Grid{
		Heights:  f.Heights,
		CellSize: get(formats.KeyCellSize),
		Origin: Origin{
			X: get(formats.KeyXLLCorner),
			Y: get(formats.KeyYLLCorner),
		},
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing metadata %v", ErrInvalidGrid, missing)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Rows returns the number of sample rows.
func (g *Grid) Rows() int {
	return len(g.Heights)
}

// Cols returns the number of sample columns.
func (g *Grid) Cols() int {
	if len(g.Heights) == 0 {
		return 0
	}
	return len(g.Heights[0])
}

// FacetCount returns the number of triangles the grid produces when none
// are degenerate.
func (g *Grid) FacetCount() int {
	rows, cols := g.Rows(), g.Cols()
	if rows < 2 || cols < 2 {
		return 0
	}
	return 2 * (rows - 1) * (cols - 1)
}

// Validate checks that the grid can be meshed. Grids with fewer than two
// rows or columns are valid and produce no triangles.
func (g *Grid) Validate() error {
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("%w: cell size must be positive and finite, got %v", ErrInvalidGrid, g.CellSize)
	}
	if !finite(g.Origin.X) || !finite(g.Origin.Y) {
		return fmt.Errorf("%w: origin (%v, %v) is not finite", ErrInvalidGrid, g.Origin.X, g.Origin.Y)
	}

	cols := g.Cols()
	for j, row := range g.Heights {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d samples, expected %d", ErrInvalidGrid, j, len(row), cols)
		}
		for i, h := range row {
			if !finite(h) {
				return fmt.Errorf("%w: sample (row %d, col %d) is %v", ErrInvalidGrid, j, i, h)
			}
		}
	}
	return nil
}

// Vertex returns the world position of the sample at column i, row j.
// Rows are stored top to bottom, so world y decreases as j grows.
func (g *Grid) Vertex(i, j int) geometry.Vertex {
	yMax := g.Rows() - 1
	return geometry.Vertex{
		X: float64(i)*g.CellSize + g.Origin.X,
		Y: float64(yMax-j)*g.CellSize + g.Origin.Y,
		Z: g.Heights[j][i],
	}
}

// Bounds returns the bounding box of all sample positions.
// The zero Bounds is returned for an empty grid.
func (g *Grid) Bounds() Bounds {
	rows, cols := g.Rows(), g.Cols()
	if rows == 0 || cols == 0 {
		return Bounds{}
	}

	b := Bounds{
		Min: geometry.Vertex{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: geometry.Vertex{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			updateBounds(&b, g.Vertex(i, j))
		}
	}
	return b
}

func updateBounds(b *Bounds, v geometry.Vertex) {
	b.Min.X = math.Min(b.Min.X, v.X)
	b.Min.Y = math.Min(b.Min.Y, v.Y)
	b.Min.Z = math.Min(b.Min.Z, v.Z)
	b.Max.X = math.Max(b.Max.X, v.X)
	b.Max.Y = math.Max(b.Max.Y, v.Y)
	b.Max.Z = math.Max(b.Max.Z, v.Z)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
