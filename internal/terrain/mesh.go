package terrain

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dtm2stl/internal/logger"
	"github.com/Faultbox/dtm2stl/pkg/geometry"
	"github.com/Faultbox/dtm2stl/pkg/stl"
)

// FacetSink receives facets in generation order.
// *stl.Writer implements it.
type FacetSink interface {
	WriteFacet(f stl.Facet) error
}

// corner is a (column, row) sample index.
type corner struct {
	i, j int
}

// Generate triangulates heights and writes one facet per triangle to sink.
//
// Cells are visited row by row. Each cell (i, j) is split along the
// diagonal (i, j)-(i+1, j+1) into triangle A with corners (i, j),
// (i+1, j+1), (i, j+1) followed by triangle B with corners (i, j),
// (i+1, j), (i+1, j+1).
//
// The grid is validated before anything is written. Write failures abort
// generation with a *MeshError.
func Generate(heights [][]float64, cellSize float64, origin Origin, sink FacetSink, opts Options) (Result, error) {
	g := &Grid{Heights: heights, CellSize: cellSize, Origin: origin}
	return g.Generate(sink, opts)
}

// Generate triangulates g into sink. See the package-level Generate.
func (g *Grid) Generate(sink FacetSink, opts Options) (Result, error) {
	var res Result

	orient, err := ParseOrientation(string(opts.Orientation))
	if err != nil {
		return res, err
	}
	policy, err := ParseDegeneratePolicy(string(opts.Degenerate))
	if err != nil {
		return res, err
	}
	if err := g.Validate(); err != nil {
		return res, err
	}

	rows, cols := g.Rows(), g.Cols()
	for j := 0; j < rows-1; j++ {
		for i := 0; i < cols-1; i++ {
			tris := [2][3]corner{
				{{i, j}, {i + 1, j + 1}, {i, j + 1}}, // A
				{{i, j}, {i + 1, j}, {i + 1, j + 1}}, // B
			}
			for k, c := range tris {
				tri := geometry.Triangle{g.Vertex(c[0].i, c[0].j), g.Vertex(c[1].i, c[1].j), g.Vertex(c[2].i, c[2].j)}
				if orient == OrientUp {
					tri = tri.Reversed()
				}

				n, err := tri.Normal()
				if errors.Is(err, geometry.ErrDegenerateGeometry) && policy == DegenerateSkip {
					res.Skipped++
					logger.Debug("skipping degenerate triangle",
						zap.Int("row", j),
						zap.Int("col", i),
						zap.Int("triangle", k))
					continue
				}
				if err != nil {
					return res, &MeshError{Op: "computing normal", Row: j, Col: i, Err: err}
				}

				if err := sink.WriteFacet(stl.Facet{Normal: n, Vertices: tri}); err != nil {
					return res, &MeshError{Op: "writing facet", Row: j, Col: i, Err: err}
				}
				res.Facets++
				res.SurfaceArea += tri.Area()
			}
		}
	}

	if res.Skipped > 0 {
		logger.Warn("degenerate triangles skipped", zap.Int("skipped", res.Skipped))
	}
	return res, nil
}

// String returns a short summary of r.
func (r Result) String() string {
	return fmt.Sprintf("%d facets (%d skipped), surface area %g", r.Facets, r.Skipped, r.SurfaceArea)
}
