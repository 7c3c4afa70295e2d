package terrain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dtm2stl/pkg/geometry"
	"github.com/Faultbox/dtm2stl/pkg/stl"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), prefix) {
			n++
		}
	}
	return n
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hill.stl")
	g := &Grid{Heights: zeros(2, 2), CellSize: 1}

	res, err := ExportFile(path, g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Facets)

	want := `solid hill
    facet normal 0E0 0E0 1E0
        outer loop
            vertex 0E0 1E0 0E0
            vertex 0E0 0E0 0E0
            vertex 1E0 0E0 0E0
        endloop
    endfacet
    facet normal 0E0 0E0 1E0
        outer loop
            vertex 0E0 1E0 0E0
            vertex 1E0 0E0 0E0
            vertex 1E0 1E0 0E0
        endloop
    endfacet
endsolid hill
`
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestExportFile_FacetRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.stl")
	heights := [][]float64{
		{10, 12.5, 15, 11},
		{9, 11, 14, 13},
		{8, 9.25, 10, 12},
	}
	g := &Grid{Heights: heights, CellSize: 50, Origin: Origin{X: 437000, Y: 115000}}

	res, err := ExportFile(path, g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 12, res.Facets)

	lines := readLines(t, path)
	assert.Equal(t, "solid tile", lines[0])
	assert.Equal(t, "endsolid tile", lines[len(lines)-1])
	assert.Len(t, lines, 2+12*7)
	assert.Equal(t, 12, countPrefix(lines, "facet normal"))
	assert.Equal(t, 36, countPrefix(lines, "vertex"))

	// First vertex of the first facet is the top-left sample.
	assert.Equal(t, "            vertex 4.37E5 1.151E5 1E1", lines[3])
}

func TestExportFile_SingleRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.stl")
	g := &Grid{Heights: [][]float64{{1, 2, 3, 4, 5}}, CellSize: 1}

	res, err := ExportFile(path, g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Facets)
	assert.Equal(t, []string{"solid strip", "endsolid strip"}, readLines(t, path))
}

func TestExportFile_InvalidGridCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.stl")
	g := &Grid{Heights: zeros(2, 2), CellSize: -5}

	_, err := ExportFile(path, g, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "output file should not exist")
}

func TestExportFile_AbortKeepsFraming(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.stl")
	g := &Grid{Heights: zeros(3, 3), CellSize: 1e-200}
	opts := DefaultOptions()
	opts.Degenerate = DegenerateAbort

	_, err := ExportFile(path, g, opts)
	assert.ErrorIs(t, err, geometry.ErrDegenerateGeometry)

	assert.Equal(t, []string{"solid tiny", "endsolid tiny"}, readLines(t, path))
}

func TestExportFile_Precision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coarse.stl")
	g := &Grid{Heights: [][]float64{{1.23456789, 0}, {0, 0}}, CellSize: 1}

	opts := DefaultOptions()
	opts.Precision = 2
	_, err := ExportFile(path, g, opts)
	require.NoError(t, err)

	lines := readLines(t, path)
	assert.Equal(t, "            vertex 0E0 1E0 1.23E0", lines[3])
}

func TestExportFile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.stl")
	_, err := ExportFile(path, &Grid{Heights: zeros(2, 2), CellSize: 1}, DefaultOptions())
	assert.ErrorIs(t, err, stl.ErrCreate)
}

func TestExportFile_InvalidOptionsCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.stl")
	opts := DefaultOptions()
	opts.Orientation = "sideways"

	_, err := ExportFile(path, &Grid{Heights: zeros(2, 2), CellSize: 1}, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.NoFileExists(t, path)
}
