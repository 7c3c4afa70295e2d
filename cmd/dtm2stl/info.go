package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Faultbox/dtm2stl/internal/config"
	"github.com/Faultbox/dtm2stl/internal/terrain"
	"github.com/Faultbox/dtm2stl/pkg/formats"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "info <terrain-file>",
		Short:   "Show grid dimensions, placement and expected facet count",
		Example: "  dtm2stl info SU04.asc",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.info(cmd.OutOrStdout(), config.ExpandPath(args[0]))
		},
	}
}

func (a *app) info(w io.Writer, path string) error {
	src, err := formats.ParseGridFile(path, a.cfg.Input.Delimiter)
	if err != nil {
		return err
	}
	grid, err := terrain.FromFile(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	b := grid.Bounds()
	fmt.Fprintf(w, "File:      %s\n", path)
	fmt.Fprintf(w, "Grid:      %d rows x %d cols\n", grid.Rows(), grid.Cols())
	fmt.Fprintf(w, "Cell size: %g\n", grid.CellSize)
	fmt.Fprintf(w, "Origin:    %g, %g\n", grid.Origin.X, grid.Origin.Y)
	if grid.Rows() > 0 && grid.Cols() > 0 {
		fmt.Fprintf(w, "Extent:    x %g..%g, y %g..%g\n",
			round(b.Min.X), round(b.Max.X), round(b.Min.Y), round(b.Max.Y))
	}
	if min, max, ok := src.HeightRange(); ok {
		fmt.Fprintf(w, "Heights:   %g..%g\n", round(min), round(max))
	}
	if n := src.CountNoData(); n > 0 {
		fmt.Fprintf(w, "No-data:   %d samples\n", n)
	}
	fmt.Fprintf(w, "Facets:    %d\n", grid.FacetCount())
	return nil
}

func round(v float64) float64 {
	return scalar.Round(v, 3)
}
