package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dtm2stl/internal/config"
	"github.com/Faultbox/dtm2stl/internal/logger"
	"github.com/Faultbox/dtm2stl/internal/terrain"
	"github.com/Faultbox/dtm2stl/pkg/formats"
	"github.com/Faultbox/dtm2stl/pkg/stl"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [terrain-file] [output.stl]",
		Short: "Write a terrain grid as an ASCII STL surface",
		Long: `Convert a terrain grid file to ASCII STL.

The output defaults to the input path with an .stl extension. When no
terrain file is given, you are prompted for one.`,
		Example: `  dtm2stl convert SU04.asc
  dtm2stl convert -d , heights.csv out/heights.stl
  dtm2stl convert --degenerate abort --orientation source tile.asc`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in string
			if len(args) > 0 {
				in = config.ExpandPath(args[0])
			} else {
				p, err := promptPath(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				in = p
			}

			out := outputPath(in)
			if len(args) > 1 {
				out = config.ExpandPath(args[1])
			}
			return a.convert(cmd.OutOrStdout(), in, out)
		},
	}
}

// outputCreated reports whether an ExportFile failure happened after the
// output file was created, leaving an incomplete file behind.
func outputCreated(err error) bool {
	return !errors.Is(err, stl.ErrCreate) &&
		!errors.Is(err, terrain.ErrInvalidGrid) &&
		!errors.Is(err, terrain.ErrInvalidOptions)
}

// outputPath returns in with its extension replaced by .stl.
func outputPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".stl"
}

func (a *app) convert(w io.Writer, in, out string) error {
	if filepath.Clean(in) == filepath.Clean(out) {
		return fmt.Errorf("output %s would overwrite the input file", out)
	}
	if !a.cfg.Output.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("output %s already exists", out)
		}
	}

	src, err := formats.ParseGridFile(in, a.cfg.Input.Delimiter)
	if err != nil {
		return err
	}
	grid, err := terrain.FromFile(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if n := src.CountNoData(); n > 0 {
		logger.Warn("grid has no-data samples; they are meshed as heights",
			zap.String("input", in),
			zap.Int("samples", n))
	}

	logger.Info("writing STL surface",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("rows", grid.Rows()),
		zap.Int("cols", grid.Cols()))

	res, err := terrain.ExportFile(out, grid, a.cfg.MeshOptions())
	if err != nil {
		if !outputCreated(err) {
			return fmt.Errorf("converting %s: %w", in, err)
		}
		if rmErr := os.Remove(out); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("failed to remove partial output", zap.String("output", out), zap.Error(rmErr))
		}
		return fmt.Errorf("converting %s: %w", in, err)
	}

	fmt.Fprintf(w, "Wrote %s: %s\n", out, res)
	return nil
}
