package terrain

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/dtm2stl/internal/logger"
	"github.com/Faultbox/dtm2stl/pkg/stl"
)

// ExportFile writes g to path as an ASCII STL solid named after the file.
//
// The grid is validated before the file is created. Once created, the file
// is always closed, and the endsolid footer is written even when
// generation fails part way. A partially written file is left for the
// caller to remove. Errors wrapping ErrInvalidGrid, ErrInvalidOptions or
// stl.ErrCreate mean path was not touched.
func ExportFile(path string, g *Grid, opts Options) (res Result, err error) {
	if err := g.Validate(); err != nil {
		return res, err
	}
	if _, err := ParseOrientation(string(opts.Orientation)); err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if _, err := ParseDegeneratePolicy(string(opts.Degenerate)); err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	var wopts []stl.Option
	if opts.Precision > 0 {
		wopts = append(wopts, stl.WithPrecision(opts.Precision))
	}

	fw, err := stl.CreateFile(path, stl.SolidName(path), wopts...)
	if err != nil {
		return res, err
	}
	defer func() {
		err = errors.Join(err, fw.Close())
	}()

	start := time.Now()
	logger.Debug("writing STL",
		zap.String("path", path),
		zap.String("solid", fw.Name()),
		zap.Int("rows", g.Rows()),
		zap.Int("cols", g.Cols()))

	if err := fw.Begin(); err != nil {
		return res, err
	}
	if res, err = g.Generate(fw, opts); err != nil {
		return res, err
	}
	if err := fw.End(); err != nil {
		return res, err
	}

	logger.Info("STL written",
		zap.String("path", path),
		zap.Int("facets", res.Facets),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}
