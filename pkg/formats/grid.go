// Package formats provides parsers for terrain grid files.
package formats

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Grid format errors.
var (
	ErrEmptyGridFile   = errors.New("grid file is empty")
	ErrInvalidGridFile = errors.New("invalid grid file")
	ErrInvalidDelim    = errors.New("delimiter must be a single character")
)

// Well-known metadata keys (ESRI ASCII grid / Ordnance Survey style).
const (
	KeyNCols     = "ncols"
	KeyNRows     = "nrows"
	KeyXLLCorner = "xllcorner"
	KeyYLLCorner = "yllcorner"
	KeyCellSize  = "cellsize"
	KeyNoData    = "nodata_value"
)

// maxLineSize bounds a single data row; national grid tiles can have
// thousands of columns per row.
const maxLineSize = 64 << 20

// Grid is a parsed terrain grid file.
type Grid struct {
	// Metadata holds header key/value pairs. Keys are lower case.
	Metadata map[string]float64
	// Heights holds the samples row by row, first row first.
	Heights [][]float64
}

// Meta returns the metadata value for key (case-insensitive).
func (g *Grid) Meta(key string) (float64, bool) {
	v, ok := g.Metadata[strings.ToLower(key)]
	return v, ok
}

// Rows returns the number of data rows.
func (g *Grid) Rows() int {
	return len(g.Heights)
}

// Cols returns the number of samples in the first row.
func (g *Grid) Cols() int {
	if len(g.Heights) == 0 {
		return 0
	}
	return len(g.Heights[0])
}

// NoData returns the no-data marker if the file declares one.
func (g *Grid) NoData() (float64, bool) {
	return g.Meta(KeyNoData)
}

// HeightRange returns the minimum and maximum sample, ignoring no-data
// samples. ok is false if there are no valid samples.
func (g *Grid) HeightRange() (min, max float64, ok bool) {
	noData, hasNoData := g.NoData()
	for _, row := range g.Heights {
		for _, h := range row {
			if hasNoData && h == noData {
				continue
			}
			if !ok {
				min, max, ok = h, h, true
				continue
			}
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
	}
	return min, max, ok
}

// CountNoData returns the number of samples equal to the no-data marker.
func (g *Grid) CountNoData() int {
	noData, ok := g.NoData()
	if !ok {
		return 0
	}
	n := 0
	for _, row := range g.Heights {
		for _, h := range row {
			if h == noData {
				n++
			}
		}
	}
	return n
}

// ParseGrid parses a grid file from raw bytes.
// An empty delim splits fields on runs of whitespace.
func ParseGrid(data []byte, delim string) (*Grid, error) {
	return ReadGrid(bytes.NewReader(data), delim)
}

// ParseGridFile parses a grid file from disk.
func ParseGridFile(path, delim string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid file: %w", err)
	}
	defer f.Close()

	g, err := ReadGrid(f, delim)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}

// ReadGrid parses a grid file from r.
//
// The file starts with metadata rows of the form "key<delim>value". The
// header ends at the first row whose first field is numeric; every row
// after that is a row of height samples.
func ReadGrid(r io.Reader, delim string) (*Grid, error) {
	p := &gridParser{
		grid: &Grid{Metadata: make(map[string]float64)},
	}

	var err error
	if delim == "" || strings.TrimSpace(delim) == "" {
		err = p.readFields(r)
	} else {
		err = p.readDelimited(r, delim)
	}
	if err != nil {
		return nil, err
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p.grid, nil
}

type gridParser struct {
	grid     *Grid
	rows     int
	dataSeen bool
}

// readFields reads whitespace separated rows.
func (p *gridParser) readFields(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		if err := p.row(line, strings.Fields(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidGridFile, line+1, err)
	}
	return nil
}

// readDelimited reads rows separated by a single delimiter character.
func (p *gridParser) readDelimited(r io.Reader, delim string) error {
	comma, size := utf8.DecodeRuneInString(delim)
	if size != len(delim) || comma == utf8.RuneError {
		return fmt.Errorf("%w: %q", ErrInvalidDelim, delim)
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGridFile, err)
		}
		line, _ := cr.FieldPos(0)

		fields := make([]string, 0, len(record))
		for _, f := range record {
			fields = append(fields, strings.TrimSpace(f))
		}
		// Trailing delimiters leave empty fields at the end of a row.
		for len(fields) > 0 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		if err := p.row(line, fields); err != nil {
			return err
		}
	}
}

// row consumes one row of fields.
func (p *gridParser) row(line int, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	p.rows++

	if !p.dataSeen {
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			return p.header(line, fields)
		}
		p.dataSeen = true
	}

	heights := make([]float64, len(fields))
	for i, f := range fields {
		h, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("%w: line %d, column %d: %q is not a number",
				ErrInvalidGridFile, line, i+1, f)
		}
		heights[i] = h
	}
	p.grid.Heights = append(p.grid.Heights, heights)
	return nil
}

// header consumes one metadata row.
func (p *gridParser) header(line int, fields []string) error {
	key := strings.ToLower(fields[0])
	if len(fields) < 2 {
		return fmt.Errorf("%w: line %d: metadata %q has no value", ErrInvalidGridFile, line, key)
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("%w: line %d: metadata %q: %q is not a number",
			ErrInvalidGridFile, line, key, fields[1])
	}
	p.grid.Metadata[key] = v
	return nil
}

func (p *gridParser) validate() error {
	g := p.grid
	if p.rows == 0 {
		return ErrEmptyGridFile
	}

	cols := g.Cols()
	for i, row := range g.Heights {
		if len(row) != cols {
			return fmt.Errorf("%w: data row %d has %d samples, expected %d",
				ErrInvalidGridFile, i+1, len(row), cols)
		}
	}

	if n, ok := g.Meta(KeyNCols); ok && int(n) != cols {
		return fmt.Errorf("%w: ncols is %v but rows have %d samples", ErrInvalidGridFile, n, cols)
	}
	if n, ok := g.Meta(KeyNRows); ok && int(n) != len(g.Heights) {
		return fmt.Errorf("%w: nrows is %v but file has %d data rows", ErrInvalidGridFile, n, len(g.Heights))
	}
	return nil
}
