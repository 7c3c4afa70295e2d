package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when a grid or its placement cannot be meshed.
var ErrInvalidGrid = errors.New("invalid grid")

// ErrInvalidOptions is returned when mesh options name an unknown policy.
var ErrInvalidOptions = errors.New("invalid mesh options")

// MeshError reports a failure while generating the mesh for a cell.
type MeshError struct {
	Op  string // Operation that failed
	Row int    // Cell row index
	Col int    // Cell column index
	Err error
}

func (e *MeshError) Error() string {
	return fmt.Sprintf("%s at cell (row %d, col %d): %v", e.Op, e.Row, e.Col, e.Err)
}

func (e *MeshError) Unwrap() error {
	return e.Err
}
