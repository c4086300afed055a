package graphlayout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShape  = errors.New("invalid matrix shape")
	ErrInvalidConfig = errors.New("invalid layout config")
)

// InvalidShapeError reports a matrix whose dimensions the engine cannot use.
// It matches ErrInvalidShape with errors.Is.
type InvalidShapeError struct {
	// what was being validated, e.g. "adjacency" or "initial positions"
	Name string
	Rows int
	Cols int
	// human readable expectation, e.g. "square" or "3x2"
	Want string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("%s matrix is %dx%d, want %s", e.Name, e.Rows, e.Cols, e.Want)
}

func (e *InvalidShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}

func shape(rows, cols int) string {
	return fmt.Sprintf("%dx%d", rows, cols)
}
