package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/vtkview/internal/colormap"
)

var (
	// ErrFieldNotFound indicates the requested scalar field is not in the grid.
	ErrFieldNotFound = errors.New("render: scalar field not found")

	// ErrInvalidRange indicates a manual range with min >= max or
	// non-finite bounds.
	ErrInvalidRange = errors.New("render: invalid range")

	// ErrGridTooLarge indicates a slice with more than MaxCells cells.
	ErrGridTooLarge = errors.New("render: grid too large")
)

// FieldNotFoundError names the missing field.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("scalar field %q not found", e.Field)
}

func (e *FieldNotFoundError) Unwrap() error {
	return ErrFieldNotFound
}

// RangeError carries the rejected range.
type RangeError struct {
	Range colormap.Range
}

func (e *RangeError) Error() string {
	return "Invalid range values. Min must be less than Max."
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// SizeError carries the rejected slice dimensions.
type SizeError struct {
	NX, NY int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("grid %dx%d exceeds %d cells", e.NX, e.NY, MaxCells)
}

func (e *SizeError) Unwrap() error {
	return ErrGridTooLarge
}
