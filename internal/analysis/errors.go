package analysis

import (
	"errors"
	"fmt"

	"github.com/san-kum/vtkview/internal/colormap"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidRange    = errors.New("invalid range")
	ErrNoBins          = errors.New("histogram needs at least one bin")
	ErrProfileTooLong  = errors.New("profile too long")
)

type IndexError struct {
	Axis  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d out of range [0, %d)", e.Axis, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

type RangeError struct {
	Range colormap.Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("histogram range [%g, %g]: min must be less than max", e.Range.Min, e.Range.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}
