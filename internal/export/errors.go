package export

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrGridTooSmall  = errors.New("grid too small to plot")
)

type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown export format %q", e.Format)
}

func (e *FormatError) Unwrap() error {
	return ErrUnknownFormat
}
