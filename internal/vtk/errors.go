package vtk

import "errors"

// ErrFormat indicates content that lacks usable DIMENSIONS or any SCALARS
// block.
var ErrFormat = errors.New("vtk: invalid or unsupported format")

const formatMessage = "Invalid or unsupported VTK format. Required: ASCII, STRUCTURED_POINTS, POINT_DATA with SCALARS."

// FormatError is returned by Parse when the content cannot form a Grid.
// Its message is user facing; Reason carries the specific cause.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return formatMessage
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
