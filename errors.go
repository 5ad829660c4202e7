package dymaxion

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfProjectionBounds = errors.New("out of projection bounds")
	ErrMalformedGrid         = errors.New("malformed conformal grid table")
)

// Returned whenever a geographic or planar coordinate has no image under a projection.
// The same input always fails the same way.
type OutOfProjectionBoundsError struct {
	X      float64
	Y      float64
	Reason string
}

func NewOutOfProjectionBoundsError(x float64, y float64, reason string) *OutOfProjectionBoundsError {
	return &OutOfProjectionBoundsError{
		X:      x,
		Y:      y,
		Reason: reason,
	}
}

func (o OutOfProjectionBoundsError) Error() string {
	return fmt.Sprintf("(%g, %g) out of projection bounds: %s", o.X, o.Y, o.Reason)
}

func (o OutOfProjectionBoundsError) Is(target error) bool {
	return target == ErrOutOfProjectionBounds
}

type ProjectionNotFoundError struct {
	Projection string
}

func NewProjectionNotFoundError(name string) *ProjectionNotFoundError {
	return &ProjectionNotFoundError{Projection: name}
}

func (p ProjectionNotFoundError) Error() string {
	return fmt.Sprintf("projection '%s' not found", p.Projection)
}

type LocationNotSupportedError struct {
	Indexer  string
	Location Location
}

func NewLocationNotSupportedError(indexer string, location Location) *LocationNotSupportedError {
	return &LocationNotSupportedError{
		Indexer:  indexer,
		Location: location,
	}
}

func (l LocationNotSupportedError) Error() string {
	return fmt.Sprintf("location %v not supported by indexer %s", l.Location, l.Indexer)
}
