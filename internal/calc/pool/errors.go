package pool

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingDimension = errors.New("missing dimension")
	ErrUnknownShape     = errors.New("unknown pool shape")
	ErrUnknownMaterial  = errors.New("unknown material")
	ErrOutOfRange       = errors.New("dimension out of range")
)

// Upper bounds for accepted input. Anything larger is not a pool and would
// overflow the coil count.
const (
	MaxDimensionM = 1000.0
	MaxAreaM2     = 1e6
)

// MissingDimensionError lists every required field that was absent,
// unparseable or not positive.
type MissingDimensionError struct {
	Fields []string
}

func (e *MissingDimensionError) Error() string {
	return fmt.Sprintf("missing dimension: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingDimensionError) Is(target error) bool {
	return target == ErrMissingDimension
}

// OutOfRangeError lists fields above MaxDimensionM, or overrides above MaxAreaM2.
type OutOfRangeError struct {
	Fields []string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("dimension out of range: %s", strings.Join(e.Fields, ", "))
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

type dimensionCheck struct {
	missing  []string
	tooLarge []string
}

func (c *dimensionCheck) positive(field string, v float64) {
	switch {
	case !(v > 0) || math.IsInf(v, 0):
		c.missing = append(c.missing, field)
	case v > MaxDimensionM:
		c.tooLarge = append(c.tooLarge, field)
	}
}

func (c *dimensionCheck) nonNegative(field string, v *float64) {
	if v == nil {
		return
	}
	switch {
	case !(*v >= 0) || math.IsInf(*v, 0):
		c.missing = append(c.missing, field)
	case *v > MaxAreaM2:
		c.tooLarge = append(c.tooLarge, field)
	}
}

func (c *dimensionCheck) add(field string) {
	c.missing = append(c.missing, field)
}

// err reports missing fields first; range errors only surface once every
// field is present.
func (c *dimensionCheck) err() error {
	if len(c.missing) > 0 {
		return &MissingDimensionError{Fields: c.missing}
	}
	if len(c.tooLarge) > 0 {
		return &OutOfRangeError{Fields: c.tooLarge}
	}
	return nil
}

func validateInput(shape Shape, feature *Feature, override *Override) error {
	var c dimensionCheck
	switch s := shape.(type) {
	case Rectangular:
		c.positive("length", s.Length)
		c.positive("width", s.Width)
		c.positive("depth", s.Depth)
	case Circular:
		c.positive("diameter", s.Diameter)
		c.positive("depth", s.Depth)
	case IrregularQuadrilateral:
		c.positive("side_a", s.SideA)
		c.positive("side_b", s.SideB)
		c.positive("side_c", s.SideC)
		c.positive("side_d", s.SideD)
		c.positive("depth", s.Depth)
	case nil:
		return ErrUnknownShape
	default:
		return fmt.Errorf("%w: %T", ErrUnknownShape, shape)
	}
	if feature != nil {
		c.positive("beach.length", feature.Length)
		c.positive("beach.width", feature.Width)
		c.positive("beach.depth", feature.Depth)
	}
	if override != nil {
		c.nonNegative("floor_override", override.Floor)
		c.nonNegative("wall_override", override.Wall)
	}
	return c.err()
}

// InvalidFields returns the field names carried by a MissingDimensionError
// or an OutOfRangeError, or nil.
func InvalidFields(err error) []string {
	var missing *MissingDimensionError
	if errors.As(err, &missing) {
		return missing.Fields
	}
	var tooLarge *OutOfRangeError
	if errors.As(err, &tooLarge) {
		return tooLarge.Fields
	}
	return nil
}
