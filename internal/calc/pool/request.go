package pool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dimension is a form value in meters. It decodes from a JSON number or
// string; strings may use a decimal comma ("2,5").
type Dimension string

func (d *Dimension) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Dimension(s)
		return nil
	}
	*d = Dimension(data)
	return nil
}

// Float parses the dimension. ok is false when it is empty or not a number.
func (d Dimension) Float() (v float64, ok bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (d Dimension) IsSet() bool {
	return strings.TrimSpace(string(d)) != ""
}

type BeachRequest struct {
	Enabled bool      `json:"enabled"`
	Length  Dimension `json:"length,omitempty"`
	Width   Dimension `json:"width,omitempty"`
	Depth   Dimension `json:"depth,omitempty"`
}

// Request is the calculator form as submitted by a client. Only the fields of
// the selected shape are read.
type Request struct {
	Shape         string        `json:"shape"`
	Length        Dimension     `json:"length,omitempty"`
	Width         Dimension     `json:"width,omitempty"`
	Depth         Dimension     `json:"depth,omitempty"`
	Diameter      Dimension     `json:"diameter,omitempty"`
	SideA         Dimension     `json:"side_a,omitempty"`
	SideB         Dimension     `json:"side_b,omitempty"`
	SideC         Dimension     `json:"side_c,omitempty"`
	SideD         Dimension     `json:"side_d,omitempty"`
	Beach         *BeachRequest `json:"beach,omitempty"`
	FloorOverride Dimension     `json:"floor_override,omitempty"`
	WallOverride  Dimension     `json:"wall_override,omitempty"`
	Material      string        `json:"material,omitempty"`
	Supplier      string        `json:"supplier,omitempty" validate:"max=100"`
}

// Input is a Request after parsing.
type Input struct {
	Shape    Shape
	Feature  *Feature
	Override *Override
	Material Material
}

func ParseShapeType(s string) (ShapeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangular", "retangular":
		return ShapeRectangular, nil
	case "circular", "round":
		return ShapeCircular, nil
	case "irregular_quadrilateral", "irregular", "fora_esquadro":
		return ShapeIrregular, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// ParseMaterial accepts the English names and the Portuguese ones used by
// older clients. Empty means vinyl.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vinyl", "vinil":
		return MaterialVinyl, nil
	case "tile", "pastilha":
		return MaterialTile, nil
	case "tarp", "lona":
		return MaterialTarp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
}

// Parse converts the form into typed input. Every absent, unparseable or
// non-positive field is collected into a single MissingDimensionError.
func (r Request) Parse() (Input, error) {
	shapeType, err := ParseShapeType(r.Shape)
	if err != nil {
		return Input{}, err
	}
	material, err := ParseMaterial(r.Material)
	if err != nil {
		return Input{}, err
	}

	var c dimensionCheck
	in := Input{Material: material}

	switch shapeType {
	case ShapeRectangular:
		in.Shape = Rectangular{
			Length: c.require("length", r.Length),
			Width:  c.require("width", r.Width),
			Depth:  c.require("depth", r.Depth),
		}
	case ShapeCircular:
		diameter := r.Diameter
		// older forms sent the diameter in the length input
		if !diameter.IsSet() {
			diameter = r.Length
		}
		in.Shape = Circular{
			Diameter: c.require("diameter", diameter),
			Depth:    c.require("depth", r.Depth),
		}
	case ShapeIrregular:
		in.Shape = IrregularQuadrilateral{
			SideA: c.require("side_a", r.SideA),
			SideB: c.require("side_b", r.SideB),
			SideC: c.require("side_c", r.SideC),
			SideD: c.require("side_d", r.SideD),
			Depth: c.require("depth", r.Depth),
		}
	}

	if r.Beach != nil && r.Beach.Enabled {
		in.Feature = &Feature{
			Length: c.require("beach.length", r.Beach.Length),
			Width:  c.require("beach.width", r.Beach.Width),
			Depth:  c.require("beach.depth", r.Beach.Depth),
		}
	}

	floor := c.optional("floor_override", r.FloorOverride)
	wall := c.optional("wall_override", r.WallOverride)
	if floor != nil || wall != nil {
		in.Override = &Override{Floor: floor, Wall: wall}
	}

	if err := c.err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Calculate parses the form and runs the calculator.
func (r Request) Calculate() (Result, error) {
	in, err := r.Parse()
	if err != nil {
		return Result{}, err
	}
	return Calculate(in.Shape, in.Feature, in.Override, in.Material)
}

func (c *dimensionCheck) require(field string, d Dimension) float64 {
	v, ok := d.Float()
	if !ok {
		c.add(field)
		return 0
	}
	c.positive(field, v)
	return v
}

func (c *dimensionCheck) optional(field string, d Dimension) *float64 {
	if !d.IsSet() {
		return nil
	}
	v, ok := d.Float()
	if !ok {
		c.add(field)
		return nil
	}
	c.nonNegative(field, &v)
	return &v
}
