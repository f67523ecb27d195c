package pool

import (
	"math"
)

// Standard liner coil: 1.40m x 50m.
const (
	CoilWidthM  = 1.4
	CoilLengthM = 50.0
	CoilAreaM2  = CoilWidthM * CoilLengthM
)

type ShapeType string

const (
	ShapeRectangular ShapeType = "rectangular"
	ShapeCircular    ShapeType = "circular"
	ShapeIrregular   ShapeType = "irregular_quadrilateral"
)

type Material string

const (
	MaterialVinyl Material = "vinyl"
	MaterialTile  Material = "tile"
	MaterialTarp  Material = "tarp"
)

// RollBased reports whether the material is bought in coils.
func (m Material) RollBased() bool {
	return m == MaterialVinyl || m == MaterialTarp
}

// Shape is one of Rectangular, Circular or IrregularQuadrilateral.
type Shape interface {
	Type() ShapeType
	areas() (floor, wall float64)
}

type Rectangular struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

type Circular struct {
	Diameter float64 `json:"diameter"`
	Depth    float64 `json:"depth"`
}

// IrregularQuadrilateral is an out-of-square pool given by its four sides.
// The floor uses Brahmagupta's cyclic-quadrilateral formula, which is only
// exact when the corners lie on a circle; other quadrilaterals are approximated.
type IrregularQuadrilateral struct {
	SideA float64 `json:"side_a"`
	SideB float64 `json:"side_b"`
	SideC float64 `json:"side_c"`
	SideD float64 `json:"side_d"`
	Depth float64 `json:"depth"`
}

func (Rectangular) Type() ShapeType            { return ShapeRectangular }
func (Circular) Type() ShapeType               { return ShapeCircular }
func (IrregularQuadrilateral) Type() ShapeType { return ShapeIrregular }

func (r Rectangular) areas() (float64, float64) {
	floor := r.Length * r.Width
	wall := 2*(r.Length*r.Depth) + 2*(r.Width*r.Depth)
	return floor, wall
}

func (c Circular) areas() (float64, float64) {
	radius := c.Diameter / 2
	floor := math.Pi * radius * radius
	wall := 2 * math.Pi * radius * c.Depth
	return floor, wall
}

func (q IrregularQuadrilateral) areas() (float64, float64) {
	perimeter := q.SideA + q.SideB + q.SideC + q.SideD
	s := perimeter / 2
	product := (s - q.SideA) * (s - q.SideB) * (s - q.SideC) * (s - q.SideD)
	// a side longer than the other three together has no closed outline
	if product < 0 {
		product = 0
	}
	return math.Sqrt(product), perimeter * q.Depth
}

// Feature is a beach or spa extension attached to the pool.
type Feature struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

// Override holds user-entered areas that replace the computed ones.
type Override struct {
	Floor *float64 `json:"floor,omitempty"`
	Wall  *float64 `json:"wall,omitempty"`
}

type Area struct {
	FloorArea float64 `json:"floor_area"`
	WallArea  float64 `json:"wall_area"`
	TotalArea float64 `json:"total_area"`
}

type MaterialUsage struct {
	CoilsRequired int     `json:"coils_required"`
	WasteAreaM2   float64 `json:"waste_area_m2"`
	WastePercent  float64 `json:"waste_percent"`
}

type Result struct {
	Area
	MaterialUsage
}

// ComputeArea runs base shape -> feature -> override -> total, in that order.
// Total is always floor + wall and cannot be overridden.
func ComputeArea(shape Shape, feature *Feature, override *Override) (Area, error) {
	if err := validateInput(shape, feature, override); err != nil {
		return Area{}, err
	}

	floor, wall := shape.areas()

	if feature != nil {
		f, w := Rectangular(*feature).areas()
		floor += f
		wall += w
	}

	if override != nil {
		if override.Floor != nil {
			floor = *override.Floor
		}
		if override.Wall != nil {
			wall = *override.Wall
		}
	}

	return Area{
		FloorArea: floor,
		WallArea:  wall,
		TotalArea: floor + wall,
	}, nil
}

// ComputeMaterial returns coil count and waste for roll-based materials.
// Tile is laid piece by piece and always yields zeros, as does a total that
// is not a finite area a coil count can hold.
func ComputeMaterial(totalArea float64, material Material) MaterialUsage {
	if !material.RollBased() || !(totalArea > 0) || totalArea/CoilAreaM2 > math.MaxInt32 {
		return MaterialUsage{}
	}
	coils := int(math.Ceil(totalArea / CoilAreaM2))
	bought := float64(coils) * CoilAreaM2
	waste := bought - totalArea
	return MaterialUsage{
		CoilsRequired: coils,
		WasteAreaM2:   waste,
		WastePercent:  waste / bought * 100,
	}
}

// Calculate is ComputeArea followed by ComputeMaterial on the total.
func Calculate(shape Shape, feature *Feature, override *Override, material Material) (Result, error) {
	area, err := ComputeArea(shape, feature, override)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Area:          area,
		MaterialUsage: ComputeMaterial(area.TotalArea, material),
	}, nil
}
