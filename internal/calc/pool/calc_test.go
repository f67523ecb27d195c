package pool

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func ptr(v float64) *float64 { return &v }

func TestComputeAreaRectangular(t *testing.T) {
	cases := []Rectangular{
		{Length: 8, Width: 4, Depth: 1.4},
		{Length: 2, Width: 3, Depth: 1},
		{Length: 10.5, Width: 5.25, Depth: 1.8},
	}
	for _, in := range cases {
		area, err := ComputeArea(in, nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, in.Length*in.Width, area.FloorArea, tolerance)
		assert.InDelta(t, 2*in.Depth*(in.Length+in.Width), area.WallArea, tolerance)
		assert.InDelta(t, area.FloorArea+area.WallArea, area.TotalArea, tolerance)
	}
}

func TestComputeAreaCircular(t *testing.T) {
	area, err := ComputeArea(Circular{Diameter: 4, Depth: 1.2}, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*4, area.FloorArea, tolerance)
	assert.InDelta(t, 2*math.Pi*2*1.2, area.WallArea, tolerance)
	assert.InDelta(t, area.FloorArea+area.WallArea, area.TotalArea, tolerance)
}

func TestComputeAreaIrregular(t *testing.T) {
	// a square is cyclic, so the approximation is exact
	area, err := ComputeArea(IrregularQuadrilateral{SideA: 5, SideB: 5, SideC: 5, SideD: 5, Depth: 1}, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 25, area.FloorArea, tolerance)
	assert.InDelta(t, 20, area.WallArea, tolerance)

	area, err = ComputeArea(IrregularQuadrilateral{SideA: 6, SideB: 5, SideC: 4, SideD: 5, Depth: 1.5}, nil, nil)
	require.NoError(t, err)
	// s = 10; (4)(5)(6)(5) = 600
	assert.InDelta(t, math.Sqrt(600), area.FloorArea, tolerance)
	assert.InDelta(t, 30, area.WallArea, tolerance)
	assert.InDelta(t, area.FloorArea+area.WallArea, area.TotalArea, tolerance)
}

func TestComputeAreaIrregularDegenerate(t *testing.T) {
	area, err := ComputeArea(IrregularQuadrilateral{SideA: 20, SideB: 1, SideC: 1, SideD: 1, Depth: 1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, area.FloorArea)
	assert.InDelta(t, 23, area.WallArea, tolerance)
	assert.False(t, math.IsNaN(area.TotalArea))
}

func TestComputeAreaFeatureAdds(t *testing.T) {
	area, err := ComputeArea(Rectangular{Length: 8, Width: 4, Depth: 1.4}, &Feature{Length: 2, Width: 2, Depth: 0.5}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 32+4, area.FloorArea, tolerance)
	assert.InDelta(t, 2*1.4*12+2*0.5*4, area.WallArea, tolerance)
	assert.InDelta(t, area.FloorArea+area.WallArea, area.TotalArea, tolerance)
}

func TestComputeAreaOverrideReplaces(t *testing.T) {
	area, err := ComputeArea(Rectangular{Length: 2, Width: 3, Depth: 1}, nil, &Override{Floor: ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, area.FloorArea)
	assert.InDelta(t, 10, area.WallArea, tolerance)
	assert.InDelta(t, 110, area.TotalArea, tolerance)

	area, err = ComputeArea(Rectangular{Length: 2, Width: 3, Depth: 1}, nil, &Override{Wall: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 6.0, area.FloorArea)
	assert.Equal(t, 0.0, area.WallArea)
	assert.Equal(t, 6.0, area.TotalArea)
}

func TestComputeAreaOverrideAfterFeature(t *testing.T) {
	area, err := ComputeArea(
		Rectangular{Length: 2, Width: 3, Depth: 1},
		&Feature{Length: 1, Width: 1, Depth: 1},
		&Override{Floor: ptr(50)},
	)
	require.NoError(t, err)
	assert.Equal(t, 50.0, area.FloorArea)
	// feature walls still count since only the floor was overridden
	assert.InDelta(t, 10+4, area.WallArea, tolerance)
	assert.InDelta(t, 64, area.TotalArea, tolerance)
}

func TestComputeAreaMissingDimension(t *testing.T) {
	_, err := ComputeArea(Rectangular{Length: 2, Depth: 1}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDimension))

	var missing *MissingDimensionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"width"}, missing.Fields)

	_, err = ComputeArea(Circular{Diameter: math.NaN(), Depth: -1}, nil, nil)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"diameter", "depth"}, missing.Fields)

	_, err = ComputeArea(Rectangular{Length: 2, Width: 3, Depth: 1}, &Feature{Length: 1}, &Override{Floor: ptr(-3)})
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"beach.width", "beach.depth", "floor_override"}, missing.Fields)
}

func TestComputeAreaOutOfRange(t *testing.T) {
	_, err := ComputeArea(Rectangular{Length: 1e12, Width: 1e12, Depth: 1}, nil, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []string{"length", "width"}, InvalidFields(err))

	_, err = ComputeArea(Circular{Diameter: 20, Depth: 2}, &Feature{Length: 1, Width: 1, Depth: 5000}, &Override{Wall: ptr(2e6)})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []string{"beach.depth", "wall_override"}, InvalidFields(err))

	// missing fields win over range errors
	_, err = ComputeArea(Rectangular{Length: 1e12, Depth: 1}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingDimension)
	assert.Equal(t, []string{"width"}, InvalidFields(err))

	area, err := ComputeArea(Rectangular{Length: MaxDimensionM, Width: MaxDimensionM, Depth: MaxDimensionM}, nil, &Override{Floor: ptr(MaxAreaM2)})
	require.NoError(t, err)
	assert.InDelta(t, MaxAreaM2+4e6, area.TotalArea, tolerance)
}

func TestComputeAreaNilShape(t *testing.T) {
	_, err := ComputeArea(nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestComputeMaterial(t *testing.T) {
	usage := ComputeMaterial(140, MaterialVinyl)
	assert.Equal(t, 2, usage.CoilsRequired)
	assert.InDelta(t, 0, usage.WasteAreaM2, tolerance)
	assert.InDelta(t, 0, usage.WastePercent, tolerance)

	usage = ComputeMaterial(100, MaterialVinyl)
	assert.Equal(t, 2, usage.CoilsRequired)
	assert.InDelta(t, 40, usage.WasteAreaM2, tolerance)
	assert.InDelta(t, 40.0/140.0*100, usage.WastePercent, tolerance)

	usage = ComputeMaterial(70.5, MaterialTarp)
	assert.Equal(t, 2, usage.CoilsRequired)
	assert.InDelta(t, 69.5, usage.WasteAreaM2, tolerance)
}

func TestComputeMaterialTile(t *testing.T) {
	for _, total := range []float64{0, 1, 70, 140, 1234.5} {
		assert.Equal(t, MaterialUsage{}, ComputeMaterial(total, MaterialTile))
	}
}

func TestComputeMaterialZeroArea(t *testing.T) {
	assert.Equal(t, MaterialUsage{}, ComputeMaterial(0, MaterialVinyl))
}

func TestComputeMaterialUncountable(t *testing.T) {
	for _, total := range []float64{1e24, math.Inf(1), math.NaN()} {
		assert.Equal(t, MaterialUsage{}, ComputeMaterial(total, MaterialVinyl))
	}

	usage := ComputeMaterial(1e7, MaterialVinyl)
	assert.Equal(t, 142858, usage.CoilsRequired)
	assert.GreaterOrEqual(t, usage.WasteAreaM2, 0.0)
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Rectangular{Length: 8, Width: 4, Depth: 1.5}, nil, nil, MaterialVinyl)
	require.NoError(t, err)
	// floor 32 + wall 36 = 68 -> one coil
	assert.InDelta(t, 68, res.TotalArea, tolerance)
	assert.Equal(t, 1, res.CoilsRequired)
	assert.InDelta(t, 2, res.WasteAreaM2, tolerance)

	_, err = Calculate(Rectangular{Length: 8}, nil, nil, MaterialVinyl)
	assert.ErrorIs(t, err, ErrMissingDimension)
}
