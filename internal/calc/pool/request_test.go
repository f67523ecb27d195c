package pool

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionUnmarshal(t *testing.T) {
	var req Request
	err := json.Unmarshal([]byte(`{"shape":"rectangular","length":8,"width":"4","depth":"1,5","diameter":null}`), &req)
	require.NoError(t, err)

	v, ok := req.Length.Float()
	assert.True(t, ok)
	assert.Equal(t, 8.0, v)
	v, ok = req.Width.Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
	v, ok = req.Depth.Float()
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
	assert.False(t, req.Diameter.IsSet())
}

func TestRequestParseRectangular(t *testing.T) {
	in, err := Request{Shape: "retangular", Length: "8", Width: "4", Depth: "1.4", Material: "vinil"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, Rectangular{Length: 8, Width: 4, Depth: 1.4}, in.Shape)
	assert.Equal(t, MaterialVinyl, in.Material)
	assert.Nil(t, in.Feature)
	assert.Nil(t, in.Override)
}

func TestRequestParseCircularFallsBackToLength(t *testing.T) {
	in, err := Request{Shape: "circular", Length: "6", Depth: "1.2"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, Circular{Diameter: 6, Depth: 1.2}, in.Shape)

	in, err = Request{Shape: "circular", Length: "6", Diameter: "5", Depth: "1.2"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, Circular{Diameter: 5, Depth: 1.2}, in.Shape)
}

func TestRequestParseMissing(t *testing.T) {
	_, err := Request{Shape: "rectangular", Length: "8", Width: "abc"}.Parse()
	assert.ErrorIs(t, err, ErrMissingDimension)
	assert.Equal(t, []string{"width", "depth"}, InvalidFields(err))

	_, err = Request{Shape: "fora_esquadro", SideA: "5", SideB: "5", SideC: "0", Depth: "1"}.Parse()
	assert.Equal(t, []string{"side_c", "side_d"}, InvalidFields(err))
}

func TestRequestParseBeach(t *testing.T) {
	req := Request{
		Shape: "rectangular", Length: "8", Width: "4", Depth: "1.4",
		Beach: &BeachRequest{Enabled: true, Length: "2", Width: "2"},
	}
	_, err := req.Parse()
	assert.Equal(t, []string{"beach.depth"}, InvalidFields(err))

	req.Beach.Enabled = false
	in, err := req.Parse()
	require.NoError(t, err)
	assert.Nil(t, in.Feature)

	req.Beach = &BeachRequest{Enabled: true, Length: "2", Width: "2", Depth: "0,5"}
	in, err = req.Parse()
	require.NoError(t, err)
	assert.Equal(t, &Feature{Length: 2, Width: 2, Depth: 0.5}, in.Feature)
}

func TestRequestParseOverrides(t *testing.T) {
	in, err := Request{Shape: "rectangular", Length: "2", Width: "3", Depth: "1", FloorOverride: "100"}.Parse()
	require.NoError(t, err)
	require.NotNil(t, in.Override)
	require.NotNil(t, in.Override.Floor)
	assert.Equal(t, 100.0, *in.Override.Floor)
	assert.Nil(t, in.Override.Wall)

	_, err = Request{Shape: "rectangular", Length: "2", Width: "3", Depth: "1", WallOverride: "lots"}.Parse()
	assert.Equal(t, []string{"wall_override"}, InvalidFields(err))
}

func TestRequestParseUnknown(t *testing.T) {
	_, err := Request{Shape: "triangle"}.Parse()
	assert.ErrorIs(t, err, ErrUnknownShape)

	_, err = Request{Shape: "circular", Length: "3", Depth: "1", Material: "concrete"}.Parse()
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestRequestCalculate(t *testing.T) {
	res, err := Request{Shape: "rectangular", Length: "2", Width: "3", Depth: "1", FloorOverride: "100", Material: "pastilha"}.Calculate()
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.FloorArea)
	assert.InDelta(t, 110, res.TotalArea, 1e-9)
	assert.Equal(t, MaterialUsage{}, res.MaterialUsage)

	res, err = Request{Shape: "circular", Diameter: "4", Depth: "1"}.Calculate()
	require.NoError(t, err)
	assert.InDelta(t, 4*math.Pi+4*math.Pi, res.TotalArea, 1e-9)
	assert.Equal(t, 1, res.CoilsRequired)
}

func TestParseMaterial(t *testing.T) {
	for in, want := range map[string]Material{
		"":         MaterialVinyl,
		"Vinyl":    MaterialVinyl,
		"lona":     MaterialTarp,
		"tarp":     MaterialTarp,
		"pastilha": MaterialTile,
	} {
		got, err := ParseMaterial(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
