package batch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Poolcalc/internal/calc/pool"
)

func TestCalculateMany(t *testing.T) {
	res, err := CalculateMany(Input{Items: []pool.Request{
		{Shape: "rectangular", Length: "8", Width: "4", Depth: "1.5"},
		{Shape: "rectangular", Length: "8", Depth: "1.5"},
		{Shape: "hexagon"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Items, 3)

	require.NotNil(t, res.Items[0].Result)
	assert.InDelta(t, 68, res.Items[0].Result.TotalArea, 1e-9)
	assert.Nil(t, res.Items[1].Result)
	assert.Equal(t, []string{"width"}, res.Items[1].Fields)
	assert.Contains(t, res.Items[2].Error, "unknown pool shape")
	assert.Equal(t, 2, res.Items[2].Index)
}

func TestCalculateManyEmpty(t *testing.T) {
	_, err := CalculateMany(Input{})
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	body := `{"items":[{"shape":"circular","diameter":4,"depth":1,"material":"lona"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculations/batch", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Calc(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Items[0].Result.CoilsRequired)
}
