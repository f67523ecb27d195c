package batch

import (
	"fmt"

	"Poolcalc/internal/calc/pool"
)

type Input struct {
	Items []pool.Request `json:"items"`
}

type Item struct {
	Index  int          `json:"index"`
	Result *pool.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
	Fields []string     `json:"fields,omitempty"`
}

type Result struct {
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Items     []Item `json:"items"`
}

// CalculateMany runs every request. A failing item is reported in place and
// does not stop the others.
func CalculateMany(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Items: make([]Item, 0, len(in.Items))}
	for i, req := range in.Items {
		item := Item{Index: i}
		res, err := req.Calculate()
		if err != nil {
			item.Error = err.Error()
			item.Fields = pool.InvalidFields(err)
			out.Failed++
		} else {
			item.Result = &res
			out.Succeeded++
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
