package importer

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"Poolcalc/internal/calc/pool"
	"Poolcalc/internal/repo"
)

// Columns of an import sheet, in order. The first row is a header and is skipped.
var Columns = []string{
	"shape", "length", "width", "depth", "diameter",
	"side_a", "side_b", "side_c", "side_d", "material", "supplier",
}

type Row struct {
	Row     int          `json:"row"`
	Request pool.Request `json:"request"`
	Result  *pool.Result `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
	Fields  []string     `json:"fields,omitempty"`
}

type Result struct {
	Count  int   `json:"count"`
	Failed int   `json:"failed"`
	Rows   []Row `json:"rows"`
}

// Import reads pool dimensions from the first sheet of an xlsx workbook and
// computes every row. Blank rows are skipped; bad rows are reported by their
// spreadsheet row number.
func Import(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("invalid file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return Result{}, fmt.Errorf("empty sheet")
	}

	out := Result{Rows: []Row{}}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		row := Row{Row: i + 1, Request: parseRow(rows[i])}
		res, err := row.Request.Calculate()
		if err != nil {
			row.Error = err.Error()
			row.Fields = pool.InvalidFields(err)
			out.Failed++
		} else {
			row.Result = &res
			out.Count++
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func parseRow(row []string) pool.Request {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return pool.Request{
		Shape:    cell(0),
		Length:   pool.Dimension(cell(1)),
		Width:    pool.Dimension(cell(2)),
		Depth:    pool.Dimension(cell(3)),
		Diameter: pool.Dimension(cell(4)),
		SideA:    pool.Dimension(cell(5)),
		SideB:    pool.Dimension(cell(6)),
		SideC:    pool.Dimension(cell(7)),
		SideD:    pool.Dimension(cell(8)),
		Material: cell(9),
		Supplier: cell(10),
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var exportHeader = []any{
	"ID", "Created", "Shape", "Material", "Supplier",
	"Floor area (m2)", "Wall area (m2)", "Total area (m2)",
	"Coils", "Waste (m2)", "Waste (%)",
}

const exportSheet = "Calculations"

// Export writes the records as an xlsx workbook, one row per calculation.
func Export(w io.Writer, records []repo.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			rec.ID,
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.ShapeType,
			rec.Material,
			rec.Supplier,
			round2(rec.FloorArea),
			round2(rec.WallArea),
			round2(rec.TotalArea),
			rec.CoilsRequired,
			round2(rec.WasteAreaM2),
			round2(rec.WastePercent),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
