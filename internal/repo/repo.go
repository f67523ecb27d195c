package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrNotFound = errors.New("calculation not found")

// Record is a persisted calculation. Dimensions echoes the submitted form.
type Record struct {
	ID            int64           `json:"id"`
	ShapeType     string          `json:"shape_type"`
	Dimensions    json.RawMessage `json:"dimensions"`
	Material      string          `json:"material"`
	FloorArea     float64         `json:"floor_area"`
	WallArea      float64         `json:"wall_area"`
	TotalArea     float64         `json:"total_area"`
	CoilsRequired int             `json:"coils_required"`
	WasteAreaM2   float64         `json:"waste_area_m2"`
	WastePercent  float64         `json:"waste_percent"`
	Supplier      string          `json:"supplier"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, rec Record) (int64, error)
}

type SQLCalculationRepository struct {
	db       *sql.DB
	postgres bool
}

// NewSQLCalculationDB works on both sqlite and postgres; dialect is "postgres" or anything else for sqlite.
func NewSQLCalculationDB(db *sql.DB, dialect string) *SQLCalculationRepository {
	return &SQLCalculationRepository{db: db, postgres: dialect == "postgres"}
}

const columns = "id, shape_type, dimensions, material, floor_area, wall_area, total_area, coils_required, waste_area_m2, waste_percent, supplier, created_at"

func (r *SQLCalculationRepository) List(ctx context.Context) ([]Record, error) {
	query := "SELECT " + columns + " FROM calculations ORDER BY created_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return records, nil
}

func (r *SQLCalculationRepository) Get(ctx context.Context, id int64) (Record, error) {
	query := r.rebind("SELECT " + columns + " FROM calculations WHERE id = ?")
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (r *SQLCalculationRepository) Create(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if len(rec.Dimensions) == 0 {
		rec.Dimensions = json.RawMessage("{}")
	}
	query := r.rebind(`INSERT INTO calculations (
		shape_type, dimensions, material, floor_area, wall_area, total_area,
		coils_required, waste_area_m2, waste_percent, supplier, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.ShapeType,
		string(rec.Dimensions),
		rec.Material,
		rec.FloorArea,
		rec.WallArea,
		rec.TotalArea,
		rec.CoilsRequired,
		rec.WasteAreaM2,
		rec.WastePercent,
		rec.Supplier,
		rec.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create calculation: %w", err)
	}
	return id, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var dimensions string
	err := s.Scan(
		&rec.ID,
		&rec.ShapeType,
		&dimensions,
		&rec.Material,
		&rec.FloorArea,
		&rec.WallArea,
		&rec.TotalArea,
		&rec.CoilsRequired,
		&rec.WasteAreaM2,
		&rec.WastePercent,
		&rec.Supplier,
		&rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Dimensions = json.RawMessage(dimensions)
	return rec, nil
}

// rebind turns ? placeholders into $n for postgres.
func (r *SQLCalculationRepository) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
