package calculations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Poolcalc/internal/calc/importer"
	"Poolcalc/internal/calc/pool"
	"Poolcalc/internal/calc/report"
	"Poolcalc/internal/httputil"
	"Poolcalc/internal/metrics"
	"Poolcalc/internal/repo"
)

const DefaultSupplier = "Acqualiner"

// Suppliers offered by the form. Other names are stored as typed.
var Suppliers = []string{DefaultSupplier, "Sansui", "Sipatex", "Locomotiva/Aqualona"}

type Handler struct {
	Repo   repo.Repository
	Report *report.Handler

	validate *validator.Validate
}

func NewHandler(r repo.Repository, rep *report.Handler) *Handler {
	return &Handler{Repo: r, Report: rep, validate: validator.New()}
}

type CreateResponse struct {
	ID      int64       `json:"id"`
	Message string      `json:"message"`
	Result  pool.Result `json:"result"`
}

// Create computes the submitted form and stores the result together with the
// echoed dimensions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req pool.Request
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	rec, res, err := build(req, time.Now())
	if err != nil {
		metrics.IncreaseCalculationsMetric(shapeLabel(req.Shape), metrics.OutcomeInvalid)
		httputil.WriteErrorFields(w, http.StatusBadRequest, err.Error(), pool.InvalidFields(err))
		return
	}
	metrics.IncreaseCalculationsMetric(rec.ShapeType, metrics.OutcomeOK)
	metrics.ObserveCoils(res.CoilsRequired)

	id, err := h.Repo.Create(r.Context(), rec)
	if err != nil {
		zap.S().Named("calculations").Errorw("failed to save calculation", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to save calculation")
		return
	}
	metrics.IncreaseRecordsStoredMetric()

	httputil.WriteJSON(w, http.StatusCreated, CreateResponse{
		ID:      id,
		Message: "Calculation saved",
		Result:  res,
	})
}

func build(req pool.Request, now time.Time) (repo.Record, pool.Result, error) {
	in, err := req.Parse()
	if err != nil {
		return repo.Record{}, pool.Result{}, err
	}
	res, err := pool.Calculate(in.Shape, in.Feature, in.Override, in.Material)
	if err != nil {
		return repo.Record{}, pool.Result{}, err
	}

	req.Supplier = strings.TrimSpace(req.Supplier)
	if req.Supplier == "" {
		req.Supplier = DefaultSupplier
	}
	dimensions, err := json.Marshal(req)
	if err != nil {
		return repo.Record{}, pool.Result{}, err
	}

	return repo.Record{
		ShapeType:     string(in.Shape.Type()),
		Dimensions:    dimensions,
		Material:      string(in.Material),
		FloorArea:     res.FloorArea,
		WallArea:      res.WallArea,
		TotalArea:     res.TotalArea,
		CoilsRequired: res.CoilsRequired,
		WasteAreaM2:   res.WasteAreaM2,
		WastePercent:  res.WastePercent,
		Supplier:      req.Supplier,
		CreatedAt:     now,
	}, res, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Repo.List(r.Context())
	if err != nil {
		zap.S().Named("calculations").Errorw("failed to list calculations", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch calculations")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

// PDF renders the report of a stored calculation.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	metrics.IncreaseReportsMetric("stored")
	h.Report.Write(w, rec)
}

// ExportPDF renders the report of a calculation posted by the client.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	metrics.IncreaseReportsMetric("posted")
	h.Report.Generate(w, r)
}

// Export downloads the whole history as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.Repo.List(r.Context())
	if err != nil {
		zap.S().Named("calculations").Errorw("failed to list calculations", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch calculations")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="calculations.xlsx"`)
	if err := importer.Export(w, records); err != nil {
		zap.S().Named("calculations").Errorw("failed to export calculations", "error", err)
	}
}

func (h *Handler) SupplierList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Suppliers)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (repo.Record, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid id")
		return repo.Record{}, false
	}
	rec, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "Calculation not found")
		return repo.Record{}, false
	}
	if err != nil {
		zap.S().Named("calculations").Errorw("failed to fetch calculation", "id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch calculation")
		return repo.Record{}, false
	}
	return rec, true
}

func shapeLabel(s string) string {
	t, err := pool.ParseShapeType(s)
	if err != nil {
		return "unknown"
	}
	return string(t)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" failed "+fe.Tag())
		}
		return "invalid request: " + strings.Join(fields, ", ")
	}
	return "invalid request"
}
