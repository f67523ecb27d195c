package report

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"Poolcalc/internal/httputil"
	"Poolcalc/internal/repo"
)

type Input struct {
	Calculation *repo.Record `json:"calculation"`
}

type Handler struct {
	Now func() time.Time
}

// Generate renders a PDF for a calculation posted by the client.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httputil.DecodeJSON(r, &input); err != nil || input.Calculation == nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	h.Write(w, *input.Calculation)
}

// Write renders rec and sends it as an attachment.
func (h *Handler) Write(w http.ResponseWriter, rec repo.Record) {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	var buf bytes.Buffer
	if err := Render(&buf, rec, now); err != nil {
		zap.S().Named("report").Errorw("report generation failed", "id", rec.ID, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(now)))
	w.Write(buf.Bytes())
}
