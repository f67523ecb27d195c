package importer

import (
	"net/http"

	"Poolcalc/internal/httputil"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

// Upload computes every row of an uploaded xlsx sheet (form field "file").
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	res, err := Import(file)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
