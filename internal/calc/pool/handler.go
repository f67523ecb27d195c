package pool

import (
	"net/http"

	"Poolcalc/internal/httputil"
)

type Handler struct{}

// Calc computes areas and coils without persisting anything.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Request
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := input.Calculate()
	if err != nil {
		httputil.WriteErrorFields(w, http.StatusBadRequest, err.Error(), InvalidFields(err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
