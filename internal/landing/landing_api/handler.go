package landing_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ms-checkout/internal/landing"
	"ms-checkout/internal/logger"
)

type Handler struct {
	Reconciler *landing.Reconciler
	Logger     *logger.Logger
}

func NewHandler(reconciler *landing.Reconciler, log *logger.Logger) *Handler {
	return &Handler{Reconciler: reconciler, Logger: log}
}

// ThankYou evaluates the gateway redirect and returns the page model.
// The ticket list stays hidden (visible:false) on every failure; the
// page is always HTTP 200 because the buyer already paid and an error
// status would just break the hosted page shell.
func (h *Handler) ThankYou(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("API", fmt.Sprintf("ThankYou: query=%s", r.URL.RawQuery))

	page := h.Reconciler.Render(r.Context(), r.URL.Query())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ThankYou: failed to encode response: %v", err))
	}
}
