package checkout_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-checkout/internal/checkout"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
	"ms-checkout/internal/utils"
)

type Handler struct {
	Service *checkout.Service
	Logger  *logger.Logger
}

func NewHandler(service *checkout.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// CreateTransaction is the plugin-shell entry point. Validation
// failures are part of the contract, so they come back as HTTP 200
// with a {code, message} body the caller branches on.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("API", "CreateTransaction: received request")

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateTransaction: failed to decode request body: %v", err))
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, verr := h.Service.CreateTransaction(r.Context(), req)
	if verr != nil {
		h.Logger.Warn("API", fmt.Sprintf("CreateTransaction: %s", verr.Error()))
		writeJSON(w, http.StatusOK, verr)
		return
	}

	writeJSON(w, http.StatusOK, result)
	h.Logger.Info("API", fmt.Sprintf("CreateTransaction: redirect issued for transaction %s", result.PluginTransactionID))
}

func (h *Handler) ConnectAccount(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ConnectAccount: failed to decode request body: %v", err))
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, h.Service.ConnectAccount(r.Context(), req))
}

func (h *Handler) RefundTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	h.Logger.Info("API", fmt.Sprintf("RefundTransaction: transactionId=%s", transactionID))

	writeJSON(w, http.StatusOK, h.Service.RefundTransaction(r.Context(), transactionID))
}

func (h *Handler) ProviderConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, checkout.ProviderConfig())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
