package events_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-checkout/internal/events"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
	"ms-checkout/internal/utils"
)

// Handler exposes the events-subsystem verbs as operations endpoints.
// These sit behind the OIDC middleware; the checkout and landing
// surfaces never go through here.
type Handler struct {
	Client *events.Client
	Logger *logger.Logger
}

func NewHandler(client *events.Client, log *logger.Logger) *Handler {
	return &Handler{Client: client, Logger: log}
}

func (h *Handler) ListScheduledEvents(w http.ResponseWriter, r *http.Request) {
	items, err := h.Client.ListScheduledEvents(r.Context())
	if err != nil {
		h.fail(w, "ListScheduledEvents", err)
		return
	}
	h.ok(w, items)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.Client.ListOrders(r.Context(), eventID, limit)
	if err != nil {
		h.fail(w, "ListOrders", err)
		return
	}
	h.ok(w, resp)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	identifiers := models.OrderIdentifiers{
		EventID:     chi.URLParam(r, "eventId"),
		OrderNumber: chi.URLParam(r, "orderNumber"),
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.Client.UpdateOrder(r.Context(), identifiers, patch)
	if err != nil {
		h.fail(w, "UpdateOrder", err)
		return
	}
	h.ok(w, resp)
}

func (h *Handler) UpdateCheckout(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	orderNumber := chi.URLParam(r, "orderNumber")

	var req models.UpdateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.Client.UpdateCheckout(r.Context(), orderNumber, eventID, req)
	if err != nil {
		h.fail(w, "UpdateCheckout", err)
		return
	}
	h.ok(w, resp)
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var req models.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.Client.CreateReservation(r.Context(), eventID, req)
	if err != nil {
		h.fail(w, "CreateReservation", err)
		return
	}
	h.ok(w, resp)
}

func (h *Handler) ListAvailableTickets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Client.ListAvailableTickets(r.Context(), r.URL.Query().Get("eventId"))
	if err != nil {
		h.fail(w, "ListAvailableTickets", err)
		return
	}
	h.ok(w, resp)
}

func (h *Handler) QueryTicketDefinitions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Client.QueryTicketDefinitions(r.Context(), r.URL.Query().Get("eventId"))
	if err != nil {
		h.fail(w, "QueryTicketDefinitions", err)
		return
	}
	h.ok(w, resp)
}

func (h *Handler) ok(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(utils.ErrorResponse("events API call failed", err.Error()))
}
