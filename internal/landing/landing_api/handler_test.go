package landing_api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"ms-checkout/internal/audit"
	"ms-checkout/internal/landing"
	"ms-checkout/internal/landing/landing_api"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

type stubEventsAPI struct {
	order *models.OrderDetails
}

func (s *stubEventsAPI) ConfirmOrder(context.Context, string, string) (*models.ConfirmOrderResponse, error) {
	return &models.ConfirmOrderResponse{Orders: []models.OrderDetails{*s.order}}, nil
}

func (s *stubEventsAPI) GetOrder(context.Context, models.OrderIdentifiers, []string) (*models.OrderDetails, error) {
	return s.order, nil
}

type stubTicketFinder struct{}

func (stubTicketFinder) TicketsByIDs(context.Context, []string) ([]models.TicketRecord, error) {
	return nil, errors.New("unexpected store access")
}

func newThankYouHandler() *landing_api.Handler {
	order := &models.OrderDetails{
		OrderNumber: "order-1",
		EventID:     "evt-9",
		Tickets: []models.EventTicket{{
			TicketNumber: "T-1",
			Name:         "GA",
			Price:        &models.TicketPrice{Currency: "EUR", Amount: "45.00"},
		}},
	}
	log := logger.NewLogger()
	r := landing.NewReconciler(stubTicketFinder{}, &stubEventsAPI{order: order}, audit.Noop{}, nil, "", log, landing.Options{})
	return landing_api.NewHandler(r, log)
}

func TestThankYouVisiblePage(t *testing.T) {
	h := newThankYouHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/landing?tid=90210&oid=order-1&eid=evt-9", nil)
	rec := httptest.NewRecorder()
	h.ThankYou(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page models.LandingPage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.True(t, page.Visible)
	assert.Len(t, page.Tickets, 1)
	assert.Equal(t, "EUR 45.00", page.Tickets[0].TicketPrice)
}

// Failures keep HTTP 200; the page model carries the code and the
// ticket list stays hidden.
func TestThankYouHiddenPageStill200(t *testing.T) {
	h := newThankYouHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/landing?tid=90210", nil)
	rec := httptest.NewRecorder()
	h.ThankYou(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page models.LandingPage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.False(t, page.Visible)
	assert.Equal(t, models.CodeValidationError, page.Code)
	assert.Empty(t, page.Tickets)
}
