package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"ms-checkout/internal/events"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}

func TestConfirmOrderAttachesToken(t *testing.T) {
	var gotAuth string
	var gotBody models.ConfirmOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/events/evt-9/orders/confirm", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(models.ConfirmOrderResponse{
			Orders: []models.OrderDetails{{
				OrderNumber: "order-1",
				Tickets:     []models.EventTicket{{TicketNumber: "T-1"}},
			}},
		})
	}))
	defer srv.Close()

	c := events.NewClient(srv.URL, srv.Client(), staticTokens{token: "m2m-token"}, logger.NewLogger())
	resp, err := c.ConfirmOrder(context.Background(), "evt-9", "order-1")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer m2m-token", gotAuth)
	assert.Equal(t, []string{"order-1"}, gotBody.OrderNumber)
	assert.Len(t, resp.Orders, 1)
}

func TestConfirmOrderRejectsTicketlessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ConfirmOrderResponse{
			Orders: []models.OrderDetails{{OrderNumber: "order-1"}},
		})
	}))
	defer srv.Close()

	c := events.NewClient(srv.URL, srv.Client(), staticTokens{token: "m2m-token"}, logger.NewLogger())
	resp, err := c.ConfirmOrder(context.Background(), "evt-9", "order-1")

	assert.Error(t, err)
	assert.Nil(t, resp)
}

// A token failure fails the call outright instead of downgrading to an
// anonymous request.
func TestElevatedCallFailsWithoutToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := events.NewClient(srv.URL, srv.Client(), staticTokens{err: errors.New("auth server down")}, logger.NewLogger())
	_, err := c.ConfirmOrder(context.Background(), "evt-9", "order-1")

	assert.Error(t, err)
	assert.False(t, called)

	c = events.NewClient(srv.URL, srv.Client(), nil, logger.NewLogger())
	_, err = c.GetOrder(context.Background(), models.OrderIdentifiers{EventID: "evt-9", OrderNumber: "order-1"}, nil)
	assert.Error(t, err)
	assert.False(t, called)
}

func TestGetOrderFieldset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/events/evt-9/orders/order-1", r.URL.Path)
		assert.Equal(t, []string{"TICKETS", "DETAILS"}, r.URL.Query()["fieldset"])

		json.NewEncoder(w).Encode(models.OrderDetails{
			OrderNumber: "order-1",
			EventID:     "evt-9",
			Tickets:     []models.EventTicket{{TicketNumber: "T-1"}},
		})
	}))
	defer srv.Close()

	c := events.NewClient(srv.URL, srv.Client(), staticTokens{token: "m2m-token"}, logger.NewLogger())
	details, err := c.GetOrder(context.Background(), models.OrderIdentifiers{
		EventID:     "evt-9",
		OrderNumber: "order-1",
	}, []string{"TICKETS", "DETAILS"})

	assert.NoError(t, err)
	assert.Equal(t, "evt-9", details.EventID)
	assert.Len(t, details.Tickets, 1)
}

func TestGetOrderNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "order not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := events.NewClient(srv.URL, srv.Client(), staticTokens{token: "m2m-token"}, logger.NewLogger())
	_, err := c.GetOrder(context.Background(), models.OrderIdentifiers{
		EventID:     "evt-9",
		OrderNumber: "missing",
	}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestListScheduledEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/events", r.URL.Path)
		assert.Equal(t, "SCHEDULED", r.URL.Query().Get("status"))
		// Anonymous endpoint, no token expected.
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Write([]byte(`{"events":[{"_id":"evt-1","title":"Summer Fest"},{"_id":"evt-2","title":"Winter Gala"}]}`))
	}))
	defer srv.Close()

	c := events.NewClient(srv.URL, srv.Client(), nil, logger.NewLogger())
	list, err := c.ListScheduledEvents(context.Background())

	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "evt-1", list[0].ID)
	assert.Equal(t, "Summer Fest", list[0].Title)
}

func TestUpdateCheckoutNotElevated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/events/evt-9/checkouts/order-1", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.OrderDetails{OrderNumber: "order-1"})
	}))
	defer srv.Close()

	// No token source wired at all: the call must still succeed.
	c := events.NewClient(srv.URL, srv.Client(), nil, logger.NewLogger())
	details, err := c.UpdateCheckout(context.Background(), "order-1", "evt-9", models.UpdateCheckoutRequest{
		Coupon: "EARLYBIRD",
	})

	assert.NoError(t, err)
	assert.Equal(t, "order-1", details.OrderNumber)
}
