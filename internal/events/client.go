package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

// TokenSource supplies bearer tokens for elevated calls. Nil means all
// calls go out anonymously.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the events/ticketing subsystem. Every method is one
// synchronous request/response call; there is no retry policy, the
// caller decides what a failure means.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
	Logger  *logger.Logger
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    httpClient,
		Tokens:  tokens,
		Logger:  log,
	}
}

// do executes one call. elevated attaches the m2m token; a token
// failure fails the call rather than silently downgrading privilege.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, elevated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if elevated {
		if c.Tokens == nil {
			return fmt.Errorf("elevated call to %s without a token source", path)
		}
		token, err := c.Tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to obtain elevated token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("events API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("events API %s %s returned status %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode events API response: %w", err)
	}
	return nil
}

// ConfirmOrder confirms a paid order with the events subsystem.
// Elevated: anonymous callers may not confirm orders.
func (c *Client) ConfirmOrder(ctx context.Context, eventID, orderNumber string) (*models.ConfirmOrderResponse, error) {
	c.Logger.LogEvents("CONFIRM_ORDER", fmt.Sprintf("event=%s order=%s", eventID, orderNumber))

	var out models.ConfirmOrderResponse
	body := models.ConfirmOrderRequest{OrderNumber: []string{orderNumber}}
	path := fmt.Sprintf("/v2/events/%s/orders/confirm", url.PathEscape(eventID))
	if err := c.do(ctx, http.MethodPost, path, body, &out, true); err != nil {
		return nil, err
	}
	if len(out.Orders) == 0 || len(out.Orders[0].Tickets) == 0 {
		return nil, fmt.Errorf("confirm order response carried no tickets")
	}
	return &out, nil
}

// GetOrder fetches full order details. Elevated.
func (c *Client) GetOrder(ctx context.Context, identifiers models.OrderIdentifiers, fieldset []string) (*models.OrderDetails, error) {
	c.Logger.LogEvents("GET_ORDER", fmt.Sprintf("event=%s order=%s", identifiers.EventID, identifiers.OrderNumber))

	path := fmt.Sprintf("/v2/events/%s/orders/%s",
		url.PathEscape(identifiers.EventID), url.PathEscape(identifiers.OrderNumber))
	if len(fieldset) > 0 {
		q := url.Values{}
		for _, f := range fieldset {
			q.Add("fieldset", f)
		}
		path += "?" + q.Encode()
	}

	var out models.OrderDetails
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder patches order fields. Elevated.
func (c *Client) UpdateOrder(ctx context.Context, identifiers models.OrderIdentifiers, patch map[string]any) (*models.OrderDetails, error) {
	path := fmt.Sprintf("/v2/events/%s/orders/%s",
		url.PathEscape(identifiers.EventID), url.PathEscape(identifiers.OrderNumber))

	var out models.OrderDetails
	if err := c.do(ctx, http.MethodPatch, path, patch, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCheckout adjusts an in-progress checkout (ticket quantities,
// coupon). Not elevated; it acts on the caller's own checkout.
func (c *Client) UpdateCheckout(ctx context.Context, orderNumber, eventID string, req models.UpdateCheckoutRequest) (*models.OrderDetails, error) {
	path := fmt.Sprintf("/v2/events/%s/checkouts/%s",
		url.PathEscape(eventID), url.PathEscape(orderNumber))

	var out models.OrderDetails
	if err := c.do(ctx, http.MethodPost, path, req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders lists orders for an event. Elevated.
func (c *Client) ListOrders(ctx context.Context, eventID string, limit int) (*models.ListOrdersResponse, error) {
	path := fmt.Sprintf("/v2/events/%s/orders", url.PathEscape(eventID))
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out models.ListOrdersResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReservation holds ticket quantities for an event prior to
// checkout. Not elevated.
func (c *Client) CreateReservation(ctx context.Context, eventID string, req models.ReservationRequest) (*models.ReservationResponse, error) {
	path := fmt.Sprintf("/v2/events/%s/reservations", url.PathEscape(eventID))

	var out models.ReservationResponse
	if err := c.do(ctx, http.MethodPost, path, req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAvailableTickets lists currently purchasable tickets. Not
// elevated.
func (c *Client) ListAvailableTickets(ctx context.Context, eventID string) (*models.AvailableTicketsResponse, error) {
	path := "/v2/tickets/available"
	if eventID != "" {
		path += "?eventId=" + url.QueryEscape(eventID)
	}

	var out models.AvailableTicketsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryTicketDefinitions queries ticket definitions. Elevated: the
// definitions include unsold inventory counters.
func (c *Client) QueryTicketDefinitions(ctx context.Context, eventID string) (*models.TicketDefinitionsResponse, error) {
	path := "/v2/ticket-definitions"
	if eventID != "" {
		path += "?eventId=" + url.QueryEscape(eventID)
	}

	var out models.TicketDefinitionsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListScheduledEvents returns scheduled events, newest first, mapped
// down to id/title pairs for the storefront picker.
func (c *Client) ListScheduledEvents(ctx context.Context) ([]models.EventSummary, error) {
	var out struct {
		Events []struct {
			ID    string `json:"_id"`
			Title string `json:"title"`
		} `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/v2/events?status=SCHEDULED&sort=createdDate:desc", nil, &out, false); err != nil {
		return nil, err
	}

	items := make([]models.EventSummary, 0, len(out.Events))
	for _, ev := range out.Events {
		items = append(items, models.EventSummary{ID: ev.ID, Title: ev.Title})
	}
	return items, nil
}
