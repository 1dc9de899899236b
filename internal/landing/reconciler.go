package landing

import (
	"context"
	"fmt"
	"net/url"

	"ms-checkout/internal/audit"
	"ms-checkout/internal/checkout"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

// TicketFinder resolves item UUIDs against the document store's
// ticket collection in one batch query.
type TicketFinder interface {
	TicketsByIDs(ctx context.Context, ids []string) ([]models.TicketRecord, error)
}

// EventsAPI is the slice of the events client the landing flow needs.
type EventsAPI interface {
	ConfirmOrder(ctx context.Context, eventID, orderNumber string) (*models.ConfirmOrderResponse, error)
	GetOrder(ctx context.Context, identifiers models.OrderIdentifiers, fieldset []string) (*models.OrderDetails, error)
}

// ConfirmationPublisher streams successful confirmations downstream.
type ConfirmationPublisher interface {
	PublishOrderConfirmed(ctx context.Context, topic, eventID, orderNumber string) error
}

// Options parameterizes the one landing pipeline that replaced the
// page-variant copies: whether decoded items must survive UUID
// filtering even when none were embedded.
type Options struct {
	RequireValidItems bool
}

// Reconciler recovers the checkout context from the gateway redirect,
// confirms the order with the events subsystem and shapes the ticket
// rows for display. Linear, no retries; every stage is terminal on
// failure and the ticket list stays hidden until rows are bound.
type Reconciler struct {
	Tickets TicketFinder
	Events  EventsAPI
	Audit   audit.Recorder
	Kafka   ConfirmationPublisher
	Topic   string
	QR      *QRGenerator
	Logger  *logger.Logger
	Options Options
}

func NewReconciler(tickets TicketFinder, events EventsAPI, trail audit.Recorder, publisher ConfirmationPublisher, topic string, log *logger.Logger, opts Options) *Reconciler {
	return &Reconciler{
		Tickets: tickets,
		Events:  events,
		Audit:   trail,
		Kafka:   publisher,
		Topic:   topic,
		QR:      NewQRGenerator(),
		Logger:  log,
		Options: opts,
	}
}

func (r *Reconciler) hidden(ctx context.Context, code, phase string, data map[string]any) models.LandingPage {
	r.Audit.Record(ctx, phase, data)
	r.Logger.Error("LANDING", fmt.Sprintf("[%s] aborted: %s", phase, code))
	return models.LandingPage{Visible: false, Code: code}
}

// Render runs the landing flow for one redirect query.
func (r *Reconciler) Render(ctx context.Context, query url.Values) models.LandingPage {
	r.Audit.Record(ctx, "onReady_start", map[string]any{
		"message": "Thank-you page initialization started",
	})

	// parse_query
	rc := checkout.DecodeRedirectQuery(query)
	r.Audit.Record(ctx, "url_query", map[string]any{
		"tid": rc.ShortID, "oid": rc.OrderID, "eid": rc.EventID,
	})

	if rc.ShortID == "" || rc.OrderID == "" {
		return r.hidden(ctx, models.CodeValidationError, "parse_query_error", map[string]any{
			"tid": rc.ShortID, "oid": rc.OrderID,
		})
	}

	itemsEmbedded := rc.RawItemGroups > 0
	if (itemsEmbedded || r.Options.RequireValidItems) && len(rc.Items) == 0 {
		return r.hidden(ctx, models.CodeNoValidItems, "no_valid_items", map[string]any{
			"raw_item_groups": rc.RawItemGroups,
		})
	}

	// resolve_tickets + verify_single_event
	eventID := rc.EventID
	if len(rc.Items) > 0 {
		derived, page := r.resolveEvent(ctx, rc)
		if page != nil {
			return *page
		}
		eventID = derived
	}
	if eventID == "" {
		return r.hidden(ctx, models.CodeValidationError, "parse_query_error", map[string]any{
			"message": "event id neither given nor derivable",
		})
	}

	// confirm_order: failure is logged but non-fatal; the order may
	// already be confirmed from a previous visit.
	r.Audit.Record(ctx, "confirm_order_start", map[string]any{
		"eid": eventID, "oid": rc.OrderID,
	})
	if _, err := r.Events.ConfirmOrder(ctx, eventID, rc.OrderID); err != nil {
		r.Logger.Warn("LANDING", fmt.Sprintf("confirm order failed for %s: %v", rc.OrderID, err))
		r.Audit.Record(ctx, "confirm_order_error", map[string]any{
			"eid": eventID, "oid": rc.OrderID, "msg": err.Error(),
		})
	} else {
		r.Audit.Record(ctx, "confirm_order_complete", map[string]any{
			"eid": eventID, "oid": rc.OrderID,
		})
		if r.Kafka != nil {
			if err := r.Kafka.PublishOrderConfirmed(ctx, r.Topic, eventID, rc.OrderID); err != nil {
				r.Logger.Warn("LANDING", fmt.Sprintf("kafka publish failed for order %s: %v", rc.OrderID, err))
			}
		}
	}

	// fetch_order_details: tickets are the entire purpose of the page,
	// so an empty list here is fatal.
	r.Audit.Record(ctx, "get_order_start", map[string]any{
		"eid": eventID, "oid": rc.OrderID,
	})
	details, err := r.Events.GetOrder(ctx, models.OrderIdentifiers{
		EventID:     eventID,
		OrderNumber: rc.OrderID,
	}, []string{"TICKETS", "DETAILS"})
	if err != nil {
		return r.hidden(ctx, models.CodeNoValidTickets, "get_order_error", map[string]any{
			"eid": eventID, "oid": rc.OrderID, "msg": err.Error(),
		})
	}
	if len(details.Tickets) == 0 {
		return r.hidden(ctx, models.CodeNoValidTickets, "get_order_error", map[string]any{
			"eid": eventID, "oid": rc.OrderID, "msg": "no tickets in order details",
		})
	}
	r.Audit.Record(ctx, "get_order_success", map[string]any{
		"oid":     rc.OrderID,
		"eid":     details.EventID,
		"tickets": details.TicketsQuantity,
		"status":  details.Status,
	})

	// shape_display_rows + render
	rows := r.shapeDisplayRows(details.Tickets)
	r.Audit.Record(ctx, "repeater_data_prepared", map[string]any{"count": len(rows)})

	r.Audit.Record(ctx, "tickets_bound", map[string]any{"count": len(rows)})
	r.Logger.LogLanding("tickets_bound", fmt.Sprintf("%d tickets bound for order %s", len(rows), rc.OrderID))
	return models.LandingPage{Visible: true, Tickets: rows}
}

// resolveEvent batch-fetches the decoded item UUIDs and derives the
// single event they all belong to. Unknown ids are logged and skipped;
// more than one distinct event id is terminal.
func (r *Reconciler) resolveEvent(ctx context.Context, rc checkout.RedirectContext) (string, *models.LandingPage) {
	ids := make([]string, 0, len(rc.Items))
	for _, item := range rc.Items {
		ids = append(ids, item.ItemID)
	}

	records, err := r.Tickets.TicketsByIDs(ctx, ids)
	if err != nil {
		page := r.hidden(ctx, models.CodeNoValidTickets, "resolve_tickets_error", map[string]any{
			"ids": ids, "msg": err.Error(),
		})
		return "", &page
	}

	found := make(map[string]bool, len(records))
	for _, rec := range records {
		found[rec.TicketID] = true
	}
	for _, id := range ids {
		if !found[id] {
			r.Logger.Warn("LANDING", fmt.Sprintf("no ticket record for item %s, skipping", id))
		}
	}

	if len(records) == 0 {
		page := r.hidden(ctx, models.CodeNoValidTickets, "resolve_tickets_error", map[string]any{
			"ids": ids, "msg": "no ticket records resolved",
		})
		return "", &page
	}

	distinct := map[string]bool{}
	for _, rec := range records {
		if rec.EventID != "" {
			distinct[rec.EventID] = true
		}
	}
	if rc.EventID != "" {
		distinct[rc.EventID] = true
	}
	if len(distinct) > 1 {
		page := r.hidden(ctx, models.CodeMultipleEvents, "multiple_events", map[string]any{
			"events": len(distinct),
		})
		return "", &page
	}

	for eventID := range distinct {
		return eventID, nil
	}
	page := r.hidden(ctx, models.CodeNoValidTickets, "resolve_tickets_error", map[string]any{
		"ids": ids, "msg": "resolved tickets carry no event id",
	})
	return "", &page
}

func (r *Reconciler) shapeDisplayRows(tickets []models.EventTicket) []models.DisplayTicket {
	rows := make([]models.DisplayTicket, 0, len(tickets))
	for _, t := range tickets {
		name := t.Name
		if name == "" {
			name = "Unknown"
		}
		price := "N/A"
		if t.Price != nil && t.Price.Currency != "" && t.Price.Amount != "" {
			price = t.Price.Currency + " " + t.Price.Amount
		}
		row := models.DisplayTicket{
			ID:          t.TicketNumber,
			TicketName:  name,
			TicketPrice: price,
			PDFURL:      t.TicketPDFURL,
			CheckInURL:  t.CheckInURL,
		}
		if r.QR != nil && t.CheckInURL != "" {
			png, err := r.QR.CheckInQR(t.CheckInURL)
			if err != nil {
				r.Logger.Warn("LANDING", fmt.Sprintf("qr generation failed for ticket %s: %v", t.TicketNumber, err))
			} else {
				row.QRCode = png
			}
		}
		rows = append(rows, row)
	}
	return rows
}
