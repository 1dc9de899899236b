package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TicketRecord is the ticket-type lookup row kept in the document
// store. The landing page re-resolves the item UUIDs carried through
// the gateway redirect against this table to recover the event id.
type TicketRecord struct {
	bun.BaseModel `bun:"table:tickets"`

	TicketID  string    `bun:"ticket_id,pk" json:"ticket_id"`
	EventID   string    `bun:"event_id" json:"event_id"`
	Name      string    `bun:"name" json:"name"`
	Price     string    `bun:"price" json:"price"`
	Currency  string    `bun:"currency" json:"currency"`
	CreatedAt time.Time `bun:"created_at,nullzero" json:"created_at"`
}

// RedirectItem is one items[i][...] group decoded from the landing
// page query string. Absent fields stay empty, they are never
// zero-filled on the encode side.
type RedirectItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	SeatID   string `json:"seat_id"`
}

// DisplayTicket is one row of the thank-you page list.
type DisplayTicket struct {
	ID          string `json:"_id"`
	TicketName  string `json:"ticketName"`
	TicketPrice string `json:"ticketPrice"` // "<currency> <amount>" or "N/A"
	PDFURL      string `json:"pdfUrl"`
	CheckInURL  string `json:"checkInUrl,omitempty"`
	QRCode      []byte `json:"qrCode,omitempty"`
}

// LandingPage is the rendered thank-you page model. Visible stays
// false until ticket rows are bound; the list is never shown empty.
type LandingPage struct {
	Visible bool            `json:"visible"`
	Code    string          `json:"code,omitempty"`
	Tickets []DisplayTicket `json:"tickets,omitempty"`
}
