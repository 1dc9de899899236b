package models

// Types exchanged with the events/ticketing subsystem. Shapes follow
// the subsystem's wire contract; only the fields this service reads
// are declared.

type EventSummary struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

type OrderIdentifiers struct {
	EventID     string `json:"eventId"`
	OrderNumber string `json:"orderNumber"`
}

type TicketPrice struct {
	Currency string `json:"currency,omitempty"`
	Amount   string `json:"amount,omitempty"`
}

type EventTicket struct {
	TicketNumber string       `json:"ticketNumber,omitempty"`
	Name         string       `json:"name,omitempty"`
	Price        *TicketPrice `json:"price,omitempty"`
	TicketPDFURL string       `json:"ticketPdfUrl,omitempty"`
	CheckInURL   string       `json:"checkInUrl,omitempty"`
}

type OrderDetails struct {
	OrderNumber     string        `json:"orderNumber,omitempty"`
	EventID         string        `json:"eventId,omitempty"`
	Status          string        `json:"status,omitempty"`
	TicketsQuantity int           `json:"ticketsQuantity,omitempty"`
	Tickets         []EventTicket `json:"tickets,omitempty"`
}

type ConfirmOrderRequest struct {
	OrderNumber []string `json:"orderNumber"`
}

type ConfirmOrderResponse struct {
	Orders []OrderDetails `json:"orders"`
}

type ListOrdersResponse struct {
	Orders []OrderDetails `json:"orders"`
}

type ReservationRequest struct {
	TicketQuantities []TicketQuantity `json:"ticketQuantities"`
}

type TicketQuantity struct {
	TicketDefinitionID string `json:"ticketDefinitionId"`
	Quantity           int    `json:"quantity"`
}

type ReservationResponse struct {
	ReservationID string `json:"id"`
	ExpiresAt     string `json:"expirationTime,omitempty"`
}

type TicketDefinition struct {
	ID       string       `json:"_id"`
	EventID  string       `json:"eventId"`
	Name     string       `json:"name"`
	Price    *TicketPrice `json:"price,omitempty"`
	Limited  bool         `json:"limited,omitempty"`
	SoldOut  bool         `json:"soldOut,omitempty"`
	Quantity int          `json:"quantity,omitempty"`
}

type TicketDefinitionsResponse struct {
	Definitions []TicketDefinition `json:"definitions"`
}

type AvailableTicketsResponse struct {
	Tickets []TicketDefinition `json:"tickets"`
}

type UpdateCheckoutRequest struct {
	Tickets []TicketQuantity `json:"tickets,omitempty"`
	Coupon  string           `json:"coupon,omitempty"`
}
