package models

// RawOrder is the loosely-typed order payload handed to the payment
// plugin shell by the storefront. Field shapes are not trusted: totals
// may arrive as integer minor-units, decimal strings or numbers, and
// the description block may be missing entirely. The checkout
// normalizer is the only code that reads these fields directly.
type RawOrder struct {
	ID          string            `json:"_id"`
	TotalAmount any               `json:"totalAmount,omitempty"`
	Lang        string            `json:"lang,omitempty"`
	EventID     string            `json:"eventId,omitempty"`
	Description *OrderDescription `json:"description,omitempty"`
}

type OrderDescription struct {
	Text        string     `json:"text,omitempty"`
	Title       string     `json:"title,omitempty"`
	TotalAmount any        `json:"totalAmount,omitempty"`
	BuyerInfo   *BuyerInfo `json:"buyerInfo,omitempty"`
	Items       []LineItem `json:"items,omitempty"`
}

type BuyerInfo struct {
	BuyerLanguage string `json:"buyerLanguage,omitempty"`
}

// LineItem is one order line. ID is expected to be the UUID of a
// ticket type; items with a non-UUID ID are still forwarded to the
// gateway but dropped again on the landing page.
type LineItem struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Price       any     `json:"price,omitempty"`
	Quantity    any     `json:"quantity,omitempty"`
	Description *string `json:"description,omitempty"`
}
