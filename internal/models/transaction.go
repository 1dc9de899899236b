package models

// Error codes returned by the transaction and landing flows. The
// plugin shell branches on these instead of catching panics, so every
// failure path must map to exactly one code.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeIDInvalid          = "ID_INVALID"
	CodeDescriptionInvalid = "DESCRIPTION_INVALID"
	CodeAmountInvalid      = "AMOUNT_INVALID"
	CodeURLInvalid         = "URL_INVALID"
	CodeNoValidItems       = "NO_VALID_ITEMS"
	CodeNoValidTickets     = "NO_VALID_TICKETS"
	CodeMultipleEvents     = "MULTIPLE_EVENTS"
	CodeRedirectURLInvalid = "REDIRECT_URL_INVALID"
)

// TransactionError is the structured failure value for the validation
// tier. It deliberately satisfies the error interface so collaborator
// code can wrap it, but handlers serialize it as {code, message}.
type TransactionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *TransactionError) Error() string {
	return e.Code + ": " + e.Message
}

// TransactionContext is the normalized, ephemeral view of one checkout
// attempt: everything the gateway URL builder needs, nothing more.
type TransactionContext struct {
	ShortID     string // exactly 5 ASCII digits
	Amount      string // two-decimal string, "" when underivable
	Description string // sanitized, <=20 chars, [a-zA-Z0-9\s] only
	Lang        string // upper-case language code
	SuccessURL  string
	CancelURL   string
	ErrorURL    string
}

// PaymentDetails is the structured payload sent to the checkout URL
// issuer on the primary path.
type PaymentDetails struct {
	OrderID        string `json:"orderId"`
	Amount         string `json:"amount"`
	Description    string `json:"description"`
	Lang           string `json:"lang"`
	SuccessURL     string `json:"successUrl"`
	CancelURL      string `json:"cancelUrl"`
	ErrorURL       string `json:"errorUrl"`
	SelectedMethod string `json:"selectedMethod"`
	Iframe         string `json:"iframe"`
	Accounts       string `json:"accounts"`
}

// CheckoutResponse is the object form the issuer may answer with
// instead of a bare URL string.
type CheckoutResponse struct {
	URL string `json:"url"`
}

type CreateTransactionRequest struct {
	MerchantCredentials map[string]string `json:"merchantCredentials,omitempty"`
	Order               RawOrder          `json:"order"`
	TransactionID       string            `json:"transactionId"`
}

type TransactionResult struct {
	PluginTransactionID string `json:"pluginTransactionId"`
	RedirectURL         string `json:"redirectUrl"`
}

type ConnectAccountRequest struct {
	Credentials map[string]string `json:"credentials"`
}

type ConnectAccountResponse struct {
	Credentials map[string]string `json:"credentials"`
}

type RefundResult struct {
	Success bool `json:"success"`
}
