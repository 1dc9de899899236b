package checkout

import (
	"net/url"

	"ms-checkout/internal/models"
)

// ValidateTransaction runs the ordered, short-circuiting checks the
// gateway contract requires before a redirect may be issued. The first
// failing check wins; the result is a structured value, never a panic,
// so the plugin shell can surface the code to the buyer.
func ValidateTransaction(externalID string, tx models.TransactionContext) *models.TransactionError {
	if externalID == "" {
		return &models.TransactionError{Code: models.CodeValidationError, Message: "Transaction ID missing"}
	}
	if !shortIDRe.MatchString(tx.ShortID) {
		return &models.TransactionError{Code: models.CodeIDInvalid, Message: "Transaction ID must be a 5-digit number"}
	}
	if len(tx.Description) > 20 {
		return &models.TransactionError{Code: models.CodeDescriptionInvalid, Message: "Description exceeds 20 characters"}
	}
	if nonAlnumRe.MatchString(tx.Description) {
		return &models.TransactionError{Code: models.CodeDescriptionInvalid, Message: "Description contains special characters"}
	}
	if tx.Amount == "" {
		return &models.TransactionError{Code: models.CodeAmountInvalid, Message: "Amount is not valid"}
	}
	if !isHTTPSURL(tx.SuccessURL) || !isHTTPSURL(tx.CancelURL) || !isHTTPSURL(tx.ErrorURL) {
		return &models.TransactionError{Code: models.CodeURLInvalid, Message: "Redirect URL invalid"}
	}
	return nil
}

func isHTTPSURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}
