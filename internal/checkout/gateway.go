package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ms-checkout/internal/config"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

// Issuer is the external checkout-URL collaborator. It may answer with
// a bare URL string or an object carrying a url field; the builder
// accepts either and falls back to direct construction for anything
// else.
type Issuer interface {
	CreateCheckout(ctx context.Context, details models.PaymentDetails) (any, error)
}

// HTTPIssuer calls the remote token-issuing endpoint.
type HTTPIssuer struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPIssuer(endpoint string, client *http.Client) *HTTPIssuer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPIssuer{Endpoint: endpoint, Client: client}
}

func (i *HTTPIssuer) CreateCheckout(ctx context.Context, details models.PaymentDetails) (any, error) {
	body, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout issuer returned status %d", resp.StatusCode)
	}

	// The issuer is loosely specified: a JSON string, a JSON object
	// with a url field, or a plain-text URL have all been observed.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}
	var asObject models.CheckoutResponse
	if err := json.Unmarshal(raw, &asObject); err == nil && asObject.URL != "" {
		return &asObject, nil
	}
	return strings.TrimSpace(string(raw)), nil
}

// Builder turns a validated transaction context into the gateway
// redirect URL, preferring the issuer and falling back to hand
// construction.
type Builder struct {
	Gateway config.GatewayConfig
	Issuer  Issuer
	Logger  *logger.Logger
}

func NewBuilder(gateway config.GatewayConfig, issuer Issuer, log *logger.Logger) *Builder {
	return &Builder{Gateway: gateway, Issuer: issuer, Logger: log}
}

// PaymentURL returns the redirect URL for the transaction, or "" when
// neither path yields a usable URL. Callers must map "" to
// REDIRECT_URL_INVALID and must not redirect the buyer.
func (b *Builder) PaymentURL(ctx context.Context, tx models.TransactionContext) string {
	details := models.PaymentDetails{
		OrderID:        tx.ShortID,
		Amount:         tx.Amount,
		Description:    tx.Description,
		Lang:           tx.Lang,
		SuccessURL:     tx.SuccessURL,
		CancelURL:      tx.CancelURL,
		ErrorURL:       tx.ErrorURL,
		SelectedMethod: b.Gateway.SelectedMethod,
		Iframe:         iframeFlag(b.Gateway.Iframe),
		Accounts:       b.Gateway.Accounts,
	}

	if b.Issuer != nil {
		result, err := b.Issuer.CreateCheckout(ctx, details)
		if err != nil {
			b.Logger.Error("GATEWAY", fmt.Sprintf("checkout issuer failed: %v", err))
		} else if u := issuedURL(result); u != "" {
			b.Logger.LogGateway("ISSUER", fmt.Sprintf("using issuer URL for transaction %s", tx.ShortID))
			return u
		}
	}

	u := b.fallbackURL(details)
	if !strings.HasPrefix(u, "http") {
		return ""
	}
	b.Logger.LogGateway("FALLBACK", fmt.Sprintf("hand-built gateway URL for transaction %s", tx.ShortID))
	return u
}

// issuedURL extracts a usable URL from whatever shape the issuer
// answered with; "" means unusable.
func issuedURL(result any) string {
	switch v := result.(type) {
	case string:
		if strings.HasPrefix(v, "http") {
			return v
		}
	case *models.CheckoutResponse:
		if v != nil && strings.HasPrefix(v.URL, "http") {
			return v.URL
		}
	case map[string]any:
		if u, ok := v["url"].(string); ok && strings.HasPrefix(u, "http") {
			return u
		}
	}
	return ""
}

// fallbackURL builds the gateway URL directly. Key order follows the
// gateway's documented contract; every value is percent-encoded.
func (b *Builder) fallbackURL(details models.PaymentDetails) string {
	pairs := []struct {
		key string
		val string
	}{
		{"token", b.Gateway.Token},
		{"id", details.OrderID},
		{"amount", details.Amount},
		{"description", details.Description},
		{"expire", ExpireDate(time.Now())},
		{"lang", details.Lang},
		{"success_url", details.SuccessURL},
		{"cancel_url", details.CancelURL},
		{"error_url", details.ErrorURL},
		{"selected_method", details.SelectedMethod},
		{"iframe", details.Iframe},
	}
	if details.Accounts != "" {
		pairs = append(pairs, struct {
			key string
			val string
		}{"accounts", details.Accounts})
	}

	qp := make([]string, 0, len(pairs))
	for _, p := range pairs {
		qp = append(qp, p.key+"="+url.QueryEscape(p.val))
	}

	base := strings.TrimSuffix(b.Gateway.BaseURL, "?")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "?" + strings.Join(qp, "&")
}

// ExpireDate is YYYYMMDD of December 31 of next calendar year, UTC.
func ExpireDate(now time.Time) string {
	return time.Date(now.UTC().Year()+1, time.December, 31, 0, 0, 0, 0, time.UTC).Format("20060102")
}

// EnsureHTTPS coerces a bare host/path value into an absolute https
// URL; unusable input collapses to "".
func EnsureHTTPS(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http") {
		s = "https://" + strings.TrimLeft(s, "/")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.String()
}

func iframeFlag(enabled bool) string {
	if enabled {
		return "true"
	}
	return "false"
}
