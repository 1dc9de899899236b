package checkout_api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"ms-checkout/internal/audit"
	"ms-checkout/internal/checkout"
	"ms-checkout/internal/checkout/checkout_api"
	"ms-checkout/internal/config"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

func newTestRouter() *chi.Mux {
	log := logger.NewLogger()
	cfg := config.GatewayConfig{
		BaseURL:        "https://gateway.ifthenpay.com/",
		Token:          "GW-TOKEN",
		SelectedMethod: "1",
		Iframe:         true,
		SuccessURL:     "https://www.live-ls.com/thank-you",
		CancelURL:      "https://www.live-ls.com/",
		ErrorURL:       "https://www.live-ls.com/",
	}
	builder := checkout.NewBuilder(cfg, nil, log)
	svc := checkout.NewService(cfg, builder, audit.Noop{}, nil, "", log)
	h := checkout_api.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/api/v1/transactions", h.CreateTransaction)
	r.Post("/api/v1/transactions/{transactionId}/refund", h.RefundTransaction)
	r.Post("/api/v1/provider/connect", h.ConnectAccount)
	r.Get("/api/v1/provider/config", h.ProviderConfig)
	return r
}

func TestCreateTransactionEndpoint(t *testing.T) {
	r := newTestRouter()

	body := `{
		"order": {
			"_id": "order-1",
			"totalAmount": "14000",
			"description": {"title": "Summer Fest"}
		},
		"transactionId": "txn-90210"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.TransactionResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "90210", result.PluginTransactionID)
	assert.True(t, strings.HasPrefix(result.RedirectURL, "https://gateway.ifthenpay.com/?"))
}

// Validation failures are part of the plugin contract and come back as
// HTTP 200 with a structured code, not as an HTTP error.
func TestCreateTransactionValidationFailureIs200(t *testing.T) {
	r := newTestRouter()

	body := `{"order": {"_id": "order-1", "totalAmount": "oops"}, "transactionId": "txn-90210"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var verr models.TransactionError
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verr))
	assert.Equal(t, models.CodeAmountInvalid, verr.Code)
}

func TestCreateTransactionBadJSON(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefundEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/90210/refund", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var res models.RefundResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
}

func TestProviderConfigEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/provider/config", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var cfg models.ProviderConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.NotEmpty(t, cfg.Title)
}
